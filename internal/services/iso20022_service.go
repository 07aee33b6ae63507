package services

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/google/uuid"
	"github.com/moov-io/iso20022/pkg/common"
	"github.com/moov-io/iso20022/pkg/pacs_v08"
)

const (
	MessageTypePacs008 = "pacs.008.001.08"
	MessageTypePacs002 = "pacs.002.001.08"
)

// ISO20022Exporter renders transactions as ISO 20022 interbank messages.
type ISO20022Exporter struct {
	bic      string
	currency string
	now      func() time.Time
}

func NewISO20022Exporter(bic, currency string) *ISO20022Exporter {
	return &ISO20022Exporter{bic: bic, currency: currency, now: time.Now}
}

// Export returns a pacs.008 credit transfer for settled transfers and a pacs.002
// status report for everything else.
func (iso *ISO20022Exporter) Export(tx *models.Transaction) (messageType, document string, err error) {
	if tx.TransactionStatus == models.StatusSuccess {
		doc, err := iso.CreatePacs008(tx)
		if err != nil {
			return "", "", err
		}
		out, err := iso.ConvertToXML(doc)
		return MessageTypePacs008, out, err
	}

	doc, err := iso.CreatePacs002(tx)
	if err != nil {
		return "", "", err
	}
	out, err := iso.ConvertToXML(doc)
	return MessageTypePacs002, out, err
}

// CreatePacs008 creates a pacs.008 FIToFICustomerCreditTransfer message
func (iso *ISO20022Exporter) CreatePacs008(tx *models.Transaction) (*pacs_v08.FIToFICustomerCreditTransferV08, error) {
	if tx.TransactionStatus != models.StatusSuccess {
		return nil, ValidationError("Only settled transactions can be exported as pacs.008")
	}

	created := iso.now().UTC()
	settlementDate := tx.UpdatedAt.UTC()
	amount := pacs_v08.ActiveCurrencyAndAmount{
		Ccy:   common.ActiveCurrencyCode(iso.currency),
		Value: tx.Amount.InexactFloat64(),
	}
	agent := pacs_v08.BranchAndFinancialInstitutionIdentification6{
		FinInstnId: pacs_v08.FinancialInstitutionIdentification18{
			BICFI: &[]common.BICFIDec2014Identifier{common.BICFIDec2014Identifier(iso.bic)}[0],
		},
	}

	doc := &pacs_v08.FIToFICustomerCreditTransferV08{
		GrpHdr: pacs_v08.GroupHeader93{
			MsgId:             common.Max35Text(uuid.New().String()),
			CreDtTm:           common.ISODateTime(created),
			NbOfTxs:           "1",
			TtlIntrBkSttlmAmt: &amount,
			IntrBkSttlmDt:     (*common.ISODate)(&settlementDate),
			SttlmInf: pacs_v08.SettlementInstruction7{
				SttlmMtd: "INDA",
			},
		},
		CdtTrfTxInf: []pacs_v08.CreditTransferTransaction39{
			{
				PmtId: pacs_v08.PaymentIdentification7{
					InstrId:    &[]common.Max35Text{common.Max35Text(tx.Reference)}[0],
					EndToEndId: common.Max35Text(tx.Reference),
					TxId:       &[]common.Max35Text{common.Max35Text(tx.Reference)}[0],
				},
				IntrBkSttlmAmt: amount,
				IntrBkSttlmDt:  (*common.ISODate)(&settlementDate),
				ChrgBr:         "SLEV",
				DbtrAgt:        agent,
				Dbtr: pacs_v08.PartyIdentification135{
					Nm: &[]common.Max140Text{common.Max140Text(tx.SourceAccountNumber)}[0],
				},
				CdtrAgt: agent,
				Cdtr: pacs_v08.PartyIdentification135{
					Nm: &[]common.Max140Text{common.Max140Text(tx.DestinationAccountNumber)}[0],
				},
			},
		},
	}

	return doc, nil
}

// CreatePacs002 creates a pacs.002 payment status report
func (iso *ISO20022Exporter) CreatePacs002(tx *models.Transaction) (*pacs_v08.FIToFIPaymentStatusReportV08, error) {
	status := statusCode(tx.TransactionStatus)

	doc := &pacs_v08.FIToFIPaymentStatusReportV08{
		GrpHdr: pacs_v08.GroupHeader53{
			MsgId:   common.Max35Text(uuid.New().String()),
			CreDtTm: common.ISODateTime(iso.now().UTC()),
		},
		TxInfAndSts: []pacs_v08.PaymentTransaction80{
			{
				OrgnlInstrId:    &[]common.Max35Text{common.Max35Text(tx.Reference)}[0],
				OrgnlEndToEndId: &[]common.Max35Text{common.Max35Text(tx.Reference)}[0],
				OrgnlTxId:       &[]common.Max35Text{common.Max35Text(tx.Reference)}[0],
				TxSts:           &[]pacs_v08.ExternalPaymentTransactionStatus1Code{pacs_v08.ExternalPaymentTransactionStatus1Code(status)}[0],
			},
		},
	}

	return doc, nil
}

// ConvertToXML converts ISO20022 document to XML string
func (iso *ISO20022Exporter) ConvertToXML(doc any) (string, error) {
	xmlData, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return xml.Header + string(xmlData), nil
}

func statusCode(s models.TransactionStatus) string {
	switch s {
	case models.StatusSuccess:
		return "ACSC"
	case models.StatusFailed, models.StatusReversed:
		return "RJCT"
	}
	return "PDNG"
}
