package services

import (
	"testing"
	"time"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExporter() *ISO20022Exporter {
	iso := NewISO20022Exporter("MONONGLA", "NGN")
	iso.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	return iso
}

func exportTx(status models.TransactionStatus) *models.Transaction {
	return &models.Transaction{
		Reference:                "mono-20240506070809000000001",
		SourceAccountNumber:      "1000000001",
		DestinationAccountNumber: "1000000002",
		Amount:                   dec("1500.25"),
		TransactionType:          models.TransactionTypeTransfer,
		TransactionStatus:        status,
		UpdatedAt:                time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
	}
}

func TestISO20022Exporter_CreatePacs008(t *testing.T) {
	iso := newTestExporter()

	doc, err := iso.CreatePacs008(exportTx(models.StatusSuccess))

	require.NoError(t, err)
	assert.Equal(t, "1", string(doc.GrpHdr.NbOfTxs))
	require.Len(t, doc.CdtTrfTxInf, 1)
	txInf := doc.CdtTrfTxInf[0]
	assert.Equal(t, "mono-20240506070809000000001", string(txInf.PmtId.EndToEndId))
	assert.Equal(t, 1500.25, txInf.IntrBkSttlmAmt.Value)
	assert.Equal(t, "NGN", string(txInf.IntrBkSttlmAmt.Ccy))
	assert.Equal(t, "1000000001", string(*txInf.Dbtr.Nm))
	assert.Equal(t, "1000000002", string(*txInf.Cdtr.Nm))
	assert.Equal(t, "MONONGLA", string(*txInf.DbtrAgt.FinInstnId.BICFI))

	_, err = iso.CreatePacs008(exportTx(models.StatusPending))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestISO20022Exporter_Export(t *testing.T) {
	iso := newTestExporter()

	tests := []struct {
		status      models.TransactionStatus
		messageType string
		contains    string
	}{
		{models.StatusSuccess, MessageTypePacs008, "mono-20240506070809000000001"},
		{models.StatusPending, MessageTypePacs002, "PDNG"},
		{models.StatusFailed, MessageTypePacs002, "RJCT"},
		{models.StatusReversed, MessageTypePacs002, "RJCT"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			messageType, document, err := iso.Export(exportTx(tt.status))

			require.NoError(t, err)
			assert.Equal(t, tt.messageType, messageType)
			assert.Contains(t, document, "<?xml")
			assert.Contains(t, document, tt.contains)
		})
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "ACSC", statusCode(models.StatusSuccess))
	assert.Equal(t, "RJCT", statusCode(models.StatusFailed))
	assert.Equal(t, "PDNG", statusCode(models.StatusAwaitingConfirmation))
}
