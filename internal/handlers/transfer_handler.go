package handlers

import (
	"log"
	"net/http"

	"github.com/django102/mono-test-api/internal/middleware"
	"github.com/django102/mono-test-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// TransferRequest represents a transfer initiation payload
// @Description Transfer request structure
type TransferRequest struct {
	SourceAccountNumber      string          `json:"sourceAccountNumber" validate:"required,len=10,numeric" example:"1000000001"`
	DestinationAccountNumber string          `json:"destinationAccountNumber" validate:"required,len=10,numeric" example:"1000000002"`
	Amount                   decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
}

// StatusRequest represents a transfer status update payload
// @Description Status update structure
type StatusRequest struct {
	Status string `json:"status" validate:"required,txstatus" example:"SUCCESS"`
}

type TransferHandler struct {
	banking   *services.BankingService
	exporter  *services.ISO20022Exporter
	validator *services.ValidationHelper
}

func NewTransferHandler(banking *services.BankingService, exporter *services.ISO20022Exporter) *TransferHandler {
	return &TransferHandler{
		banking:   banking,
		exporter:  exporter,
		validator: services.NewValidationHelper(),
	}
}

// InitiateTransfer reserves funds and records a pending transfer
// @Summary Initiate transfer
// @Description Creates a PENDING transfer from an account owned by the caller
// @Tags Transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferRequest true "Transfer request"
// @Success 201 {object} services.Result[models.Transaction]
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.Result[any]
// @Failure 404 {object} services.Result[any]
// @Router /transfers [post]
func (h *TransferHandler) InitiateTransfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	writeResult(w, h.banking.InitiateCustomerTransfer(r.Context(), middleware.CustomerID(r.Context()),
		req.SourceAccountNumber, req.DestinationAccountNumber, req.Amount))
}

// UpdateTransfer moves a transfer to a new status
// @Summary Update transfer status
// @Description Only the owner of the source account may change the status. SUCCESS posts the ledger pair, REVERSED reverses it
// @Tags Transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Transaction reference"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} services.Result[models.Transaction]
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.Result[any]
// @Failure 404 {object} services.Result[any]
// @Failure 409 {object} services.Result[any]
// @Router /transfers/{reference} [patch]
func (h *TransferHandler) UpdateTransfer(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	status, err := services.ParseStatus(req.Status)
	if err != nil {
		writeResult(w, services.Failure[any](err))
		return
	}
	writeResult(w, h.banking.UpdateCustomerTransfer(r.Context(), middleware.CustomerID(r.Context()),
		chi.URLParam(r, "reference"), status))
}

// ExportTransfer renders a transfer as an ISO 20022 message
// @Summary ISO 20022 export
// @Description pacs.008 for settled transfers, pacs.002 status report otherwise
// @Tags Transfers
// @Produce xml
// @Security BearerAuth
// @Param reference path string true "Transaction reference"
// @Success 200 {string} string "XML document"
// @Failure 404 {object} services.Result[any]
// @Router /transfers/{reference}/iso20022 [get]
func (h *TransferHandler) ExportTransfer(w http.ResponseWriter, r *http.Request) {
	res := h.banking.GetTransfer(r.Context(), chi.URLParam(r, "reference"))
	if !res.Success {
		writeResult(w, res)
		return
	}

	messageType, document, err := h.exporter.Export(res.Data)
	if err != nil {
		log.Printf("[ISO20022] Export of %s failed: %v", res.Data.Reference, err)
		writeResult(w, services.Failure[any](err))
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("X-Message-Type", messageType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(document))
}
