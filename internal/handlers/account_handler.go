package handlers

import (
	"net/http"
	"strconv"

	"github.com/django102/mono-test-api/internal/middleware"
	"github.com/django102/mono-test-api/internal/services"
	"github.com/go-chi/chi/v5"
)

type AccountHandler struct {
	banking *services.BankingService
}

func NewAccountHandler(banking *services.BankingService) *AccountHandler {
	return &AccountHandler{banking: banking}
}

// CreateAccount opens and funds a new account for the authenticated customer
// @Summary Open account
// @Description Opens a new account for the token's customer, funded with the opening balance
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Success 201 {object} services.Result[models.Account]
// @Failure 400 {object} services.Result[any]
// @Failure 401 {object} services.Result[any]
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.banking.CreateAccount(r.Context(), middleware.CustomerID(r.Context())))
}

// ListAccounts returns the authenticated customer's accounts
// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Result[[]models.Account]
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.banking.AccountsOf(r.Context(), middleware.CustomerID(r.Context())))
}

// GetAccount returns name, status and balance of an account
// @Summary Account details
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param accountNumber path string true "10-digit account number"
// @Success 200 {object} services.Result[models.AccountInfo]
// @Failure 404 {object} services.Result[any]
// @Router /accounts/{accountNumber} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.banking.GetAccount(r.Context(), chi.URLParam(r, "accountNumber")))
}

// GetAccountHistory pages through an account's ledger entries, newest first
// @Summary Account history
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param accountNumber path string true "10-digit account number"
// @Param fromDate query string false "YYYY-MM-DD or RFC 3339"
// @Param toDate query string false "YYYY-MM-DD or RFC 3339"
// @Param page query int false "page, from 1"
// @Param size query int false "page size, max 100"
// @Success 200 {object} services.Result[models.HistoryPage]
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.Result[any]
// @Router /accounts/{accountNumber}/history [get]
func (h *AccountHandler) GetAccountHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := services.HistoryQuery{
		FromDate: query.Get("fromDate"),
		ToDate:   query.Get("toDate"),
	}

	var err error
	if q.Page, err = intParam(query.Get("page")); err != nil {
		services.SendErrorResponse(w, "page must be a number", http.StatusBadRequest, nil)
		return
	}
	if q.Size, err = intParam(query.Get("size")); err != nil {
		services.SendErrorResponse(w, "size must be a number", http.StatusBadRequest, nil)
		return
	}

	writeResult(w, h.banking.GetAccountHistory(r.Context(), chi.URLParam(r, "accountNumber"), q))
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
