package handlers

import (
	"net/http"

	"github.com/django102/mono-test-api/internal/middleware"
	"github.com/django102/mono-test-api/internal/services"
)

type CustomerHandler struct {
	banking   *services.BankingService
	validator *services.ValidationHelper
}

func NewCustomerHandler(banking *services.BankingService) *CustomerHandler {
	return &CustomerHandler{banking: banking, validator: services.NewValidationHelper()}
}

// Register creates a customer and their first funded account
// @Summary Register customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration request"
// @Success 201 {object} services.Result[services.Registration]
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.Result[any]
// @Router /customers [post]
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	writeResult(w, h.banking.RegisterCustomer(r.Context(), req))
}

// Login issues a bearer token
// @Summary Customer login
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login request"
// @Success 200 {object} services.Result[services.AuthResponse]
// @Failure 401 {object} services.Result[any]
// @Router /customers/login [post]
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	writeResult(w, h.banking.Login(r.Context(), req))
}

// Update renames the calling customer
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.UpdateCustomerRequest true "Update request"
// @Success 200 {object} services.Result[models.Customer]
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.Result[any]
// @Router /customers [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateCustomerRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	writeResult(w, h.banking.UpdateCustomer(r.Context(), middleware.CustomerID(r.Context()), req))
}
