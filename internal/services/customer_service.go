package services

import (
	"context"
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/django102/mono-test-api/internal/config"
	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

// RegisterRequest represents the registration request payload
// @Description Registration request structure
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100" example:"Ada Obi"`
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"password123"`
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required" example:"password123"`
}

// UpdateCustomerRequest represents the profile update payload
// @Description Customer update structure
type UpdateCustomerRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100" example:"Ada N. Obi"`
}

// AuthResponse represents the authentication response
// @Description Authentication response structure
type AuthResponse struct {
	Token    string           `json:"token"`
	Customer *models.Customer `json:"customer"`
}

type Registration struct {
	Customer *models.Customer `json:"customer"`
	Account  *models.Account  `json:"account"`
}

// CustomerService is the customer directory: registration, login and lookup.
type CustomerService struct {
	store    repository.Store
	accounts *AccountService
	auth     *config.Auth
	now      func() time.Time
}

func NewCustomerService(store repository.Store, accounts *AccountService, auth *config.Auth) *CustomerService {
	return &CustomerService{store: store, accounts: accounts, auth: auth, now: time.Now}
}

// Register stores the customer and opens their first account. The customer
// row, the account row and the opening funding commit together; the account
// number is drawn beforehand and is burned if the commit fails.
func (s *CustomerService) Register(ctx context.Context, req RegisterRequest) (*Registration, error) {
	if s.accounts.cfg.MaxAccountsPerCustomer < 1 {
		return nil, ErrMaxAccounts
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &models.Customer{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	}
	if _, err := s.store.Customers().GetByEmail(ctx, customer.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	accountNumber, err := s.accounts.sequence.NextAccountNumber(ctx)
	if err != nil {
		return nil, err
	}
	account := &models.Account{AccountNumber: accountNumber, IsEnabled: true}
	err = s.store.WithinTx(ctx, func(st repository.Store) error {
		if err := st.Customers().Create(ctx, customer); err != nil {
			return err
		}
		account.CustomerID = customer.ID
		return s.accounts.open(ctx, st, account)
	})
	if errors.Is(err, repository.ErrConflict) && account.CustomerID == "" {
		return nil, ErrEmailTaken
	}
	if err != nil {
		log.Printf("[AUTH] Registration of %s failed, number %s discarded: %v", customer.Email, accountNumber, err)
		s.accounts.audit.LogError("", accountNumber, err)
		return nil, err
	}

	log.Printf("[AUTH] Registered customer %s", customer.ID)
	s.accounts.opened(account)
	return &Registration{Customer: customer, Account: account}, nil
}

// Update renames the customer. Email and password are not changed here.
func (s *CustomerService) Update(ctx context.Context, customerID string, req UpdateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ErrMissingCustomer
	}
	customer, err := s.store.Customers().UpdateName(ctx, customerID, strings.TrimSpace(req.Name))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", customerID, ErrCustomerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	log.Printf("[AUTH] Updated customer %s", customerID)

	// Cached account views carry the owner's name.
	if accounts, err := s.accounts.AccountsOf(ctx, customerID); err == nil {
		numbers := make([]string, 0, len(accounts))
		for _, a := range accounts {
			numbers = append(numbers, a.AccountNumber)
		}
		s.accounts.cache.Invalidate(ctx, numbers...)
	} else {
		log.Printf("[AUTH] Could not refresh cached accounts of %s: %v", customerID, err)
	}
	return customer, nil
}

func (s *CustomerService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	customer, err := s.store.Customers().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, repository.ErrNotFound) {
		log.Printf("[AUTH] Login failed, unknown email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.verifyPassword(req.Password, customer.PasswordHash) {
		log.Printf("[AUTH] Invalid password for customer %s", customer.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(customer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AUTH] Login successful for customer %s", customer.ID)
	return &AuthResponse{Token: token, Customer: customer}, nil
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.store.Customers().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrCustomerNotFound)
	}
	return customer, err
}

func (s *CustomerService) generateToken(customerID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customer_id": customerID,
		"iat":         s.now().Unix(),
		"exp":         s.now().Add(s.auth.TokenTTL).Unix(),
	})
	return token.SignedString(s.auth.JWTSecret)
}

func (s *CustomerService) hashPassword(password string) (string, error) {
	p := s.auth.Argon2
	salt := make([]byte, p.SaltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func (s *CustomerService) verifyPassword(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	p := s.auth.Argon2
	computed := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computed) == 1
}
