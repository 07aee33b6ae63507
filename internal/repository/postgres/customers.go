package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"github.com/google/uuid"
)

const customerColumns = "id, name, email, password_hash, created_at"

type customerRepository struct {
	q DBTX
}

func (r *customerRepository) Create(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO customers (`+customerColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Email, c.PasswordHash, c.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("customer %s: %w", c.Email, repository.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return r.getBy(ctx, "id", id)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.getBy(ctx, "email", email)
}

func (r *customerRepository) getBy(ctx context.Context, column, value string) (*models.Customer, error) {
	var c models.Customer
	err := r.q.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE `+column+` = $1`, value).
		Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

func (r *customerRepository) UpdateName(ctx context.Context, id, name string) (*models.Customer, error) {
	var c models.Customer
	err := r.q.QueryRowContext(ctx,
		`UPDATE customers SET name = $1 WHERE id = $2 RETURNING `+customerColumns, name, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return &c, nil
}
