package services

import (
	"strings"

	"github.com/django102/mono-test-api/internal/models"
)

var statusAliases = map[string]models.TransactionStatus{
	"ON_GOING": models.StatusOngoing,
}

// statusFromString accepts statuses case-insensitively, with dashes or underscores.
func statusFromString(s string) models.TransactionStatus {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if alias, ok := statusAliases[normalized]; ok {
		return alias
	}
	return models.TransactionStatus(normalized)
}

// ParseStatus converts user input into a known transaction status.
func ParseStatus(s string) (models.TransactionStatus, error) {
	status := statusFromString(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
