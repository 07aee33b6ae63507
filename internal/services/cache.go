package services

import (
	"context"

	"github.com/django102/mono-test-api/internal/models"
)

// AccountInfoCache is the read-through cache in front of GetAccount.
type AccountInfoCache interface {
	Get(ctx context.Context, accountNumber string) (*models.AccountInfo, bool)
	Set(ctx context.Context, info *models.AccountInfo)
	Invalidate(ctx context.Context, accountNumbers ...string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*models.AccountInfo, bool) { return nil, false }
func (noopCache) Set(context.Context, *models.AccountInfo)                {}
func (noopCache) Invalidate(context.Context, ...string)                   {}

func cacheOrNoop(c AccountInfoCache) AccountInfoCache {
	if c == nil {
		return noopCache{}
	}
	return c
}
