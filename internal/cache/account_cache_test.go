package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/go-redis/redismock/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInfo() *models.AccountInfo {
	return &models.AccountInfo{
		AccountNumber: "1000000001",
		AccountName:   "Ada Obi",
		IsEnabled:     true,
		Balance:       decimal.RequireFromString("4999.5"),
	}
}

func TestAccountCache_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		data, err := json.Marshal(sampleInfo())
		require.NoError(t, err)
		mock.ExpectGet("account:1000000001").SetVal(string(data))

		info, ok := NewAccountCache(rdb, time.Hour).Get(ctx, "1000000001")

		require.True(t, ok)
		assert.Equal(t, "Ada Obi", info.AccountName)
		assert.True(t, info.Balance.Equal(decimal.RequireFromString("4999.5")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("account:1000000001").RedisNil()

		_, ok := NewAccountCache(rdb, time.Hour).Get(ctx, "1000000001")

		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis error is a miss", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("account:1000000001").SetErr(errors.New("connection reset"))

		_, ok := NewAccountCache(rdb, time.Hour).Get(ctx, "1000000001")

		assert.False(t, ok)
	})

	t.Run("corrupt entry is dropped", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("account:1000000001").SetVal("{not json")
		mock.ExpectDel("account:1000000001").SetVal(1)

		_, ok := NewAccountCache(rdb, time.Hour).Get(ctx, "1000000001")

		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountCache_SetAndInvalidate(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	info := sampleInfo()
	data, err := json.Marshal(info)
	require.NoError(t, err)

	mock.ExpectSet("account:1000000001", string(data), 24*time.Hour).SetVal("OK")
	mock.ExpectDel("account:1000000001", "account:1000000002").SetVal(2)

	c := NewAccountCache(rdb, 24*time.Hour)
	c.Set(ctx, info)
	c.Invalidate(ctx, "1000000001", "1000000002")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCache_NilClient(t *testing.T) {
	ctx := context.Background()
	c := NewAccountCache(nil, time.Hour)

	_, ok := c.Get(ctx, "1000000001")
	assert.False(t, ok)
	c.Set(ctx, sampleInfo())
	c.Invalidate(ctx, "1000000001")

	var nilCache *AccountCache
	_, ok = nilCache.Get(ctx, "1000000001")
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "account:0000000042", Key("0000000042"))
}
