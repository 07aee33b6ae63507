package config

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Banking holds the ledger core's business knobs.
type Banking struct {
	MaxAccountsPerCustomer int
	OpeningBalance         decimal.Decimal
	FundingGLAccount       string
	WithdrawalGLAccount    string
	ReferencePrefix        string
	AccountCounterName     string
	AccountCounterStart    int64
	CacheTTL               time.Duration
	ReconcileSchedule      string
	ExportBIC              string
	Currency               string
}

// LoadBanking returns banking configuration with defaults
func LoadBanking() *Banking {
	viper.SetDefault("banking.max_accounts_per_customer", 3)
	viper.SetDefault("banking.opening_balance", "5000")
	viper.SetDefault("banking.funding_gl_account", "0000000001")
	viper.SetDefault("banking.withdrawal_gl_account", "0000000002")
	viper.SetDefault("banking.reference_prefix", "mono-")
	viper.SetDefault("banking.account_counter_name", "accountNumber")
	viper.SetDefault("banking.account_counter_start", 1_000_000_000)
	viper.SetDefault("banking.cache_ttl", 24*time.Hour)
	viper.SetDefault("banking.reconcile_schedule", "0 */15 * * * *")
	viper.SetDefault("banking.export_bic", "MONONGLA")
	viper.SetDefault("banking.currency", "NGN")

	opening, err := decimal.NewFromString(viper.GetString("banking.opening_balance"))
	if err != nil || opening.IsNegative() {
		log.Printf("[CONFIG] Invalid banking.opening_balance %q, using 5000", viper.GetString("banking.opening_balance"))
		opening = decimal.NewFromInt(5000)
	}

	return &Banking{
		MaxAccountsPerCustomer: viper.GetInt("banking.max_accounts_per_customer"),
		OpeningBalance:         opening,
		FundingGLAccount:       viper.GetString("banking.funding_gl_account"),
		WithdrawalGLAccount:    viper.GetString("banking.withdrawal_gl_account"),
		ReferencePrefix:        viper.GetString("banking.reference_prefix"),
		AccountCounterName:     viper.GetString("banking.account_counter_name"),
		AccountCounterStart:    viper.GetInt64("banking.account_counter_start"),
		CacheTTL:               viper.GetDuration("banking.cache_ttl"),
		ReconcileSchedule:      viper.GetString("banking.reconcile_schedule"),
		ExportBIC:              viper.GetString("banking.export_bic"),
		Currency:               viper.GetString("banking.currency"),
	}
}
