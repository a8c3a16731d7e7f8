package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Currency is one of the small fixed set of currencies the organization operates in.
type Currency string

const (
	CurrencyPesos Currency = "PESOS" // local currency
	CurrencyUSD   Currency = "USD"
	CurrencyEUR   Currency = "EUR"
)

// SupportedCurrencies lists every currency in a stable order.
var SupportedCurrencies = []Currency{CurrencyPesos, CurrencyUSD, CurrencyEUR}

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

// TruncateToDay drops the time-of-day component, keeping the location of t.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
