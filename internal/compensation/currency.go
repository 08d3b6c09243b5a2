// Package compensation reconciles a salary expectation with a budget range
// that may be expressed in another currency.
package compensation

import "strings"

// Currency is an ISO 4217 code the rate tables may carry.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
	CHF Currency = "CHF"
	JPY Currency = "JPY"
	CNY Currency = "CNY"
	HKD Currency = "HKD"
	SGD Currency = "SGD"
	AED Currency = "AED"
)

var AllCurrencies = []Currency{EUR, USD, GBP, CHF, JPY, CNY, HKD, SGD, AED}

// ParseCurrency is case and whitespace insensitive.
func ParseCurrency(s string) (Currency, bool) {
	code := Currency(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range AllCurrencies {
		if c == code {
			return c, true
		}
	}
	return "", false
}

func (c Currency) String() string { return string(c) }
