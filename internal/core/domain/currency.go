package domain

import "github.com/shopspring/decimal"

// Currency represents a supported currency in the domain.
type Currency struct {
	Code       string `json:"code"`       // ISO-like code, e.g. "USD"
	Name       string `json:"name"`       // e.g. "US Dollar"
	Symbol     string `json:"symbol"`     // e.g. "$"
	MinorUnits int    `json:"minorUnits"` // decimal places of the smallest unit (0 for JPY/KRW)
}

// RateTable maps a currency code to the quantity of that currency equal to
// one unit of the base currency. The base currency's own rate is 1.
type RateTable map[string]decimal.Decimal

// DefaultCurrencies lists the supported currencies. JPY and KRW carry no
// minor units; every other supported currency uses two.
func DefaultCurrencies() []Currency {
	return []Currency{
		{Code: "USD", Name: "US Dollar", Symbol: "$", MinorUnits: 2},
		{Code: "EUR", Name: "Euro", Symbol: "€", MinorUnits: 2},
		{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", MinorUnits: 0},
		{Code: "GBP", Name: "British Pound", Symbol: "£", MinorUnits: 2},
		{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", MinorUnits: 2},
		{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", MinorUnits: 2},
		{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", MinorUnits: 2},
		{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", MinorUnits: 2},
		{Code: "SEK", Name: "Swedish Krona", Symbol: "kr", MinorUnits: 2},
		{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", MinorUnits: 2},
		{Code: "MXN", Name: "Mexican Peso", Symbol: "$", MinorUnits: 2},
		{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", MinorUnits: 2},
		{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$", MinorUnits: 2},
		{Code: "NOK", Name: "Norwegian Krone", Symbol: "kr", MinorUnits: 2},
		{Code: "KRW", Name: "South Korean Won", Symbol: "₩", MinorUnits: 0},
	}
}

// DefaultRates returns the static rate table, expressed against USD as the
// base unit. Rates are configuration, not live market data.
func DefaultRates() RateTable {
	return RateTable{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.92"),
		"JPY": decimal.RequireFromString("149.50"),
		"GBP": decimal.RequireFromString("0.79"),
		"AUD": decimal.RequireFromString("1.53"),
		"CAD": decimal.RequireFromString("1.36"),
		"CHF": decimal.RequireFromString("0.88"),
		"CNY": decimal.RequireFromString("7.24"),
		"SEK": decimal.RequireFromString("10.87"),
		"NZD": decimal.RequireFromString("1.67"),
		"MXN": decimal.RequireFromString("17.15"),
		"SGD": decimal.RequireFromString("1.34"),
		"HKD": decimal.RequireFromString("7.83"),
		"NOK": decimal.RequireFromString("10.95"),
		"KRW": decimal.RequireFromString("1342.50"),
	}
}
