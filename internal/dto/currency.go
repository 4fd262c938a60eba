package dto

import (
	"github.com/shopspring/decimal"

	"github.com/triptab/tripledger/internal/core/domain"
)

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	MinorUnits int    `json:"minorUnits"`
}

// ToCurrencyResponse converts a domain Currency to a CurrencyResponse DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:       c.Code,
		Name:       c.Name,
		Symbol:     c.Symbol,
		MinorUnits: c.MinorUnits,
	}
}

// ToListCurrencyResponse converts a slice of domain Currencies to CurrencyResponse DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}

// ConvertResponse defines the result of a currency conversion. The amount is
// unrounded; rounding belongs to display time only.
type ConvertResponse struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

// FormatResponse defines the result of display formatting.
type FormatResponse struct {
	Formatted string `json:"formatted"`
	Currency  string `json:"currency"`
}
