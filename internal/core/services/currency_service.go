package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/triptab/tripledger/internal/apperrors"
	"github.com/triptab/tripledger/internal/core/domain"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
)

// CurrencyService provides pure conversion and display formatting over an
// immutable currency set and rate table injected at construction. The ledger
// never performs currency-coupled arithmetic itself; obligations stay in the
// expense's original currency and this service is a read-time concern only.
type CurrencyService struct {
	base       string
	currencies map[string]domain.Currency
	ordered    []domain.Currency
	rates      domain.RateTable
}

// NewCurrencyService validates the tables and builds the service. Every
// currency must have exactly one strictly positive rate, and the base
// currency must be part of the set.
func NewCurrencyService(currencies []domain.Currency, rates domain.RateTable, baseCode string) (*CurrencyService, error) {
	byCode := make(map[string]domain.Currency, len(currencies))
	for _, c := range currencies {
		if _, exists := byCode[c.Code]; exists {
			return nil, fmt.Errorf("duplicate currency %s in table", c.Code)
		}
		rate, ok := rates[c.Code]
		if !ok {
			return nil, fmt.Errorf("currency %s has no exchange rate", c.Code)
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("currency %s has non-positive rate %s", c.Code, rate)
		}
		byCode[c.Code] = c
	}
	if _, ok := byCode[baseCode]; !ok {
		return nil, fmt.Errorf("base currency %s not in currency table", baseCode)
	}
	ordered := make([]domain.Currency, len(currencies))
	copy(ordered, currencies)
	return &CurrencyService{
		base:       baseCode,
		currencies: byCode,
		ordered:    ordered,
		rates:      rates,
	}, nil
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// Convert normalizes amount through the base currency:
// amount / rate[from] * rate[to]. Identical codes return the amount
// unchanged, with no arithmetic detour. The result is not rounded; rounding
// belongs to display time.
func (s *CurrencyService) Convert(amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	fromRate, ok := s.rates[fromCode]
	if !ok {
		return decimal.Zero, apperrors.NewUnknownCurrencyError(fromCode)
	}
	toRate, ok := s.rates[toCode]
	if !ok {
		return decimal.Zero, apperrors.NewUnknownCurrencyError(toCode)
	}
	if fromCode == toCode {
		return amount, nil
	}
	return amount.Div(fromRate).Mul(toRate), nil
}

// Format renders the currency symbol followed by the amount fixed to the
// currency's minor-unit digits. An unknown code is an error, never a
// fall-through to the raw code with full precision loss.
func (s *CurrencyService) Format(amount decimal.Decimal, code string) (string, error) {
	currency, ok := s.currencies[code]
	if !ok {
		return "", apperrors.NewUnknownCurrencyError(code)
	}
	return currency.Symbol + amount.StringFixed(int32(currency.MinorUnits)), nil
}

// GetCurrencyByCode retrieves a currency definition.
func (s *CurrencyService) GetCurrencyByCode(code string) (*domain.Currency, error) {
	currency, ok := s.currencies[code]
	if !ok {
		return nil, apperrors.NewUnknownCurrencyError(code)
	}
	return &currency, nil
}

// ListCurrencies retrieves all supported currencies in table order.
func (s *CurrencyService) ListCurrencies() []domain.Currency {
	out := make([]domain.Currency, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// BaseCurrency returns the code all rates are expressed against.
func (s *CurrencyService) BaseCurrency() string {
	return s.base
}
