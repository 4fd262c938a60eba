package services

import (
	"github.com/shopspring/decimal"

	"github.com/triptab/tripledger/internal/core/domain"
)

// CurrencySvcFacade exposes conversion and display formatting over the
// immutable currency and rate tables. All operations are pure: they never
// touch the store and need no synchronization.
type CurrencySvcFacade interface {
	// Convert normalizes amount through the base currency. Returns the amount
	// unchanged when from == to, with no floating detour. Fails with
	// apperrors.ErrUnknownCurrency if either code is absent.
	Convert(amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)

	// Format renders the currency symbol followed by the amount fixed to the
	// currency's minor-unit digits. Fails with apperrors.ErrUnknownCurrency if
	// the code is absent; it never falls back to the raw code.
	Format(amount decimal.Decimal, code string) (string, error)

	// GetCurrencyByCode retrieves a currency definition.
	GetCurrencyByCode(code string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies() []domain.Currency

	// BaseCurrency returns the code all rates are expressed against.
	BaseCurrency() string
}
