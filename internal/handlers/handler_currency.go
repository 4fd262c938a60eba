package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/triptab/tripledger/internal/apperrors"
	portssvc "github.com/triptab/tripledger/internal/core/ports/services"
	"github.com/triptab/tripledger/internal/dto"
	"github.com/triptab/tripledger/internal/middleware"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
		currencies.GET("/convert", h.convert)
		currencies.GET("/format", h.format)
	}
}

// listCurrencies godoc
// @Summary List all currencies
// @Description Retrieves the supported currency set in table order
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies := h.currencyService.ListCurrencies()
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Description Retrieves details for a specific currency by its 3-letter code
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("code")

	if len(currencyCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	currency, err := h.currencyService.GetCurrencyByCode(currencyCode)
	if err != nil {
		logger.Warn("Currency not found", slog.String("currency_code", currencyCode))
		c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts an amount from one supported currency to another through the base currency. The result is unrounded.
// @Tags currencies
// @Produce  json
// @Param   amount query string true "Amount to convert"
// @Param   from query string true "Source currency code"
// @Param   to query string true "Target currency code"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown currency"
// @Security BearerAuth
// @Router /currencies/convert [get]
func (h *currencyHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + err.Error()})
		return
	}
	from := c.Query("from")
	to := c.Query("to")

	converted, err := h.currencyService.Convert(amount, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownCurrency) {
			logger.Warn("Conversion with unknown currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{Amount: converted, From: from, To: to})
}

// format godoc
// @Summary Format an amount for display
// @Description Renders the currency symbol and the amount rounded to the currency's minor units
// @Tags currencies
// @Produce  json
// @Param   amount query string true "Amount to format"
// @Param   currency query string true "Currency code"
// @Success 200 {object} dto.FormatResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown currency"
// @Security BearerAuth
// @Router /currencies/format [get]
func (h *currencyHandler) format(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + err.Error()})
		return
	}
	code := c.Query("currency")

	formatted, err := h.currencyService.Format(amount, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownCurrency) {
			logger.Warn("Format with unknown currency", slog.String("currency_code", code))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to format amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to format amount"})
		return
	}

	c.JSON(http.StatusOK, dto.FormatResponse{Formatted: formatted, Currency: code})
}
