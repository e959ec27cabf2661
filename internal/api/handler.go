package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/finny/internal/domain/dto"
	"github.com/guttosm/finny/internal/middleware"
	"github.com/guttosm/finny/internal/service"
)

// Handler provides HTTP handlers for quote and filings endpoints.
//
// Responsibilities:
//   - Extract request input (path ticker, JSON body)
//   - Delegate to the service layer
//   - Map outcomes to JSON responses with fixed client-facing error messages
type Handler struct {
	quotes  service.QuoteService
	filings service.FilingsService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - quotes (service.QuoteService): quote lookups against the data provider.
//   - filings (service.FilingsService): SEC filings lookups.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(quotes service.QuoteService, filings service.FilingsService) *Handler {
	return &Handler{quotes: quotes, filings: filings}
}

// GetQuote handles GET /api/data/:ticker requests.
//
// The ticker is forwarded exactly as received. On success the provider's result object is
// written verbatim; on any failure the body is {"error":"Error fetching data"}.
//
// GetQuote godoc
// @Summary      Get quote summary by ticker
// @Description  Proxies Yahoo Finance quoteSummary (summaryDetail, price, defaultKeyStatistics) and returns the provider result unchanged
// @Tags         quotes
// @Produce      json
// @Param        ticker  path      string  true  "Ticker symbol" example(AAPL)
// @Success      200     {object}  map[string]interface{}  "Provider result"
// @Failure      500     {object}  dto.ErrorResponse       "Error fetching data"
// @Router       /api/data/{ticker} [get]
func (h *Handler) GetQuote(c *gin.Context) {
	ticker := c.Param("ticker")

	result, err := h.quotes.GetQuote(c.Request.Context(), ticker)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, dto.MsgQuoteFetchFailed, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}

// FetchSECData handles POST /fetch-sec-data requests.
//
// FetchSECData godoc
// @Summary      List recent SEC filings
// @Description  Scrapes the SEC EDGAR company page for the ticker and returns date/type pairs
// @Tags         filings
// @Accept       json
// @Produce      json
// @Param        request  body      dto.FilingsRequest  true  "Ticker"
// @Success      200      {array}   models.Filing       "Filings"
// @Failure      400      {object}  dto.ErrorResponse   "Bad Request"
// @Failure      502      {object}  dto.ErrorResponse   "Upstream failure"
// @Router       /fetch-sec-data [post]
func (h *Handler) FetchSECData(c *gin.Context) {
	var req dto.FilingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	filings, err := h.filings.GetFilings(c.Request.Context(), req.Ticker)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadGateway, dto.MsgFilingFetchFailed, err)
		return
	}

	c.JSON(http.StatusOK, filings)
}
