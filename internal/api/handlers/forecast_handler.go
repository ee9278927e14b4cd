package handlers

import (
	"net/http"

	"github.com/Toyz-Mini/abangbob-forecast/internal/purchase"
	"github.com/Toyz-Mini/abangbob-forecast/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// GetSummary serves the dashboard summary: next-day and weekly projections,
// trend, critical items and insights.
func (h *ForecastHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("forecast summary failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build forecast summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// GetSuggestions serves the per-item reorder recommendations.
func (h *ForecastHandler) GetSuggestions(c *gin.Context) {
	suggestions, err := h.service.GetSuggestions(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("forecast suggestions failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build reorder suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  suggestions,
		"count": len(suggestions),
	})
}

// GetInsights serves only the human-readable insight strings.
func (h *ForecastHandler) GetInsights(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("forecast insights failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build insights"})
		return
	}

	insights := summary.Insights
	if insights == nil {
		insights = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"data": insights})
}

// GetPurchaseDrafts groups the current reorder suggestions into per-supplier
// draft purchase orders. An optional tax_rate query applies tax per draft.
func (h *ForecastHandler) GetPurchaseDrafts(c *gin.Context) {
	suggestions, err := h.service.GetSuggestions(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("purchase drafts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build purchase drafts"})
		return
	}

	taxRate := decimal.Zero
	if raw := c.Query("tax_rate"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tax_rate"})
			return
		}
		taxRate = parsed
	}

	drafts := purchase.BuildDrafts(suggestions, taxRate)
	c.JSON(http.StatusOK, gin.H{
		"data":  drafts,
		"count": len(drafts),
	})
}

// Invalidate drops the memoized forecast so the next poll recomputes.
func (h *ForecastHandler) Invalidate(c *gin.Context) {
	if err := h.service.Invalidate(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("forecast invalidate failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate forecast cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
