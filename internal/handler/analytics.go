package handler

import (
	"log/slog"

	"expense-api/internal/logging"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves spending aggregates.
type AnalyticsHandler struct {
	Analytics *store.Analytics
	Log       *slog.Logger
}

func NewAnalyticsHandler(analytics *store.Analytics, log *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		Analytics: analytics,
		Log:       logging.WithComponent(log, logging.ComponentHTTP),
	}
}

// SpendingSummary: ?month=3&year=2025
func (h *AnalyticsHandler) SpendingSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	period, ok := requiredPeriod(c)
	if !ok {
		return
	}

	summary, err := h.Analytics.SpendingSummary(c.Request.Context(), user.ID, period.Month, period.Year)
	if err != nil {
		respondError(c, h.Log, "spending summary", err)
		return
	}
	util.Success(c, summary)
}
