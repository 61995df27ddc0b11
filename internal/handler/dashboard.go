package handler

import (
	"errors"
	"net/http"

	"coin-concierge/internal/dashboard"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetDashboard godoc
// @Summary      Get the personalized dashboard
// @Description  Assembles prices, filtered news, AI insight, and a meme for the user
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardPayload
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-dashboard")
	defer span.End()

	user := currentUser(c)
	span.SetAttributes(attribute.Int64("user_id", user.ID))

	payload, err := h.dashboard.BuildDashboard(ctx, *user)
	if err != nil {
		if errors.Is(err, dashboard.ErrDashboardBuild) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "failed to build dashboard",
				"fallback": payload,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}
