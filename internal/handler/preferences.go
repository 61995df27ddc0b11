package handler

import (
	"net/http"
	"strings"

	"coin-concierge/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type preferencesRequest struct {
	CryptoAssets []string `json:"cryptoAssets"`
	InvestorType string   `json:"investorType"`
	ContentTypes []string `json:"contentTypes"`
}

// UpdatePreferences godoc
// @Summary      Save onboarding preferences
// @Description  Replaces the user's tracked assets, investor type, and content choices
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  preferencesRequest  true  "Preferences"
// @Success      200  {object}  domain.UserPreferences
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/preferences [put]
func (h *Handler) UpdatePreferences(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.update-preferences")
	defer span.End()

	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences payload"})
		return
	}

	// Symbols outside the tracked set are stored as-is; they just never
	// match the news relevance filter.
	assets := make([]string, 0, len(req.CryptoAssets))
	for _, raw := range req.CryptoAssets {
		sym := strings.ToUpper(strings.TrimSpace(raw))
		if sym == "" {
			continue
		}
		assets = append(assets, sym)
	}

	user := currentUser(c)
	span.SetAttributes(attribute.Int64("user_id", user.ID))

	prefs := domain.UserPreferences{
		CryptoAssets: assets,
		InvestorType: strings.TrimSpace(req.InvestorType),
		ContentTypes: req.ContentTypes,
	}

	if err := h.prefs.UpdatePreferences(ctx, user.ID, prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user.Preferences = prefs

	c.JSON(http.StatusOK, prefs)
}

// GetPreferences godoc
// @Summary      Get onboarding preferences
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserPreferences
// @Failure      401  {object}  map[string]string
// @Router       /api/preferences [get]
func (h *Handler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c).Preferences)
}
