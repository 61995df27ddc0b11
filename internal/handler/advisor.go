package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type askRequest struct {
	Message string `json:"message" binding:"required"`
}

// AskAdvisor godoc
// @Summary      Ask the crypto advisor
// @Description  Runs one chat turn against the LLM with live market context
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  askRequest  true  "Question"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/advisor/ask [post]
func (h *Handler) AskAdvisor(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.ask-advisor")
	defer span.End()

	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "advisor is not configured"})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	user := currentUser(c)
	span.SetAttributes(attribute.Int64("user_id", user.ID))

	reply, err := h.advisor.Ask(ctx, user, strings.TrimSpace(req.Message))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
