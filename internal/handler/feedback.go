package handler

import (
	"net/http"

	"coin-concierge/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type feedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitFeedback godoc
// @Summary      Submit feedback
// @Description  Stores a 1-5 rating with an optional comment
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  feedbackRequest  true  "Feedback"
// @Success      201  {object}  domain.Feedback
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/feedback [post]
func (h *Handler) SubmitFeedback(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.submit-feedback")
	defer span.End()

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	user := currentUser(c)
	span.SetAttributes(attribute.Int64("user_id", user.ID))

	fb := &domain.Feedback{
		UserID:  user.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.feedback.Insert(ctx, fb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, fb)
}
