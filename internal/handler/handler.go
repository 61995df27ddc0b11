package handler

import (
	"context"

	"coin-concierge/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Authenticator is the slice of the auth service the HTTP layer needs.
type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

// PreferenceStore persists onboarding preferences.
type PreferenceStore interface {
	UpdatePreferences(ctx context.Context, userID int64, prefs domain.UserPreferences) error
}

// DashboardBuilder assembles the per-user dashboard payload.
type DashboardBuilder interface {
	BuildDashboard(ctx context.Context, user domain.User) (domain.DashboardPayload, error)
}

// AdvisorQuerier runs one advisor chat turn.
type AdvisorQuerier interface {
	Ask(ctx context.Context, user *domain.User, message string) (string, error)
}

// FeedbackStore persists user feedback.
type FeedbackStore interface {
	Insert(ctx context.Context, fb *domain.Feedback) error
}

type Handler struct {
	tracer    trace.Tracer
	auth      Authenticator
	prefs     PreferenceStore
	dashboard DashboardBuilder
	advisor   AdvisorQuerier // nil when no LLM credential is configured
	feedback  FeedbackStore
}

func New(
	tracer trace.Tracer,
	auth Authenticator,
	prefs PreferenceStore,
	dashboard DashboardBuilder,
	advisor AdvisorQuerier,
	feedback FeedbackStore,
) *Handler {
	return &Handler{
		tracer:    tracer,
		auth:      auth,
		prefs:     prefs,
		dashboard: dashboard,
		advisor:   advisor,
		feedback:  feedback,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authed := api.Group("")
	authed.Use(h.RequireSession())
	authed.GET("/auth/me", h.Me)
	authed.POST("/auth/logout", h.Logout)
	authed.PUT("/preferences", h.UpdatePreferences)
	authed.GET("/preferences", h.GetPreferences)
	authed.GET("/dashboard", h.GetDashboard)
	authed.POST("/advisor/ask", h.AskAdvisor)
	authed.POST("/feedback", h.SubmitFeedback)
}
