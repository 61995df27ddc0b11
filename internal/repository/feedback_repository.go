package repository

import (
	"context"

	"coin-concierge/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type FeedbackRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewFeedbackRepository(pool PgxPool, tracer trace.Tracer) *FeedbackRepository {
	return &FeedbackRepository{pool: pool, tracer: tracer}
}

func (r *FeedbackRepository) Insert(ctx context.Context, fb *domain.Feedback) error {
	_, span := r.tracer.Start(ctx, "feedback-repo.insert")
	defer span.End()

	return r.pool.QueryRow(ctx,
		`INSERT INTO feedback (user_id, rating, comment)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		fb.UserID, fb.Rating, fb.Comment,
	).Scan(&fb.ID, &fb.CreatedAt)
}

func (r *FeedbackRepository) RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Feedback, error) {
	_, span := r.tracer.Start(ctx, "feedback-repo.recent-for-user")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, rating, comment, created_at
		 FROM feedback
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Rating, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, err
		}
		fb.CreatedAt = fb.CreatedAt.UTC()
		items = append(items, fb)
	}
	return items, rows.Err()
}
