package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coin-concierge/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when registration hits the unique email index.
var ErrEmailTaken = errors.New("email already registered")

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewUserRepository(pool PgxPool, tracer trace.Tracer) *UserRepository {
	return &UserRepository{pool: pool, tracer: tracer}
}

// CreateUser inserts the account and returns it with its generated ID.
// Preferences start empty; onboarding fills them in later.
func (r *UserRepository) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	_, span := r.tracer.Start(ctx, "user-repo.create-user")
	defer span.End()

	user := &domain.User{Name: name, Email: email, PasswordHash: passwordHash}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, preferences)
		 VALUES ($1, $2, $3, '{}'::jsonb)
		 RETURNING id, created_at`,
		name, email, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	_, span := r.tracer.Start(ctx, "user-repo.find-by-email")
	defer span.End()

	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, preferences, created_at
		 FROM users WHERE email = $1`,
		email,
	))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	_, span := r.tracer.Start(ctx, "user-repo.find-by-id")
	defer span.End()

	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, preferences, created_at
		 FROM users WHERE id = $1`,
		id,
	))
}

// UpdatePreferences replaces the stored preferences document wholesale.
func (r *UserRepository) UpdatePreferences(ctx context.Context, userID int64, prefs domain.UserPreferences) error {
	_, span := r.tracer.Start(ctx, "user-repo.update-preferences")
	defer span.End()

	doc, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET preferences = $2 WHERE id = $1`,
		userID, doc,
	)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var prefsDoc []byte
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &prefsDoc, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(prefsDoc) > 0 {
		if err := json.Unmarshal(prefsDoc, &user.Preferences); err != nil {
			return nil, fmt.Errorf("decode preferences for user %d: %w", user.ID, err)
		}
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}
