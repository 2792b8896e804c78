package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-shopfront/internal/app/models"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the credential store: user identity records with password
// hashes. Read-mostly; the only write is registration.
type AuthRepo interface {
	// GetUserByEmail fetches the user record for a case-insensitive email
	// match, hash included. Absent users yield models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.UserAuth, error)
	// EmailExists reports whether any user already claims the email.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateUser stores a new user with a HASHED password. Insert-if-absent
	// on email: a duplicate yields models.ErrConflict. Returns the new id.
	CreateUser(ctx context.Context, email, hashedPassword string) (string, error)
}

// DB is the slice of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresAuthRepo struct {
	db     DB
	logger *zap.Logger
}

func NewPostgresAuthRepo(db DB, logger *zap.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{db: db, logger: logger}
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	var user models.UserAuth
	query := `SELECT id, email, password_hash, created_at FROM users WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
		}
		r.logger.Error("Error fetching user by email", zap.Error(err))
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return &user, nil
}

func (r *PostgresAuthRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		r.logger.Error("Error checking email existence", zap.Error(err))
		return false, fmt.Errorf("database error checking email: %w", err)
	}
	return exists, nil
}

// CreateUser relies on the unique index over LOWER(email) for the atomic
// insert-if-absent; a concurrent duplicate surfaces as 23505.
func (r *PostgresAuthRepo) CreateUser(ctx context.Context, email, hashedPassword string) (string, error) {
	ctx, span := otel.Tracer("shopfront").Start(ctx, "PostgresAuthRepo.CreateUser",
		trace.WithAttributes(attribute.String("db.system", "postgresql")))
	defer span.End()

	var userID string
	query := `INSERT INTO users (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRow(ctx, query, strings.ToLower(email), hashedPassword, time.Now()).Scan(&userID)
	if err != nil {
		span.RecordError(err)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			span.SetStatus(codes.Error, "Email conflict")
			return "", fmt.Errorf("email already exists: %w", models.ErrConflict)
		}
		span.SetStatus(codes.Error, "Database error")
		r.logger.Error("Error inserting user", zap.Error(err))
		return "", fmt.Errorf("database error registering user: %w", err)
	}

	span.SetStatus(codes.Ok, "User created")
	r.logger.Info("User registered successfully", zap.String("user_id", userID))
	return userID, nil
}
