package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// DB is the slice of pgxpool.Pool the store needs. Kept narrow so tests can
// substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps one row per session id: the id, a serialized blob of
// the record, and the expiry timestamp. The upsert on Put gives whole-record
// atomicity per id; Postgres row locking guarantees two concurrent Puts never
// interleave field-by-field.
type PostgresStore struct {
	db     DB
	logger *zap.Logger
}

func NewPostgresStore(db DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// EnsureSchema creates the sessions table and its expiry index if missing.
// The session store owns this table; it is deliberately outside the goose
// migration set so the store stays self-contained.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS sessions (
			sid        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating sessions table: %w", err)
	}
	const idx = `CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at)`
	if _, err := s.db.Exec(ctx, idx); err != nil {
		return fmt.Errorf("creating sessions expiry index: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	var blob []byte
	var expiresAt time.Time

	query := `SELECT data, expires_at FROM sessions WHERE sid = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(&blob, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to load session record", zap.Error(err))
		return nil, fmt.Errorf("database error loading session: %w", err)
	}

	if time.Now().After(expiresAt) {
		// Lazy expiry: clean up the dead row, then report absence.
		if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE sid = $1`, id); err != nil {
			s.logger.Warn("Failed to delete expired session row", zap.Error(err))
		}
		return nil, ErrNotFound
	}

	var rec Record
	if err := json.Unmarshal(blob, &rec); err != nil {
		s.logger.Error("Failed to decode session record", zap.Error(err))
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

func (s *PostgresStore) Put(ctx context.Context, rec *Record) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}

	query := `
		INSERT INTO sessions (sid, data, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (sid) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`
	if _, err := s.db.Exec(ctx, query, rec.ID, blob, rec.ExpiresAt); err != nil {
		s.logger.Error("Failed to save session record", zap.Error(err))
		return fmt.Errorf("database error saving session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE sid = $1`, id); err != nil {
		s.logger.Error("Failed to delete session record", zap.Error(err))
		return fmt.Errorf("database error deleting session: %w", err)
	}
	return nil
}
