package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"focustimer/internal/core/model"
)

// DefaultSessionsFileName is the session log created inside the data dir.
const DefaultSessionsFileName = "sessions.db"

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// goose keeps its dialect, filesystem and logger in package globals.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and leaves exiting to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// SessionStore is the SQLite session log.
type SessionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSessions opens (creating if needed) the session database at path and
// applies pending migrations.
func OpenSessions(ctx context.Context, path string, logger *slog.Logger) (*SessionStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}

	store := &SessionStore{db: db, logger: logger.With("component", "session_store")}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	store.logger.Info("session database initialized", "path", path)
	return store, nil
}

func (store *SessionStore) migrate(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&slogGooseLogger{logger: store.logger})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, store.db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the database.
func (store *SessionStore) Close() error {
	return store.db.Close()
}

// Insert appends a session to the log.
func (store *SessionStore) Insert(ctx context.Context, session model.Session) error {
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO sessions (id, recorded_at, duration_minutes, label, is_work, interruptions, interrupted)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.Timestamp.UnixMilli(), session.Duration, session.Label,
		boolToInt(session.IsWork), session.Interruptions, boolToInt(session.Interrupted))
	if err != nil {
		return fmt.Errorf("insert session %s: %w", session.ID, err)
	}
	store.logger.Debug("session recorded",
		"session_id", session.ID,
		"minutes", session.Duration,
		"label", session.Label,
		"work", session.IsWork)
	return nil
}

// Recent returns up to limit sessions, newest first.
func (store *SessionStore) Recent(ctx context.Context, limit int) ([]model.Session, error) {
	rows, err := store.db.QueryContext(ctx, `
		SELECT id, recorded_at, duration_minutes, label, is_work, interruptions, interrupted
		FROM sessions ORDER BY recorded_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var (
			session     model.Session
			recordedAt  int64
			isWork      int
			interrupted int
		)
		if err := rows.Scan(&session.ID, &recordedAt, &session.Duration, &session.Label,
			&isWork, &session.Interruptions, &interrupted); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.Timestamp = time.UnixMilli(recordedAt)
		session.IsWork = isWork != 0
		session.Interrupted = interrupted != 0
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
