package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/misterclayt0n/fittrack/internal/config"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrEmptyWorkout  = errors.New("workout has no exercises")
	ErrCodeExhausted = errors.New("could not find an unused join code")
)

const defaultCodeAttempts = 8

// timestampLayout is fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Storage struct {
	DB  *sql.DB
	log *slog.Logger

	codeAttempts int
	newCode      func() string
}

// NewStorage opens the configured database and makes sure the schema exists.
func NewStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	st, err := Open(ctx, cfg.DB.DSN(), log)
	if err != nil {
		return nil, err
	}
	st.codeAttempts = cfg.Groups.CodeAttempts
	return st, nil
}

// Open connects to dsn. file: URLs use the embedded SQLite driver, anything
// else (libsql://, https://, ws://) goes through libsql.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*Storage, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open(driverFor(dsn), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := initializeDB(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Storage{
		DB:           db,
		log:          log,
		codeAttempts: defaultCodeAttempts,
		newCode:      scoring.GenerateGroupCode,
	}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "file:") || dsn == ":memory:" {
		return "sqlite"
	}
	return "libsql"
}

// knownTables lists every table in dependency order. Export and import only
// touch these.
var knownTables = []string{
	"profiles",
	"workouts",
	"workout_exercises",
	"training_groups",
	"group_members",
}

func initializeDB(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
            id TEXT PRIMARY KEY,
            username TEXT,
            email TEXT,
            created_at TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS workouts (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            title TEXT NOT NULL,
            notes TEXT,
            workout_date TEXT NOT NULL,
            created_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_user ON workouts(user_id)`,
		`CREATE TABLE IF NOT EXISTS workout_exercises (
            id TEXT PRIMARY KEY,
            workout_id TEXT NOT NULL,
            user_id TEXT NOT NULL,
            sort_order INTEGER NOT NULL,
            type TEXT NOT NULL,
            name TEXT NOT NULL,
            duration REAL,
            distance REAL,
            weight REAL,
            reps INTEGER,
            sets INTEGER,
            created_at TEXT NOT NULL,
            FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
        )`,
		`CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id)`,
		`CREATE TABLE IF NOT EXISTS training_groups (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            code TEXT NOT NULL UNIQUE,
            created_by TEXT NOT NULL,
            created_at TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS group_members (
            group_id TEXT NOT NULL,
            user_id TEXT NOT NULL,
            joined_at TEXT NOT NULL,
            PRIMARY KEY (group_id, user_id),
            FOREIGN KEY (group_id) REFERENCES training_groups(id) ON DELETE CASCADE
        )`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
