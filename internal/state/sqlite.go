package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens the database at path, creating parent directories, and runs
// migrations. Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(ctx context.Context, path string) error {
	dsn := "file::memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create state directory: %w", err)
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path

	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return err
	}

	s.logger.Debug("opened state database", slog.String("path", path))
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// RecordRun stores a run and its findings in one transaction.
func (s *SQLiteStore) RecordRun(ctx context.Context, filesAnalyzed int, findings []Finding) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:            generateID(),
		StartedAt:     time.Now().UTC(),
		FilesAnalyzed: filesAnalyzed,
		Findings:      len(findings),
	}

	s.logger.Debug("recording run", slog.String("id", run.ID), slog.Int("findings", run.Findings))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, files_analyzed, findings) VALUES (?, ?, ?, ?)`,
		run.ID, run.StartedAt.Format(timeLayout), run.FilesAnalyzed, run.Findings,
	); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if len(findings) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO findings (run_id, path, rule_id, severity, message, line) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare finding insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, f := range findings {
			if _, err := stmt.ExecContext(ctx, run.ID, f.Path, f.RuleID, f.Severity, f.Message, f.Line); err != nil {
				return nil, fmt.Errorf("failed to record finding: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

// LatestRun returns the most recently recorded run.
func (s *SQLiteStore) LatestRun(ctx context.Context) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var run Run
	var startedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, files_analyzed, findings FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	).Scan(&run.ID, &startedAt, &run.FilesAnalyzed, &run.Findings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoBaseline
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	run.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid started_at for run %s: %w", run.ID, err)
	}
	return &run, nil
}

// LatestBaseline returns the findings of the most recent run.
func (s *SQLiteStore) LatestBaseline(ctx context.Context) (*Baseline, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return nil, err
	}

	findings, err := s.findingsForRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return NewBaseline(run.ID, findings), nil
}

func (s *SQLiteStore) findingsForRun(ctx context.Context, runID string) ([]Finding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, rule_id, severity, message, line FROM findings WHERE run_id = ? ORDER BY path, line`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []Finding
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.Path, &f.RuleID, &f.Severity, &f.Message, &f.Line); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list findings: %w", err)
	}
	return findings, nil
}
