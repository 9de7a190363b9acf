package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"qbank/internal/question"
)

// Store provides durable relational storage for the question bank.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db      *sql.DB
	maxTags int
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and ensures the questions schema exists.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// maxTags fixes the number of tag_N columns. Opening an existing
// database that was created under a different bound is an error:
// row widths would no longer line up with the spreadsheet side.
//
// This function is idempotent - safe to call multiple times.
func Open(path string, maxTags int) (*Store, error) {
	if maxTags < 1 {
		return nil, fmt.Errorf("open store: tag bound must be at least 1, got %d", maxTags)
	}

	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool for SQLite
	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	// Apply required pragmas
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	// Apply schema
	if err := applySchema(db, maxTags); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, maxTags: maxTags}, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// MaxTags reports the tag column bound the store was opened with.
func (s *Store) MaxTags() int {
	return s.maxTags
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates the questions table if it doesn't exist and checks
// the tag column bound. This function is idempotent.
func applySchema(db *sql.DB, maxTags int) error {
	if _, err := db.Exec(schemaDDL(maxTags)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := verifyTagBound(db, maxTags); err != nil {
		return err
	}

	return nil
}

// schemaDDL builds the DDL for the questions table. The tag columns
// depend on the configured bound, so the schema is assembled here
// instead of shipped as a static file.
func schemaDDL(maxTags int) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS questions (\n")
	b.WriteString("    id TEXT PRIMARY KEY,\n")
	b.WriteString("    question TEXT NOT NULL,\n")
	b.WriteString("    question_image_url TEXT,\n")
	for _, label := range question.OptionLabels {
		col := strings.ToLower(label)
		fmt.Fprintf(&b, "    option_%s TEXT,\n", col)
		fmt.Fprintf(&b, "    option_%s_image_url TEXT,\n", col)
	}
	b.WriteString("    answer TEXT NOT NULL,\n")
	b.WriteString("    type TEXT NOT NULL,\n")
	b.WriteString("    year TEXT,\n")
	for n := 1; n <= maxTags; n++ {
		fmt.Fprintf(&b, "    tag_%d TEXT,\n", n)
	}
	b.WriteString("    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,\n")
	b.WriteString("    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP\n")
	b.WriteString(");\n\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_questions_question ON questions(question);\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_questions_type ON questions(type);\n")
	return b.String()
}

// verifyTagBound checks that the questions table carries exactly the
// expected tag_N columns. A mismatch means the database was created
// under a different bound.
func verifyTagBound(db *sql.DB, maxTags int) error {
	// GLOB instead of LIKE: in LIKE patterns the underscore is a
	// single-character wildcard, which would match created_at too.
	rows, err := db.Query(`
		SELECT name FROM pragma_table_info('questions')
		WHERE name GLOB 'tag_[0-9]*'
	`)
	if err != nil {
		return fmt.Errorf("inspect tag columns: %w", err)
	}
	defer rows.Close()

	var found int
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan tag column: %w", err)
		}
		found++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tag columns: %w", err)
	}

	if found != maxTags {
		return fmt.Errorf("database has %d tag columns, configured bound is %d", found, maxTags)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
