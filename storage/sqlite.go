package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	_ "github.com/mattn/go-sqlite3"
)

// Config names the database file and the tables and columns the generator
// convention uses: a "Roots" table holding word-list rows imported from CSV
// and a "Results" table holding one enumerated terminal string per row.
type Config struct {
	Path string

	RootsTable        string
	RootsIDColumn     string
	ResultsTable      string
	ResultsIDColumn   string
	ResultsDataColumn string

	// BusyTimeout is how long a statement waits when the database is locked.
	BusyTimeout time.Duration
}

func DefaultConfig(path string) *Config {
	return &Config{
		Path:              path,
		RootsTable:        "Roots",
		RootsIDColumn:     "RootID",
		ResultsTable:      "Results",
		ResultsIDColumn:   "ResultID",
		ResultsDataColumn: "Result",
		BusyTimeout:       5 * time.Second,
	}
}

// Store is a SQLite-backed home for word-list roots and enumerated terminal
// strings, with uniform-random row retrieval.
type Store struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger
}

func Open(config *Config) (*Store, error) {
	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the database %v: %w", config.Path, err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", config.BusyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot set the busy timeout: %w", err)
	}

	return &Store{
		db:     db,
		config: config,
		logger: slog.Default().With("component", "storage"),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const idColumnType = "INTEGER PRIMARY KEY AUTOINCREMENT"

// columnType guesses a column's SQLite type from its heading: ID columns get
// the autoincrement declaration, headings shaped like "IsSomething" hold
// booleans, everything else is text.
func (s *Store) columnType(heading string) string {
	if heading == s.config.RootsIDColumn || heading == s.config.ResultsIDColumn {
		return idColumnType
	}
	if rest, ok := strings.CutPrefix(heading, "Is"); ok && rest != "" {
		if unicode.IsUpper([]rune(rest)[0]) {
			return "BOOLEAN NOT NULL"
		}
	}
	return "TEXT"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// TerminalSource supplies terminal strings one at a time; the derivation
// package's Enumerator satisfies it.
type TerminalSource interface {
	Next() (string, bool)
}

// Rebuild drops and recreates both tables in one transaction, imports the
// word-list rows, and drains the terminal-string source into the results
// table.
func (s *Store) Rebuild(ctx context.Context, headings []string, rows [][]string, results TerminalSource) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{s.config.RootsTable, s.config.ResultsTable} {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
			return err
		}
	}

	cols := make([]string, 0, len(headings)+1)
	cols = append(cols, quoteIdent(s.config.RootsIDColumn)+" "+idColumnType)
	for _, h := range headings {
		cols = append(cols, quoteIdent(h)+" "+s.columnType(h))
	}
	createRoots := fmt.Sprintf("CREATE TABLE %v (%v)", quoteIdent(s.config.RootsTable), strings.Join(cols, ", "))
	if _, err := tx.ExecContext(ctx, createRoots); err != nil {
		return err
	}

	createResults := fmt.Sprintf("CREATE TABLE %v (%v %v, %v TEXT)",
		quoteIdent(s.config.ResultsTable),
		quoteIdent(s.config.ResultsIDColumn), idColumnType,
		quoteIdent(s.config.ResultsDataColumn))
	if _, err := tx.ExecContext(ctx, createResults); err != nil {
		return err
	}

	quoted := make([]string, len(headings))
	placeholders := make([]string, len(headings))
	for i, h := range headings {
		quoted[i] = quoteIdent(h)
		placeholders[i] = "?"
	}
	insertRoot, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %v (%v) VALUES (%v)",
		quoteIdent(s.config.RootsTable), strings.Join(quoted, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		return err
	}
	defer insertRoot.Close()
	for i, row := range rows {
		if len(row) != len(headings) {
			return fmt.Errorf("row %v has %v values, the heading has %v columns", i+1, len(row), len(headings))
		}
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = v
		}
		if _, err := insertRoot.ExecContext(ctx, args...); err != nil {
			return err
		}
	}

	insertResult, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %v (%v) VALUES (?)",
		quoteIdent(s.config.ResultsTable), quoteIdent(s.config.ResultsDataColumn)))
	if err != nil {
		return err
	}
	defer insertResult.Close()
	resultCount := 0
	for {
		terminal, ok := results.Next()
		if !ok {
			break
		}
		if _, err := insertResult.ExecContext(ctx, terminal); err != nil {
			return err
		}
		resultCount++
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("database rebuilt",
		"path", s.config.Path,
		"roots", len(rows),
		"results", resultCount,
	)
	return nil
}

// RepeatAvoider remembers the row IDs successive random lookups have
// returned so that one generated string never uses the same row twice.
type RepeatAvoider struct {
	seenIDs []int64
}

func NewRepeatAvoider() *RepeatAvoider {
	return &RepeatAvoider{}
}

// RandomQuery selects one uniform-random value.
type RandomQuery struct {
	Table    string
	Column   string
	IDColumn string
	// Filter is an extra predicate ANDed into the WHERE clause, e.g. to
	// restrict a shared column to a subset of rows.
	Filter string
	// Avoider, when non-nil, excludes rows it has seen and records the
	// chosen row.
	Avoider *RepeatAvoider
}

// RandomValue returns one uniform-random non-NULL, non-empty value from the
// given column.
func (s *Store) RandomValue(ctx context.Context, q RandomQuery) (string, error) {
	var b strings.Builder
	var args []any

	fmt.Fprintf(&b, "SELECT t.%v", quoteIdent(q.Column))
	if q.Avoider != nil {
		fmt.Fprintf(&b, ", t.%v", quoteIdent(q.IDColumn))
	}
	fmt.Fprintf(&b, " FROM %v t WHERE t.%v IS NOT NULL AND t.%v != ''",
		quoteIdent(q.Table), quoteIdent(q.Column), quoteIdent(q.Column))
	if q.Filter != "" {
		fmt.Fprintf(&b, " AND (%v)", q.Filter)
	}
	if q.Avoider != nil {
		for _, id := range q.Avoider.seenIDs {
			fmt.Fprintf(&b, " AND t.%v != ?", quoteIdent(q.IDColumn))
			args = append(args, id)
		}
	}
	b.WriteString(" ORDER BY random() LIMIT 1")

	row := s.db.QueryRowContext(ctx, b.String(), args...)
	if q.Avoider == nil {
		var value string
		if err := row.Scan(&value); err != nil {
			return "", fmt.Errorf("no candidate rows in %v.%v: %w", q.Table, q.Column, err)
		}
		return value, nil
	}

	var value string
	var id int64
	if err := row.Scan(&value, &id); err != nil {
		return "", fmt.Errorf("no candidate rows in %v.%v: %w", q.Table, q.Column, err)
	}
	q.Avoider.seenIDs = append(q.Avoider.seenIDs, id)
	return value, nil
}
