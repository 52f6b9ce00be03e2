package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/vault"
)

// DB represents a database connection
type DB struct {
	*sql.DB
	logger zerolog.Logger
}

var _ vault.Store = (*DB)(nil)

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the lib/pq connection string.
func (p ConnectionParams) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// New creates a new database connection
func New(ctx context.Context, params ConnectionParams) (*DB, error) {
	db, err := sql.Open("postgres", params.DSN())
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, logger: log.With().Str("component", "database").Logger()}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS vault_notes (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			content TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			note_date TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create vault_notes: %w", err)
	}

	_, _ = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS vault_notes_category_idx ON vault_notes (category)`)
	return nil
}

// Save inserts the note or updates it in place if the ID exists.
func (db *DB) Save(ctx context.Context, note model.Note) (model.Note, error) {
	note, err := vault.Prepare(note, time.Now())
	if err != nil {
		return model.Note{}, err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO vault_notes (id, title, category, content, source, note_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			content = EXCLUDED.content,
			source = EXCLUDED.source,
			note_date = EXCLUDED.note_date
	`, note.ID, note.Title, note.Category, note.Content, note.Source, note.Date)
	if err != nil {
		return model.Note{}, fmt.Errorf("saving note: %w", err)
	}

	db.logger.Debug().Str("id", note.ID).Str("category", note.Category).Msg("Note saved")
	return note, nil
}

// List returns matching notes, newest first.
func (db *DB) List(ctx context.Context, f vault.Filter) ([]model.Note, error) {
	query, args := listQuery(f)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Category, &n.Content, &n.Source, &n.Date); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Delete removes a note by ID.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM vault_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", model.ErrNoteNotFound, id)
	}
	return nil
}

// listQuery builds the SELECT for a filter with positional parameters.
func listQuery(f vault.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" && f.Category != "All" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, likePattern(q))
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT id, title, category, content, source, note_date FROM vault_notes")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY seq DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

// likePattern escapes LIKE wildcards and wraps the text for a substring match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
