package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blackmichael/posting/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS messages (
		id           TEXT PRIMARY KEY,
		text         TEXT NOT NULL,
		author       TEXT NOT NULL,
		published_at TEXT NOT NULL
	)`

// Repository implements domain.MessageRepository using SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository opens the SQLite database at dsn, verifies the connection,
// creates the messages table if needed and returns a new Repository. The
// caller should call Close when the repository is no longer needed.
func NewRepository(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer; sharing one connection also keeps
	// ":memory:" databases from splitting across connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save upserts a message by ID.
func (r *Repository) Save(ctx context.Context, msg domain.Message) error {
	query := `
		INSERT INTO messages (id, text, author, published_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			text = excluded.text,
			author = excluded.author,
			published_at = excluded.published_at`

	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.Text,
		msg.Author,
		msg.PublishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save message %s: %w", msg.ID, err)
	}
	return nil
}

// GetMessage retrieves a message by ID. It returns domain.ErrMessageNotFound
// when no message has that ID.
func (r *Repository) GetMessage(ctx context.Context, id string) (*domain.Message, error) {
	var (
		msg         domain.Message
		publishedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, text, author, published_at FROM messages WHERE id = ?`, id,
	).Scan(
		&msg.ID,
		&msg.Text,
		&msg.Author,
		&publishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", id, err)
	}

	msg.PublishedAt, err = time.Parse(time.RFC3339Nano, publishedAt)
	if err != nil {
		return nil, fmt.Errorf("parse published_at of message %s: %w", id, err)
	}
	return &msg, nil
}

// CountMessages returns the number of stored messages.
func (r *Repository) CountMessages(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
