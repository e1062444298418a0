package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/blackmichael/posting/internal/clock"
	"github.com/blackmichael/posting/internal/config"
	"github.com/blackmichael/posting/internal/domain"
	"github.com/blackmichael/posting/internal/inmemory"
	"github.com/blackmichael/posting/internal/sqlite"
	"github.com/google/uuid"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		id     string
		text   string
		author string
	)

	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&id, "id", "", "Message ID (generated when empty)")
	fs.StringVar(&text, "text", "", `Message text, or "-" to read it from stdin`)
	fs.StringVar(&author, "author", "", "Author of the message (e.g. alice)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if author == "" {
		return fmt.Errorf("--author is required")
	}
	if text == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
	}
	if id == "" {
		id = uuid.NewString()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := cfg.Logger(stderr)

	repo, closeRepo, err := openRepository(cfg, logger)
	if err != nil {
		return fmt.Errorf("create repository: %w", err)
	}
	defer closeRepo()

	rec := &recordingRepository{next: repo}
	useCase := domain.NewPostMessageUseCase(rec, clock.System{}, logger)

	cmd := domain.PostMessageCommand{ID: id, Text: text, Author: author}
	if err := useCase.Handle(ctx, cmd); err != nil {
		switch {
		case errors.Is(err, domain.ErrMessageTooLong):
			return fmt.Errorf("message is longer than %d characters", domain.MaxMessageLength)
		case errors.Is(err, domain.ErrEmptyMessage):
			return fmt.Errorf("message cannot be empty")
		default:
			return fmt.Errorf("post message: %w", err)
		}
	}

	logger.Info("message posted", "id", rec.saved.ID, "author", rec.saved.Author, "store", cfg.Store)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(toMessageResponse(rec.saved))
}

// openRepository returns the MessageRepository selected by cfg along with a
// function releasing its resources.
func openRepository(cfg *config.Config, logger *slog.Logger) (domain.MessageRepository, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := sqlite.NewRepository(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("opened sqlite store", "path", cfg.DatabasePath)
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Error("error closing sqlite store", "error", err)
			}
		}, nil
	default:
		return inmemory.NewRepository(), func() {}, nil
	}
}

// recordingRepository remembers the message it forwarded so the command can
// print what was stored.
type recordingRepository struct {
	next  domain.MessageRepository
	saved domain.Message
}

func (r *recordingRepository) Save(ctx context.Context, msg domain.Message) error {
	if err := r.next.Save(ctx, msg); err != nil {
		return err
	}
	r.saved = msg
	return nil
}

type messageResponse struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
}

func toMessageResponse(msg domain.Message) messageResponse {
	return messageResponse{
		ID:          msg.ID,
		Text:        msg.Text,
		Author:      msg.Author,
		PublishedAt: msg.PublishedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
