package domain

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf16"
)

// PostMessageUseCase enforces the posting rules and hands valid messages to
// the repository, stamped with the DateProvider's current time.
type PostMessageUseCase struct {
	repo   MessageRepository
	clock  DateProvider
	logger *slog.Logger
}

// NewPostMessageUseCase creates a PostMessageUseCase. A nil logger discards
// all output.
func NewPostMessageUseCase(repo MessageRepository, clock DateProvider, logger *slog.Logger) *PostMessageUseCase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PostMessageUseCase{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// Handle validates cmd and saves the resulting message. It returns
// ErrMessageTooLong or ErrEmptyMessage when a rule rejects the command, in
// which case nothing is saved. Repository errors are returned as is.
func (uc *PostMessageUseCase) Handle(ctx context.Context, cmd PostMessageCommand) error {
	if err := validateText(cmd.Text); err != nil {
		uc.logger.Debug("post rejected", "id", cmd.ID, "author", cmd.Author, "error", err)
		return err
	}

	msg := Message{
		ID:          cmd.ID,
		Text:        cmd.Text,
		Author:      cmd.Author,
		PublishedAt: uc.clock.GetNow(),
	}
	if err := uc.repo.Save(ctx, msg); err != nil {
		return err
	}

	uc.logger.Debug("message posted", "id", msg.ID, "author", msg.Author, "published_at", msg.PublishedAt)
	return nil
}

// validateText applies the posting rules in order; the first failure wins.
// Trimming only decides emptiness, the stored text keeps its whitespace.
func validateText(text string) error {
	if textLength(text) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if strings.TrimFunc(text, isBlank) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// textLength counts UTF-16 code units, so a character outside the Basic
// Multilingual Plane counts twice. Invalid bytes count once each.
func textLength(text string) int {
	n := 0
	for _, r := range text {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// isBlank matches the ECMAScript WhiteSpace and LineTerminator sets. Unlike
// unicode.IsSpace it includes U+FEFF and excludes U+0085.
func isBlank(r rune) bool {
	switch r {
	case '\t', '\v', '\f', '\n', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
