package domain

import (
	"context"
	"time"
)

// MessageRepository defines persistence operations for posted messages.
type MessageRepository interface {
	// Save stores the message, overwriting any record with the same ID.
	Save(ctx context.Context, msg Message) error
}

// DateProvider supplies the current time.
type DateProvider interface {
	GetNow() time.Time
}
