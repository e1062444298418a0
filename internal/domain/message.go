package domain

import "time"

// MaxMessageLength is the maximum number of characters a message may contain.
const MaxMessageLength = 280

// Message is a posted message as handed to the repository.
type Message struct {
	// ID is supplied by the caller and assumed unique.
	ID string

	// Text is the message body, stored exactly as posted.
	Text string

	// Author identifies the poster.
	Author string

	// PublishedAt is assigned from the DateProvider, never by the caller.
	PublishedAt time.Time
}

// PostMessageCommand is the input of PostMessageUseCase. It carries no
// timestamp; the use case stamps the message itself.
type PostMessageCommand struct {
	ID     string
	Text   string
	Author string
}
