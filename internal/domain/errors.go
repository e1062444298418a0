package domain

import "errors"

var (
	ErrMessageTooLong  = errors.New("message too long")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrMessageNotFound = errors.New("message not found")
)

// IsValidationError reports whether err was caused by a posting rule
// rejecting the command, as opposed to a collaborator failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMessageTooLong) || errors.Is(err, ErrEmptyMessage)
}
