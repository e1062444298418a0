package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "too long", err: ErrMessageTooLong, want: true},
		{name: "empty", err: ErrEmptyMessage, want: true},
		{name: "wrapped empty", err: fmt.Errorf("post: %w", ErrEmptyMessage), want: true},
		{name: "not found", err: ErrMessageNotFound, want: false},
		{name: "other", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidationError(tt.err))
		})
	}
}
