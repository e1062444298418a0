package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackmichael/posting/internal/domain"
	"github.com/blackmichael/posting/internal/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, store, path string) {
	t.Helper()
	// Keep a stray .env in the working directory out of the test.
	t.Chdir(t.TempDir())
	t.Setenv("MESSAGES_STORE", store)
	t.Setenv("MESSAGES_DATABASE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
}

func TestRun_PostsMessage(t *testing.T) {
	setEnv(t, "memory", "messages.db")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(),
		[]string{"--id", "message-id", "--text", "Hello World", "--author", "Alice"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	var got messageResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "message-id", got.ID)
	assert.Equal(t, "Hello World", got.Text)
	assert.Equal(t, "Alice", got.Author)

	publishedAt, err := time.Parse(time.RFC3339, got.PublishedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), publishedAt, time.Minute)
}

func TestRun_GeneratesIDAndReadsStdin(t *testing.T) {
	setEnv(t, "memory", "messages.db")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(),
		[]string{"--text", "-", "--author", "Bob"},
		strings.NewReader("  from stdin  \n"), &stdout, &stderr)
	require.NoError(t, err)

	var got messageResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	_, err = uuid.Parse(got.ID)
	assert.NoError(t, err)
	assert.Equal(t, "  from stdin  ", got.Text)
}

func TestRun_RejectsInvalidMessages(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{name: "empty", text: "", wantErr: "message cannot be empty"},
		{name: "whitespace", text: "     ", wantErr: "message cannot be empty"},
		{name: "too long", text: strings.Repeat("x", domain.MaxMessageLength+1), wantErr: "longer than 280"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, "memory", "messages.db")
			var stdout, stderr bytes.Buffer

			err := run(context.Background(),
				[]string{"--text", tt.text, "--author", "Alice"},
				strings.NewReader(""), &stdout, &stderr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Zero(t, stdout.Len())
		})
	}
}

func TestRun_RequiresAuthor(t *testing.T) {
	setEnv(t, "memory", "messages.db")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"--text", "hi"}, strings.NewReader(""), &stdout, &stderr)
	require.EqualError(t, err, "--author is required")
}

func TestRun_SQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.db")
	setEnv(t, "sqlite", path)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(),
		[]string{"--id", "m1", "--text", "persisted", "--author", "Alice"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	repo, err := sqlite.NewRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.GetMessage(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Text)
	assert.Equal(t, "Alice", got.Author)
}
