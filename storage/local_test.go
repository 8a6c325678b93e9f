package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "http://localhost:8080/uploads/")
	ctx := context.Background()

	url, err := l.Upload(ctx, "logos/r1/logo.png", strings.NewReader("first"), 5, true)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/logos/r1/logo.png", url)

	_, err = l.Upload(ctx, "logos/r1/logo.png", strings.NewReader("second"), 6, false)
	assert.ErrorIs(t, err, ErrExists)

	_, err = l.Upload(ctx, "logos/r1/logo.png", strings.NewReader("second"), 6, true)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "logos", "r1", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestUploadRejectsLargeFiles(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	ctx := context.Background()
	big := bytes.Repeat([]byte("x"), MaxBrandingSize+1)

	_, err := l.Upload(ctx, "a.png", bytes.NewReader(big), int64(len(big)), true)
	assert.ErrorIs(t, err, ErrTooLarge)

	// undeclared size is caught while copying
	_, err = l.Upload(ctx, "b.png", bytes.NewReader(big), -1, true)
	assert.ErrorIs(t, err, ErrTooLarge)
	_, statErr := os.Stat(filepath.Join(l.Root, "b.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadRejectsTraversal(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	_, err := l.Upload(context.Background(), "../escape.png", strings.NewReader("x"), 1, true)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestRemove(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	ctx := context.Background()
	_, err := l.Upload(ctx, "x.png", strings.NewReader("x"), 1, true)
	require.NoError(t, err)

	require.NoError(t, l.Remove("x.png"))
	require.NoError(t, l.Remove("x.png"))
}
