package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yeremiapane/restaurant-console/utils"
)

// MaxBrandingSize caps uploaded logos and other branding assets.
const MaxBrandingSize = 2 << 20

var (
	ErrTooLarge    = errors.New("file exceeds the upload size limit")
	ErrExists      = errors.New("file already exists")
	ErrInvalidPath = errors.New("invalid storage path")
)

// Local stores files under a directory that is served at a public URL
// prefix.
type Local struct {
	Root      string
	PublicURL string
	MaxSize   int64
}

func NewLocal(root, publicURL string) *Local {
	return &Local{
		Root:      root,
		PublicURL: strings.TrimRight(publicURL, "/"),
		MaxSize:   MaxBrandingSize,
	}
}

func (l *Local) resolve(name string) (string, string, error) {
	clean := path.Clean("/" + filepath.ToSlash(name))
	if clean == "/" || strings.Contains(name, "..") {
		return "", "", ErrInvalidPath
	}
	rel := strings.TrimPrefix(clean, "/")
	return filepath.Join(l.Root, filepath.FromSlash(rel)), rel, nil
}

// Upload writes r to name. size is the declared length; it and the bytes
// actually read are both checked against MaxSize. Without overwrite an
// existing file is left alone and ErrExists returned.
func (l *Local) Upload(ctx context.Context, name string, r io.Reader, size int64, overwrite bool) (string, error) {
	if l.MaxSize > 0 && size > l.MaxSize {
		return "", ErrTooLarge
	}
	full, rel, err := l.resolve(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	src := r
	if l.MaxSize > 0 {
		src = io.LimitReader(r, l.MaxSize+1)
	}
	n, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if l.MaxSize > 0 && n > l.MaxSize {
		return "", ErrTooLarge
	}

	if !overwrite {
		f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				return "", ErrExists
			}
			return "", fmt.Errorf("reserve %s: %w", rel, err)
		}
		f.Close()
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", fmt.Errorf("store %s: %w", rel, err)
	}

	utils.InfoLogger.Printf("Stored %s (%d bytes)", rel, n)
	return l.URL(rel), nil
}

// URL is the public address of a stored file.
func (l *Local) URL(name string) string {
	return l.PublicURL + "/" + strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(name)), "/")
}

func (l *Local) Remove(name string) error {
	full, _, err := l.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
