package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded documents and returns a stable reference for the
// stored copy. The marketplace core only ever passes these references
// around; layout is an implementation detail.
type Store interface {
	Save(ctx context.Context, category, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "uploads"
	}
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(ctx context.Context, category, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	category = sanitizeSegment(category)
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))

	destDir := filepath.Join(s.dir, category)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dest := filepath.Join(destDir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dest)
		return "", err
	}

	return "/" + filepath.ToSlash(dest), nil
}

// Remove is best-effort cleanup; a missing file is not an error.
func (s *LocalStore) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ref = strings.TrimPrefix(strings.TrimSpace(ref), "/")
	if ref == "" {
		return nil
	}
	// refuse anything outside the upload root
	clean := filepath.Clean(filepath.FromSlash(ref))
	if strings.Contains(clean, "..") || !strings.HasPrefix(clean, filepath.Clean(s.dir)+string(filepath.Separator)) {
		return nil
	}

	err := os.Remove(clean)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "misc"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "misc"
	}
	return b.String()
}

var _ Store = (*LocalStore)(nil)
