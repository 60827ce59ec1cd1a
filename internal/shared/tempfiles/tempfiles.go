package tempfiles

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-feedback-backend/internal/shared/util"
)

// Dir is a scoped temporary storage area for per-request upload files.
// Files written here never outlive the request that created them.
type Dir struct {
	base string
}

// New creates a Dir rooted at base.
func New(base string) *Dir {
	return &Dir{base: base}
}

// Ensure makes sure the storage directory exists. Idempotent.
func (d *Dir) Ensure() error {
	if strings.TrimSpace(d.base) == "" {
		return errors.New("temp dir not configured")
	}
	return os.MkdirAll(d.base, 0o755)
}

// Save writes the reader to a uniquely named file and returns its path.
// The name combines a timestamp and a random component so concurrent uploads
// never collide.
func (d *Dir) Save(fileName string, r io.Reader) (string, error) {
	if err := d.Ensure(); err != nil {
		return "", fmt.Errorf("ensure temp dir: %w", err)
	}

	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}

	unique := fmt.Sprintf("%d_%s_%s", time.Now().UnixNano(), randomID(), sanitized)
	fullPath := filepath.Join(d.base, unique)

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("open temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return fullPath, nil
}

// Remove deletes a temp file. Idempotent: an already-deleted file is not an
// error.
func (d *Dir) Remove(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func randomID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
