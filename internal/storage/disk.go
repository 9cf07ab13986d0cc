package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cottageplayer/internal/utils"
)

// ThumbSuffix is appended to the stored filename to derive its thumbnail
// sibling, e.g. "song.mp3" -> "song.mp3.thumb.jpg".
const ThumbSuffix = ".thumb.jpg"

// DiskStore writes media files and thumbnails under a single sandboxed
// root directory. Nothing outside the root is ever read or written.
type DiskStore struct {
	root string
	log  *zap.SugaredLogger
}

func NewDiskStore(root string, log *zap.SugaredLogger) (*DiskStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &DiskStore{root: abs, log: log}, nil
}

func (s *DiskStore) Root() string { return s.root }

// Save writes data under a sanitized version of name, renaming with a short
// random suffix on collision, and returns the stored filename.
func (s *DiskStore) Save(name string, data []byte) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.ReplaceAll(name, "\\", "_"), "/", "_"))
	if base == "" || base == "." {
		return "", fmt.Errorf("%w: uploaded file must have a filename", utils.ErrValidation)
	}

	dest := filepath.Join(s.root, base)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		base = fmt.Sprintf("%s-%s%s", stem, uuid.NewString()[:8], ext)
		dest = filepath.Join(s.root, base)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return base, nil
}

// Resolve maps a request path to an absolute file path inside the root.
// Paths that escape the root or do not name an existing regular file
// resolve to ErrNotFound.
func (s *DiskStore) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(s.root, filepath.Clean("/"+path)))
	if err != nil {
		return "", utils.ErrNotFound
	}
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", utils.ErrNotFound
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return "", utils.ErrNotFound
	}
	return abs, nil
}

// WriteThumbnail generates and stores a thumbnail for the stored file,
// returning the thumbnail filename. Generation failure is a soft failure:
// the empty string is returned and the upload proceeds without one.
func (s *DiskStore) WriteThumbnail(storedName, mimeType string, data []byte) string {
	thumb, err := Thumbnail(data, mimeType)
	if err != nil {
		s.log.Debugw("no thumbnail generated", "file", storedName, "mime", mimeType, "reason", err)
		return ""
	}
	thumbName := storedName + ThumbSuffix
	if err := os.WriteFile(filepath.Join(s.root, thumbName), thumb, 0o644); err != nil {
		s.log.Warnw("write thumbnail failed", "file", thumbName, "error", err)
		return ""
	}
	return thumbName
}

// Delete removes the stored file and, best effort, its thumbnail sibling.
func (s *DiskStore) Delete(storedName string) error {
	target, err := s.Resolve(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		return fmt.Errorf("remove media file: %w", err)
	}
	if err := os.Remove(target + ThumbSuffix); err != nil && !os.IsNotExist(err) {
		s.log.Warnw("remove thumbnail failed", "file", storedName+ThumbSuffix, "error", err)
	}
	return nil
}
