package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// MaxFileSize caps uploads at 5MB, same limit the storefront has always used.
const MaxFileSize = 5 << 20

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// DiskStore writes uploaded images under a base directory with uuid names so
// concurrent uploads never collide.
type DiskStore struct {
	dir        string
	publicPath string
}

func NewDiskStore(dir, publicPath string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, publicPath: publicPath}, nil
}

// SaveImage validates content type and size, then stores the file and returns
// the public path to serve it from.
func (d *DiskStore) SaveImage(contentType string, size int64, r io.Reader) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	if size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	name := uuid.NewString() + ext
	path := filepath.Join(d.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	// guard against clients lying about Content-Length
	if _, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1)); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		_ = os.Remove(path)
		return "", ErrFileTooLarge
	}

	return d.publicPath + "/" + name, nil
}
