package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/iliyamo/terrain-rental/internal/request"
)

// ImageStore persists uploaded images and returns the stored path.
type ImageStore interface {
	Save(fh *multipart.FileHeader, up *request.Upload) (string, error)
}

// DiskImages stores uploads as <Dir>/<uuid><ext>.
type DiskImages struct {
	Dir string
}

func (d DiskImages) Save(fh *multipart.FileHeader, up *request.Upload) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(d.Dir, uuid.NewString()+mimetype.Detect(up.Header).Extension())
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return filepath.ToSlash(path), dst.Close()
}
