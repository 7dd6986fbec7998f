package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadStore validates and stores post images on local disk.
type UploadStore struct {
	dir      string
	maxBytes int64
}

// NewUploadStore creates an UploadStore rooted at dir.
func NewUploadStore(dir string, maxBytes int64) *UploadStore {
	return &UploadStore{dir: dir, maxBytes: maxBytes}
}

// Save validates the uploaded file and writes it under the store
// directory with a generated name, returning that name. The extension
// allow-list and the sniffed content type must both pass; the client's
// declared Content-Type is never trusted.
func (u *UploadStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > u.maxBytes {
		return "", fmt.Errorf("file too large, max %d bytes", u.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("invalid file extension, only jpg/jpeg/png allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("sniff upload: %w", err)
	}
	if !allowedImageTypes[mt.String()] {
		return "", errors.New("invalid file type, file must be a valid JPEG or PNG image")
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(u.dir, 0o775); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("img_%s%s", uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return name, nil
}
