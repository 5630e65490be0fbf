package uploads

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/orderdesk/orderdesk-api/pkg/errors"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// MaxFileSize bounds accepted payment-proof images
const MaxFileSize = 5_000_000

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// StoredFile is the opaque locator for a saved image
type StoredFile struct {
	Name string `json:"file_path"`
	URL  string `json:"file_url"`
}

// BlobStore saves payment-proof images under collision-resistant names and
// hands back retrievable locators. Callers never see directory layout.
type BlobStore interface {
	SaveUpload(filename string, size int64, r io.Reader) (*StoredFile, error)
	SaveBase64(filename, data string) (*StoredFile, error)
}

// FileStore is a filesystem-backed BlobStore
type FileStore struct {
	dir     string
	baseURL string
	logger  logger.Logger
}

// NewFileStore creates the store directory if needed and verifies it is
// writable
func NewFileStore(dir, baseURL string, logger logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload directory is not usable: %w", err)
	}

	probe := filepath.Join(dir, ".write-check")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return nil, fmt.Errorf("upload directory is not writable: %w", err)
	}
	_ = os.Remove(probe)

	return &FileStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// SaveUpload validates and stores a streamed image. The stored name is a
// UUID with the original extension.
func (s *FileStore) SaveUpload(filename string, size int64, r io.Reader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if !allowedExtensions[ext] {
		return nil, apperrors.NewUploadError("Only JPG, JPEG, and PNG files are allowed.")
	}

	if size > MaxFileSize {
		return nil, apperrors.NewUploadError("File is too large. Maximum size is 5MB.")
	}

	name := uuid.New().String() + ext
	target := filepath.Join(s.dir, name)

	f, err := os.Create(target)

	if err != nil {
		s.logger.Error("Failed to create upload target", "error", err, "file", name)
		return nil, apperrors.NewUploadError("Server error: Upload directory is not writable")
	}

	// One extra byte past the limit distinguishes truncation from fit.
	written, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1))

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(target)
		s.logger.Error("Failed to save upload", "error", err, "file", name)
		return nil, apperrors.NewUploadError("There was an error uploading your file. Please try again.")
	}

	if written > MaxFileSize {
		_ = os.Remove(target)
		return nil, apperrors.NewUploadError("File is too large. Maximum size is 5MB.")
	}

	s.logger.Info("Image stored", "file", name, "bytes", written)
	return s.locator(name), nil
}

// SaveBase64 decodes and stores a base64 image payload. A data URL prefix
// is tolerated and stripped. The stored name is a UUID joined with the
// caller's base filename.
func (s *FileStore) SaveBase64(filename, data string) (*StoredFile, error) {
	if filename == "" || data == "" {
		return nil, apperrors.NewValidationError("Image data and file name are required")
	}

	ext := strings.ToLower(filepath.Ext(filename))

	if !allowedExtensions[ext] {
		return nil, apperrors.NewUploadError("Only JPG, JPEG, and PNG files are allowed.")
	}

	if idx := strings.Index(data, ","); idx >= 0 {
		data = data[idx+1:]
	}

	payload, err := base64.StdEncoding.DecodeString(data)

	if err != nil {
		return nil, apperrors.NewUploadError("Invalid image data")
	}

	if len(payload) > MaxFileSize {
		return nil, apperrors.NewUploadError("File is too large. Maximum size is 5MB.")
	}

	name := uuid.New().String() + "_" + filepath.Base(filename)
	target := filepath.Join(s.dir, name)

	if err := os.WriteFile(target, payload, 0o644); err != nil {
		s.logger.Error("Failed to save base64 image", "error", err, "file", name)
		return nil, apperrors.NewUploadError("Failed to save image file")
	}

	s.logger.Info("Image stored", "file", name, "bytes", len(payload))
	return s.locator(name), nil
}

// Dir returns the directory uploads are stored in
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) locator(name string) *StoredFile {
	return &StoredFile{
		Name: name,
		URL:  s.baseURL + "/" + name,
	}
}
