package uploads

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(t.TempDir(), "/uploads", logger.NewNopLogger())
	require.NoError(t, err)

	return store
}

func TestFileStore_SaveUpload(t *testing.T) {
	store := newTestStore(t)

	stored, err := store.SaveUpload("receipt.png", 4, strings.NewReader("data"))

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored.Name, ".png"))
	assert.Equal(t, "/uploads/"+stored.Name, stored.URL)

	content, err := os.ReadFile(filepath.Join(store.Dir(), stored.Name))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestFileStore_SaveUpload_UniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.SaveUpload("receipt.jpg", 1, strings.NewReader("a"))
	require.NoError(t, err)

	second, err := store.SaveUpload("receipt.jpg", 1, strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Name, second.Name)
}

func TestFileStore_SaveUpload_RejectsExtension(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"doc.pdf", "shell.php", "noext", "image.gif"} {
		_, err := store.SaveUpload(name, 4, strings.NewReader("data"))
		assert.EqualError(t, err, "Only JPG, JPEG, and PNG files are allowed.", "filename %q", name)
	}
}

func TestFileStore_SaveUpload_RejectsOversized(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveUpload("big.png", MaxFileSize+1, strings.NewReader("data"))

	assert.EqualError(t, err, "File is too large. Maximum size is 5MB.")
}

func TestFileStore_SaveBase64(t *testing.T) {
	store := newTestStore(t)
	payload := base64.StdEncoding.EncodeToString([]byte("image-bytes"))

	stored, err := store.SaveBase64("proof.jpeg", payload)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored.Name, "_proof.jpeg"))

	content, err := os.ReadFile(filepath.Join(store.Dir(), stored.Name))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))
}

func TestFileStore_SaveBase64_StripsDataURLPrefix(t *testing.T) {
	store := newTestStore(t)
	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("image-bytes"))

	stored, err := store.SaveBase64("proof.jpg", payload)

	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(store.Dir(), stored.Name))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))
}

func TestFileStore_SaveBase64_Failures(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name     string
		filename string
		data     string
		wantMsg  string
	}{
		{"missing filename", "", "aGk=", "Image data and file name are required"},
		{"missing data", "proof.png", "", "Image data and file name are required"},
		{"bad extension", "proof.bmp", "aGk=", "Only JPG, JPEG, and PNG files are allowed."},
		{"invalid base64", "proof.png", "not-base64!!!", "Invalid image data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SaveBase64(tt.filename, tt.data)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestNewFileStore_UnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0o555))
	t.Cleanup(func() { _ = os.Chmod(parent, 0o755) })

	_, err := NewFileStore(filepath.Join(parent, "uploads"), "/uploads", logger.NewNopLogger())

	assert.Error(t, err)
}
