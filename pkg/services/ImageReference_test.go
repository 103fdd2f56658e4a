package services_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/adampresley/albumshare/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeFromName(t *testing.T) {
	assert.Equal(t, "image/jpeg", services.ContentTypeFromName("a.JPG"))
	assert.Equal(t, "image/png", services.ContentTypeFromName("a.png"))
	assert.Equal(t, "image/heic", services.ContentTypeFromName("a.heic"))
	assert.Equal(t, "image/jpeg", services.ContentTypeFromName("a.unknown"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, services.IsImageFile("published/abc/000-a.JPEG"))
	assert.True(t, services.IsImageFile("b.webp"))
	assert.False(t, services.IsImageFile("notes.txt"))
	assert.False(t, services.IsImageFile("published/abc/"))
}

func TestFileImage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "beach.png")
	require.NoError(t, os.WriteFile(p, []byte("png bytes"), 0o644))

	img := services.FileImage{Path: p}

	assert.Equal(t, "beach.png", img.Name())
	assert.Equal(t, "image/png", img.ContentType())

	rc, err := img.Open()
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(b))
}
