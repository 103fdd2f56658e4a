package services

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/adampresley/adamgokit/slices"
)

var (
	ValidImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic"}
)

/*
ImageReference is a single selected image waiting to be published.
*/
type ImageReference interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

type FileImage struct {
	Path string
}

func (f FileImage) Name() string {
	return filepath.Base(f.Path)
}

func (f FileImage) ContentType() string {
	return ContentTypeFromName(f.Path)
}

func (f FileImage) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

type MultipartImage struct {
	Header *multipart.FileHeader
}

func (m MultipartImage) Name() string {
	return filepath.Base(m.Header.Filename)
}

func (m MultipartImage) ContentType() string {
	if ct := m.Header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}

	return ContentTypeFromName(m.Header.Filename)
}

func (m MultipartImage) Open() (io.ReadCloser, error) {
	return m.Header.Open()
}

/*
ContentTypeFromName guesses an image content type from a file name,
falling back to image/jpeg.
*/
func ContentTypeFromName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))

	if ext == ".heic" {
		return "image/heic"
	}

	if ct := mime.TypeByExtension(ext); strings.HasPrefix(ct, "image/") {
		return ct
	}

	return "image/jpeg"
}

func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.IsInSlice(ext, ValidImageExtensions)
}
