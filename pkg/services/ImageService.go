package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

/*
PreparedImage is an image read into memory, ready for upload.
*/
type PreparedImage struct {
	AlbumID     string
	Index       int
	Name        string
	ContentType string
	Data        []byte
}

type ImagePreparer interface {
	Prepare(img PreparedImage) (PreparedImage, error)
}

type ImageServiceConfig struct {
	JpegQuality  int
	MaxImageEdge uint
}

/*
ImageService downsizes images whose longest edge is over MaxImageEdge and
re-encodes them as JPEG. A MaxImageEdge of zero leaves every image as is.
*/
type ImageService struct {
	jpegQuality  int
	maxImageEdge uint
}

func NewImageService(config ImageServiceConfig) ImageService {
	if config.JpegQuality <= 0 || config.JpegQuality > 100 {
		config.JpegQuality = 70
	}

	return ImageService{
		jpegQuality:  config.JpegQuality,
		maxImageEdge: config.MaxImageEdge,
	}
}

func (s ImageService) Prepare(img PreparedImage) (PreparedImage, error) {
	var (
		err     error
		decoded image.Image
		buf     bytes.Buffer
	)

	if s.maxImageEdge == 0 {
		return img, nil
	}

	if decoded, _, err = image.Decode(bytes.NewReader(img.Data)); err != nil {
		slog.Debug("image could not be decoded, uploading as is", "name", img.Name, "error", err)
		return img, nil
	}

	bounds := decoded.Bounds()

	if uint(bounds.Dx()) <= s.maxImageEdge && uint(bounds.Dy()) <= s.maxImageEdge {
		return img, nil
	}

	resized := s.resize(decoded, s.maxImageEdge)

	if err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: s.jpegQuality}); err != nil {
		return img, fmt.Errorf("error encoding resized image '%s': %w", img.Name, err)
	}

	slog.Debug("resized image", "name", img.Name, "width", bounds.Dx(), "height", bounds.Dy(), "maxEdge", s.maxImageEdge)

	img.Data = buf.Bytes()
	img.ContentType = "image/jpeg"
	img.Name = strings.TrimSuffix(img.Name, filepath.Ext(img.Name)) + ".jpg"

	return img, nil
}

func (s ImageService) resize(img image.Image, maxSize uint) image.Image {
	/*
	 * Determine which dimension to resize based on the longest edge
	 */
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	var newWidth, newHeight uint
	if width > height {
		newWidth = maxSize
		newHeight = uint(float64(height) * (float64(maxSize) / float64(width)))
	} else {
		newHeight = maxSize
		newWidth = uint(float64(width) * (float64(maxSize) / float64(height)))
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}
