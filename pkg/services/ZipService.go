package services

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"

	"github.com/adampresley/albumshare/pkg/models"
)

type ZipServicer interface {
	WriteAlbumZip(ctx context.Context, album *models.Album, w io.Writer) error
}

type ZipServiceConfig struct {
	HttpClient *http.Client
}

/*
ZipService streams every photo in an album into a zip archive, fetching
them from the image store one at a time.
*/
type ZipService struct {
	httpClient *http.Client
}

func NewZipService(config ZipServiceConfig) ZipService {
	if config.HttpClient == nil {
		config.HttpClient = http.DefaultClient
	}

	return ZipService{
		httpClient: config.HttpClient,
	}
}

func (s ZipService) WriteAlbumZip(ctx context.Context, album *models.Album, w io.Writer) error {
	var (
		err error
	)

	l := slog.With("albumID", album.AlbumID)
	l.Info("starting album zip", "numPhotos", len(album.Photos))

	zipWriter := zip.NewWriter(w)

	for index, photoURL := range album.Photos {
		if err = s.addFile(ctx, zipWriter, index, photoURL); err != nil {
			l.Error("failed to add photo to zip", "error", err, "url", photoURL)
			_ = zipWriter.Close()
			return err
		}
	}

	if err = zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}

	l.Info("finished album zip")
	return nil
}

func (s ZipService) addFile(ctx context.Context, zipWriter *zip.Writer, index int, photoURL string) error {
	var (
		err      error
		request  *http.Request
		response *http.Response
		dest     io.Writer
	)

	if request, err = http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil); err != nil {
		return fmt.Errorf("failed to create request for '%s': %w", photoURL, err)
	}

	if response, err = s.httpClient.Do(request); err != nil {
		return fmt.Errorf("failed to download '%s': %w", photoURL, err)
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download '%s', status: %s", photoURL, response.Status)
	}

	imageName := ZipEntryName(index, photoURL)

	if dest, err = zipWriter.Create(imageName); err != nil {
		return fmt.Errorf("failed to create file '%s' in zip: %w", imageName, err)
	}

	if _, err = io.Copy(dest, response.Body); err != nil {
		return fmt.Errorf("failed to copy file '%s' to zip: %w", imageName, err)
	}

	return nil
}

/*
ZipEntryName prefixes the photo's file name with its position so the
archive keeps album order.
*/
func ZipEntryName(index int, photoURL string) string {
	name := "photo.jpg"

	if u, err := url.Parse(photoURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
			name = base
		}
	}

	return fmt.Sprintf("%03d-%s", index+1, name)
}
