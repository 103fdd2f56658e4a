package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/adampresley/albumshare/pkg/models"
)

type PublishServicer interface {
	Publish(ctx context.Context, images []ImageReference) (models.PublishedAlbum, error)
}

type PublishServiceConfig struct {
	AlbumService   AlbumServicer
	GalleryBaseURL string
	IDGenerator    IDGenerator
	ImagePreparer  ImagePreparer
	Now            func() time.Time
	PersistTimeout time.Duration
	UploadTimeout  time.Duration
	Uploader       ImageUploader
}

/*
PublishService turns a selection of images into a shareable album. Images
are uploaded one at a time, in selection order, and the album is only saved
once every upload has succeeded. Images already uploaded when a later step
fails stay on the image store.
*/
type PublishService struct {
	albumService   AlbumServicer
	galleryBaseURL string
	idGenerator    IDGenerator
	imagePreparer  ImagePreparer
	now            func() time.Time
	persistTimeout time.Duration
	uploadTimeout  time.Duration
	uploader       ImageUploader
}

func NewPublishService(config PublishServiceConfig) PublishService {
	if config.IDGenerator == nil {
		config.IDGenerator = NewRandomIDGenerator(DefaultAlbumIDLength)
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	return PublishService{
		albumService:   config.AlbumService,
		galleryBaseURL: config.GalleryBaseURL,
		idGenerator:    config.IDGenerator,
		imagePreparer:  config.ImagePreparer,
		now:            config.Now,
		persistTimeout: config.PersistTimeout,
		uploadTimeout:  config.UploadTimeout,
		uploader:       config.Uploader,
	}
}

func (s PublishService) Publish(ctx context.Context, images []ImageReference) (models.PublishedAlbum, error) {
	var (
		err     error
		albumID string
		url     string
	)

	result := models.PublishedAlbum{}

	if len(images) == 0 {
		return result, ErrEmptySelection
	}

	if albumID, err = s.idGenerator.GenerateID(); err != nil {
		return result, fmt.Errorf("error generating album ID: %w", err)
	}

	l := slog.With("albumID", albumID, "numImages", len(images))
	l.Info("publishing album")

	/*
	 * Upload each image in order. The next upload does not start until
	 * the previous one has finished, so photo order matches selection order.
	 */
	photoURLs := make([]string, 0, len(images))

	for index, ref := range images {
		if url, err = s.uploadOne(ctx, albumID, index, ref); err != nil {
			l.Error("upload failed, abandoning album", "index", index, "name", ref.Name(), "uploaded", len(photoURLs), "error", err)
			return result, &UploadFailedError{Index: index, Cause: err}
		}

		l.Debug("uploaded image", "index", index, "name", ref.Name(), "url", url)
		photoURLs = append(photoURLs, url)
	}

	/*
	 * Persist the album as a single create
	 */
	album := &models.Album{
		AlbumID:   albumID,
		Photos:    photoURLs,
		CreatedAt: s.now().UTC(),
	}

	persistCtx, cancel := withOptionalTimeout(ctx, s.persistTimeout)
	defer cancel()

	if err = s.albumService.CreateAlbum(persistCtx, album); err != nil {
		l.Error("error saving album. uploaded images are orphaned", "uploaded", len(photoURLs), "error", err)
		return result, &PersistenceFailedError{AlbumID: albumID, Cause: err}
	}

	result = models.PublishedAlbum{
		ID:        album.ID,
		AlbumID:   albumID,
		Link:      BuildShareLink(s.galleryBaseURL, albumID),
		Photos:    photoURLs,
		CreatedAt: album.CreatedAt,
	}

	l.Info("album published", "link", result.Link)
	return result, nil
}

func (s PublishService) uploadOne(ctx context.Context, albumID string, index int, ref ImageReference) (string, error) {
	var (
		err      error
		prepared PreparedImage
		url      string
	)

	if err = ctx.Err(); err != nil {
		return "", err
	}

	if prepared, err = readImage(albumID, index, ref); err != nil {
		return "", err
	}

	if s.imagePreparer != nil {
		if prepared, err = s.imagePreparer.Prepare(prepared); err != nil {
			return "", err
		}
	}

	uploadCtx, cancel := withOptionalTimeout(ctx, s.uploadTimeout)
	defer cancel()

	if url, err = s.uploader.Upload(uploadCtx, prepared); err != nil {
		return "", err
	}

	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%w: empty URL for '%s'", ErrMalformedResponse, prepared.Name)
	}

	return url, nil
}

/*
BuildShareLink appends the album ID as the "id" query parameter of the
gallery base URL.
*/
func BuildShareLink(galleryBaseURL, albumID string) string {
	return strings.TrimRight(galleryBaseURL, "/") + "/?id=" + albumID
}

func readImage(albumID string, index int, ref ImageReference) (PreparedImage, error) {
	var (
		err error
		rc  io.ReadCloser
		b   []byte
	)

	if rc, err = ref.Open(); err != nil {
		return PreparedImage{}, fmt.Errorf("error opening image '%s': %w", ref.Name(), err)
	}

	defer rc.Close()

	if b, err = io.ReadAll(rc); err != nil {
		return PreparedImage{}, fmt.Errorf("error reading image '%s': %w", ref.Name(), err)
	}

	return PreparedImage{
		AlbumID:     albumID,
		Index:       index,
		Name:        ref.Name(),
		ContentType: ref.ContentType(),
		Data:        b,
	}, nil
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
