package albums

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	internalmodels "github.com/adampresley/albumshare/cmd/albumshare/internal/models"
	"github.com/adampresley/albumshare/cmd/albumshare/internal/responses"
	"github.com/adampresley/albumshare/pkg/models"
	"github.com/adampresley/albumshare/pkg/services"
	"github.com/goccy/go-json"
)

const (
	imagesFormField = "images"
)

type AlbumHandlers interface {
	DeleteAlbum(w http.ResponseWriter, r *http.Request)
	DownloadAlbum(w http.ResponseWriter, r *http.Request)
	GetAlbum(w http.ResponseWriter, r *http.Request)
	ListAlbums(w http.ResponseWriter, r *http.Request)
	LiveAlbums(w http.ResponseWriter, r *http.Request)
	PublishAlbum(w http.ResponseWriter, r *http.Request)
	QRCode(w http.ResponseWriter, r *http.Request)
	ShareAlbum(w http.ResponseWriter, r *http.Request)
}

type AlbumControllerConfig struct {
	AlbumService   services.AlbumServicer
	GalleryBaseURL string
	MaxUploadBytes int64
	PublishService services.PublishServicer
	QRCodeService  services.QRCodeServicer
	ShareService   services.ShareServicer
	ZipService     services.ZipServicer
}

type AlbumController struct {
	albumService   services.AlbumServicer
	galleryBaseURL string
	maxUploadBytes int64
	publishService services.PublishServicer
	qrCodeService  services.QRCodeServicer
	shareService   services.ShareServicer
	zipService     services.ZipServicer
}

func NewAlbumController(config AlbumControllerConfig) AlbumController {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 200 << 20
	}

	return AlbumController{
		albumService:   config.AlbumService,
		galleryBaseURL: config.GalleryBaseURL,
		maxUploadBytes: config.MaxUploadBytes,
		publishService: config.PublishService,
		qrCodeService:  config.QRCodeService,
		shareService:   config.ShareService,
		zipService:     config.ZipService,
	}
}

/*
POST /albums
*/
func (c AlbumController) PublishAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err       error
		published models.PublishedAlbum
	)

	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadBytes)

	if err = r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			slog.Warn("publish request too large", "limit", tooLarge.Limit)
			responses.WriteError(w, http.StatusRequestEntityTooLarge, "The selected images are too large to publish at once.")
			return
		}

		slog.Error("error parsing publish request", "error", err)
		responses.WriteError(w, http.StatusBadRequest, "Could not read the selected images.")
		return
	}

	images := []services.ImageReference{}

	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()

		for _, header := range r.MultipartForm.File[imagesFormField] {
			images = append(images, services.MultipartImage{Header: header})
		}
	}

	if published, err = c.publishService.Publish(r.Context(), images); err != nil {
		status, response := publishErrorResponse(err)
		responses.WriteJson(w, status, response)
		return
	}

	responses.WriteJson(w, http.StatusCreated, internalmodels.NewPublishedAlbum(published))
}

/*
GET /albums
*/
func (c AlbumController) ListAlbums(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		albums []*models.Album
	)

	if albums, err = c.albumService.GetAlbumList(r.Context()); err != nil {
		slog.Error("error getting album list", "error", err)
		responses.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred getting albums.")
		return
	}

	responses.WriteJson(w, http.StatusOK, c.toViewModels(albums))
}

/*
GET /albums/live
*/
func (c AlbumController) LiveAlbums(w http.ResponseWriter, r *http.Request) {
	var (
		err     error
		updates <-chan []*models.Album
		b       []byte
	)

	rc := http.NewResponseController(w)

	if updates, err = c.albumService.Subscribe(r.Context()); err != nil {
		slog.Error("error subscribing to album list", "error", err)
		responses.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred getting albums.")
		return
	}

	// The stream outlives the server's write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for albums := range updates {
		if b, err = json.Marshal(c.toViewModels(albums)); err != nil {
			slog.Error("error encoding album list", "error", err)
			return
		}

		if _, err = fmt.Fprintf(w, "event: albums\ndata: %s\n\n", b); err != nil {
			return
		}

		if err = rc.Flush(); err != nil {
			return
		}
	}
}

/*
GET /albums/{albumId}
*/
func (c AlbumController) GetAlbum(w http.ResponseWriter, r *http.Request) {
	album, ok := c.lookupAlbum(w, r)

	if !ok {
		return
	}

	responses.WriteJson(w, http.StatusOK, internalmodels.NewAlbum(album, c.galleryBaseURL))
}

/*
GET /albums/{albumId}/qrcode
*/
func (c AlbumController) QRCode(w http.ResponseWriter, r *http.Request) {
	var (
		err error
		png []byte
	)

	album, ok := c.lookupAlbum(w, r)

	if !ok {
		return
	}

	if png, err = c.qrCodeService.RenderPNG(services.BuildShareLink(c.galleryBaseURL, album.AlbumID)); err != nil {
		slog.Error("error rendering QR code", "error", err, "albumID", album.AlbumID)
		responses.WriteError(w, http.StatusInternalServerError, "Could not create the QR code.")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=album-%s.png", album.AlbumID))
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}

/*
POST /albums/{albumId}/share
*/
func (c AlbumController) ShareAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err  error
		link string
	)

	albumID := httphelpers.GetFromRequest[string](r, "albumId")
	name := httphelpers.GetFromRequest[string](r, "name")
	email := httphelpers.GetFromRequest[string](r, "email")

	if link, err = c.shareService.ShareAlbum(r.Context(), albumID, name, email); err != nil {
		switch {
		case errors.Is(err, models.ErrAlbumNotFound):
			responses.WriteError(w, http.StatusNotFound, "Album not found.")

		case errors.Is(err, services.ErrInvalidEmail):
			responses.WriteError(w, http.StatusBadRequest, "Please provide a valid email address.")

		case errors.Is(err, services.ErrEmailNotConfigured):
			responses.WriteError(w, http.StatusServiceUnavailable, "Email is not set up.")

		default:
			slog.Error("error sharing album", "error", err, "albumID", albumID)
			responses.WriteError(w, http.StatusInternalServerError, "Could not send the album link.")
		}

		return
	}

	responses.WriteJson(w, http.StatusOK, internalmodels.ShareResponse{Link: link, Email: email})
}

/*
GET /albums/{albumId}/download
*/
func (c AlbumController) DownloadAlbum(w http.ResponseWriter, r *http.Request) {
	album, ok := c.lookupAlbum(w, r)

	if !ok {
		return
	}

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=album-%s.zip", album.AlbumID))

	if err := c.zipService.WriteAlbumZip(r.Context(), album, w); err != nil {
		slog.Error("error streaming album zip", "error", err, "albumID", album.AlbumID)
		return
	}
}

/*
DELETE /albums/{id}

Deletes by the repository ID, not the album ID. Uploaded images are left on
the image store.
*/
func (c AlbumController) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id := httphelpers.GetFromRequest[string](r, "id")

	if err := c.albumService.DeleteAlbum(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrAlbumNotFound) {
			responses.WriteError(w, http.StatusNotFound, "Album not found.")
			return
		}

		slog.Error("error deleting album", "error", err, "id", id)
		responses.WriteError(w, http.StatusInternalServerError, "Could not delete album.")
		return
	}

	slog.Info("album deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (c AlbumController) lookupAlbum(w http.ResponseWriter, r *http.Request) (*models.Album, bool) {
	albumID := httphelpers.GetFromRequest[string](r, "albumId")
	album, err := c.albumService.GetAlbumByAlbumID(r.Context(), albumID)

	if err != nil {
		if errors.Is(err, models.ErrAlbumNotFound) {
			responses.WriteError(w, http.StatusNotFound, "Album not found.")
			return nil, false
		}

		slog.Error("error getting album", "error", err, "albumID", albumID)
		responses.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred getting the album.")
		return nil, false
	}

	return album, true
}

func (c AlbumController) toViewModels(albums []*models.Album) []internalmodels.Album {
	result := make([]internalmodels.Album, 0, len(albums))

	for _, album := range albums {
		result = append(result, internalmodels.NewAlbum(album, c.galleryBaseURL))
	}

	return result
}
