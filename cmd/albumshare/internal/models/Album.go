package models

import (
	"time"

	"github.com/adampresley/albumshare/pkg/models"
	"github.com/adampresley/albumshare/pkg/services"
)

/*
Album is the JSON shape of an album returned by the API.
*/
type Album struct {
	ID         string    `json:"id"`
	AlbumID    string    `json:"albumId"`
	Link       string    `json:"link"`
	QRCodeURL  string    `json:"qrCodeUrl"`
	CoverPhoto string    `json:"coverPhoto"`
	NumPhotos  int       `json:"numPhotos"`
	Photos     []string  `json:"photos"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Index *int   `json:"index,omitempty"`
}

type ShareResponse struct {
	Link  string `json:"link"`
	Email string `json:"email"`
}

type OrphansResponse struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
}

func NewAlbum(album *models.Album, galleryBaseURL string) Album {
	return Album{
		ID:         album.ID,
		AlbumID:    album.AlbumID,
		Link:       services.BuildShareLink(galleryBaseURL, album.AlbumID),
		QRCodeURL:  QRCodeURL(album.AlbumID),
		CoverPhoto: album.CoverPhoto(),
		NumPhotos:  len(album.Photos),
		Photos:     album.Photos,
		CreatedAt:  album.CreatedAt,
	}
}

func NewPublishedAlbum(published models.PublishedAlbum) Album {
	cover := ""

	if len(published.Photos) > 0 {
		cover = published.Photos[0]
	}

	return Album{
		ID:         published.ID,
		AlbumID:    published.AlbumID,
		Link:       published.Link,
		QRCodeURL:  QRCodeURL(published.AlbumID),
		CoverPhoto: cover,
		NumPhotos:  len(published.Photos),
		Photos:     published.Photos,
		CreatedAt:  published.CreatedAt,
	}
}

func QRCodeURL(albumID string) string {
	return "/albums/" + albumID + "/qrcode"
}
