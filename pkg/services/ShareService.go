package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/adampresley/albumshare/pkg/models"
)

var (
	ErrEmailNotConfigured = errors.New("email is not configured")
	ErrInvalidEmail       = errors.New("invalid email address")
)

type EmailSender func(apiKey, toName, toEmail, fromName, fromEmail string, data map[string]any) error

type ShareServicer interface {
	ShareAlbum(ctx context.Context, albumID, toName, toEmail string) (string, error)
}

type ShareServiceConfig struct {
	AlbumService   AlbumServicer
	EmailApiKey    string
	FromEmail      string
	FromName       string
	GalleryBaseURL string
	Send           EmailSender
}

/*
ShareService emails an album's share link to a client.
*/
type ShareService struct {
	albumService   AlbumServicer
	emailApiKey    string
	fromEmail      string
	fromName       string
	galleryBaseURL string
	send           EmailSender
}

func NewShareService(config ShareServiceConfig) ShareService {
	if config.Send == nil {
		config.Send = SendEmail
	}

	return ShareService{
		albumService:   config.AlbumService,
		emailApiKey:    config.EmailApiKey,
		fromEmail:      config.FromEmail,
		fromName:       config.FromName,
		galleryBaseURL: config.GalleryBaseURL,
		send:           config.Send,
	}
}

func (s ShareService) ShareAlbum(ctx context.Context, albumID, toName, toEmail string) (string, error) {
	var (
		err   error
		album *models.Album
	)

	if s.emailApiKey == "" {
		return "", ErrEmailNotConfigured
	}

	if _, err = mail.ParseAddress(toEmail); err != nil {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidEmail, toEmail)
	}

	if album, err = s.albumService.GetAlbumByAlbumID(ctx, albumID); err != nil {
		return "", err
	}

	link := BuildShareLink(s.galleryBaseURL, album.AlbumID)

	err = s.send(
		s.emailApiKey,
		toName,
		toEmail,
		s.fromName,
		s.fromEmail,
		map[string]any{
			"link":      link,
			"albumID":   album.AlbumID,
			"numPhotos": len(album.Photos),
		},
	)

	if err != nil {
		slog.Error("failed to send share email", "error", err, "email", toEmail, "albumID", albumID)
		return "", fmt.Errorf("error sending share email for album %s: %w", albumID, err)
	}

	slog.Info("album link emailed", "albumID", albumID, "email", toEmail)
	return link, nil
}
