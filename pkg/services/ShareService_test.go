package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/adampresley/albumshare/pkg/models"
	"github.com/adampresley/albumshare/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	toName  string
	toEmail string
	data    map[string]any
}

func newShareService(apiKey string, sent *[]sentEmail, sendErr error) (services.ShareService, *fakeAlbumService) {
	albumService := newFakeAlbumService()
	albumService.albums["abcd1234"] = &models.Album{
		ID:      "record-1",
		AlbumID: "abcd1234",
		Photos:  []string{"https://host/a.jpg", "https://host/b.jpg"},
	}

	service := services.NewShareService(services.ShareServiceConfig{
		AlbumService:   albumService,
		EmailApiKey:    apiKey,
		FromEmail:      "studio@example.com",
		FromName:       "Studio",
		GalleryBaseURL: "https://gallery.example.com",
		Send: func(apiKey, toName, toEmail, fromName, fromEmail string, data map[string]any) error {
			*sent = append(*sent, sentEmail{toName: toName, toEmail: toEmail, data: data})
			return sendErr
		},
	})

	return service, albumService
}

func TestShareAlbum(t *testing.T) {
	sent := []sentEmail{}
	service, _ := newShareService("key", &sent, nil)

	link, err := service.ShareAlbum(context.Background(), "abcd1234", "Jane", "jane@example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://gallery.example.com/?id=abcd1234", link)
	require.Len(t, sent, 1)
	assert.Equal(t, "jane@example.com", sent[0].toEmail)
	assert.Equal(t, link, sent[0].data["link"])
	assert.Equal(t, 2, sent[0].data["numPhotos"])
}

func TestShareAlbum_Errors(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		albumID  string
		email    string
		sendErr  error
		expected error
	}{
		{name: "email not configured", apiKey: "", albumID: "abcd1234", email: "jane@example.com", expected: services.ErrEmailNotConfigured},
		{name: "invalid email", apiKey: "key", albumID: "abcd1234", email: "not-an-email", expected: services.ErrInvalidEmail},
		{name: "unknown album", apiKey: "key", albumID: "missing1", email: "jane@example.com", expected: models.ErrAlbumNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sent := []sentEmail{}
			service, _ := newShareService(tt.apiKey, &sent, tt.sendErr)

			_, err := service.ShareAlbum(context.Background(), tt.albumID, "Jane", tt.email)

			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, sent)
		})
	}
}

func TestShareAlbum_SendFailure(t *testing.T) {
	sent := []sentEmail{}
	cause := fmt.Errorf("resend is down")
	service, _ := newShareService("key", &sent, cause)

	link, err := service.ShareAlbum(context.Background(), "abcd1234", "Jane", "jane@example.com")

	assert.ErrorIs(t, err, cause)
	assert.Empty(t, link)
}
