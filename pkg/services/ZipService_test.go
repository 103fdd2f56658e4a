package services_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adampresley/albumshare/pkg/models"
	"github.com/adampresley/albumshare/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAlbumZip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write([]byte("contents of " + r.URL.Path))
	}))

	defer server.Close()

	service := services.NewZipService(services.ZipServiceConfig{HttpClient: server.Client()})

	album := &models.Album{
		AlbumID: "abcd1234",
		Photos:  []string{server.URL + "/b.jpg", server.URL + "/a.jpg"},
	}

	buf := bytes.Buffer{}
	require.NoError(t, service.WriteAlbumZip(context.Background(), album, &buf))

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)

	assert.Equal(t, "001-b.jpg", reader.File[0].Name)
	assert.Equal(t, "002-a.jpg", reader.File[1].Name)

	f, err := reader.File[0].Open()
	require.NoError(t, err)
	defer f.Close()

	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "contents of /b.jpg", string(b))
}

func TestWriteAlbumZip_DownloadFails(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	service := services.NewZipService(services.ZipServiceConfig{HttpClient: server.Client()})

	album := &models.Album{
		AlbumID: "abcd1234",
		Photos:  []string{server.URL + "/missing.jpg"},
	}

	err := service.WriteAlbumZip(context.Background(), album, io.Discard)
	assert.Error(t, err)
}

func TestZipEntryName(t *testing.T) {
	assert.Equal(t, "001-a.jpg", services.ZipEntryName(0, "https://i.ibb.co/xyz/a.jpg"))
	assert.Equal(t, "012-photo.jpg", services.ZipEntryName(11, "https://i.ibb.co/"))
	assert.Equal(t, "003-b.png", services.ZipEntryName(2, "https://cdn.example.com/p/b.png?v=2"))
}
