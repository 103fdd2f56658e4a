package services_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/adampresley/albumshare/pkg/models"
	"github.com/adampresley/albumshare/pkg/services"
)

type memoryImage struct {
	name string
	data []byte
}

func (m memoryImage) Name() string {
	return m.name
}

func (m memoryImage) ContentType() string {
	return "image/jpeg"
}

func (m memoryImage) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

type brokenImage struct {
	name string
}

func (b brokenImage) Name() string {
	return b.name
}

func (b brokenImage) ContentType() string {
	return "image/jpeg"
}

func (b brokenImage) Open() (io.ReadCloser, error) {
	return nil, fmt.Errorf("file is gone")
}

func images(names ...string) []services.ImageReference {
	result := []services.ImageReference{}

	for _, name := range names {
		result = append(result, memoryImage{name: name, data: []byte("bytes of " + name)})
	}

	return result
}

/*
fakeUploader returns https://host/<name> for each upload unless the name is
listed in failOn.
*/
type fakeUploader struct {
	mu      sync.Mutex
	calls   []services.PreparedImage
	failOn  map[string]error
	delays  map[string]time.Duration
	urlFunc func(img services.PreparedImage) string
}

func (f *fakeUploader) Upload(ctx context.Context, img services.PreparedImage) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, img)
	f.mu.Unlock()

	if d, ok := f.delays[img.Name]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err, ok := f.failOn[img.Name]; ok {
		return "", err
	}

	if f.urlFunc != nil {
		return f.urlFunc(img), nil
	}

	return "https://host/" + img.Name, nil
}

func (f *fakeUploader) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []string{}

	for _, c := range f.calls {
		result = append(result, c.Name)
	}

	return result
}

type fakeAlbumService struct {
	mu        sync.Mutex
	created   []*models.Album
	createErr error
	albums    map[string]*models.Album
}

func newFakeAlbumService() *fakeAlbumService {
	return &fakeAlbumService{
		albums: map[string]*models.Album{},
	}
}

func (f *fakeAlbumService) CreateAlbum(ctx context.Context, album *models.Album) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	album.ID = fmt.Sprintf("record-%d", len(f.created)+1)
	f.created = append(f.created, album)
	f.albums[album.AlbumID] = album
	return nil
}

func (f *fakeAlbumService) DeleteAlbum(ctx context.Context, id string) error {
	return nil
}

func (f *fakeAlbumService) GetAlbumByAlbumID(ctx context.Context, albumID string) (*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if album, ok := f.albums[albumID]; ok {
		return album, nil
	}

	return nil, models.ErrAlbumNotFound
}

func (f *fakeAlbumService) GetAlbumList(ctx context.Context) ([]*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*models.Album{}

	for _, album := range f.albums {
		result = append(result, album)
	}

	return result, nil
}

func (f *fakeAlbumService) Subscribe(ctx context.Context) (<-chan []*models.Album, error) {
	return nil, fmt.Errorf("not supported")
}

type sequenceIDGenerator struct {
	ids   []string
	index int
}

func (g *sequenceIDGenerator) GenerateID() (string, error) {
	if g.index >= len(g.ids) {
		return "", fmt.Errorf("out of ids")
	}

	id := g.ids[g.index]
	g.index++
	return id, nil
}
