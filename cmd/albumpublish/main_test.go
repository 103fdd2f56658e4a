package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/adampresley/albumshare/pkg/models"
	"github.com/adampresley/albumshare/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublishService struct {
	mu       sync.Mutex
	received map[string][]string
	failDir  string
}

func (f *fakePublishService) Publish(ctx context.Context, images []services.ImageReference) (models.PublishedAlbum, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(images) == 0 {
		return models.PublishedAlbum{}, services.ErrEmptySelection
	}

	dir := filepath.Base(filepath.Dir(images[0].(services.FileImage).Path))
	names := []string{}

	for _, img := range images {
		names = append(names, img.Name())
	}

	f.received[dir] = names

	if dir == f.failDir {
		return models.PublishedAlbum{}, &services.UploadFailedError{Index: 0, Cause: fmt.Errorf("boom")}
	}

	return models.PublishedAlbum{AlbumID: dir, Link: "https://gallery.example.com/?id=" + dir}, nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func TestImagesInDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "c.jpg", "a.PNG", "notes.txt", "b.webp")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	images, err := imagesInDir(dir)
	require.NoError(t, err)

	names := []string{}

	for _, img := range images {
		names = append(names, img.Name())
	}

	assert.Equal(t, []string{"a.PNG", "b.webp", "c.jpg"}, names)
}

func TestImagesInDir_Missing(t *testing.T) {
	_, err := imagesInDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestPublishDirs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, filepath.Join(root, "wedding"), "2.jpg", "1.jpg")
	writeFiles(t, filepath.Join(root, "party"), "x.jpg")
	writeFiles(t, filepath.Join(root, "empty"), "readme.txt")

	publish := &fakePublishService{received: map[string][]string{}, failDir: "party"}

	dirs := []string{
		filepath.Join(root, "wedding"),
		filepath.Join(root, "party"),
		filepath.Join(root, "empty"),
		filepath.Join(root, "missing"),
	}

	outcomes := publishDirs(context.Background(), publish, dirs, 2)
	require.Len(t, outcomes, 4)

	for index, outcome := range outcomes {
		assert.Equal(t, dirs[index], outcome.dir)
	}

	assert.NoError(t, outcomes[0].err)
	assert.Equal(t, "https://gallery.example.com/?id=wedding", outcomes[0].link)
	assert.Equal(t, []string{"1.jpg", "2.jpg"}, publish.received["wedding"])

	var uploadErr *services.UploadFailedError
	assert.ErrorAs(t, outcomes[1].err, &uploadErr)
	assert.ErrorIs(t, outcomes[2].err, services.ErrEmptySelection)
	assert.Error(t, outcomes[3].err)
}

func TestPublishDirs_CancelledBeforeStart(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, filepath.Join(root, "wedding"), "1.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	publish := &fakePublishService{received: map[string][]string{}}
	outcomes := publishDirs(ctx, publish, []string{filepath.Join(root, "wedding")}, 1)

	require.Len(t, outcomes, 1)
	assert.Equal(t, filepath.Join(root, "wedding"), outcomes[0].dir)
}
