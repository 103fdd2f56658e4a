package services_test

import (
	"testing"

	"github.com/adampresley/albumshare/pkg/models"
	"github.com/adampresley/albumshare/pkg/services"
	"github.com/stretchr/testify/assert"
)

func TestFindUnreferencedKeys(t *testing.T) {
	albums := []*models.Album{
		{
			AlbumID: "abcd1234",
			Photos: []string{
				"https://cdn.example.com/published/abcd1234/000-a.jpg",
				"https://s3.us-east-1.amazonaws.com/bucket/published/abcd1234/001-b.jpg",
			},
		},
	}

	keys := []string{
		"published/abcd1234/000-a.jpg",
		"/published/abcd1234/001-b.jpg",
		"published/zzzz9999/000-a.jpg",
		"published/abcd1234/002-c.jpg",
	}

	got := services.FindUnreferencedKeys(keys, albums)

	assert.Equal(t, []string{"published/zzzz9999/000-a.jpg", "published/abcd1234/002-c.jpg"}, got)
}

func TestFindUnreferencedKeys_NoAlbums(t *testing.T) {
	got := services.FindUnreferencedKeys([]string{"published/a/000-a.jpg"}, nil)
	assert.Equal(t, []string{"published/a/000-a.jpg"}, got)
}

func TestFindUnreferencedKeys_SuffixMustBeWholeSegment(t *testing.T) {
	albums := []*models.Album{
		{Photos: []string{"https://cdn.example.com/xpublished/a/000-a.jpg"}},
	}

	got := services.FindUnreferencedKeys([]string{"published/a/000-a.jpg"}, albums)
	assert.Equal(t, []string{"published/a/000-a.jpg"}, got)
}
