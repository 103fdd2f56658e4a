package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/albumshare/pkg/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type OrphanServicer interface {
	FindOrphans(ctx context.Context) ([]string, error)
}

type OrphanServiceConfig struct {
	AlbumService AlbumServicer
	Bucket       string
	S3Client     s3.S3Client
	UploadFolder string
}

/*
OrphanService reports uploaded images that no album points at. These come
from publishes that failed part way through, and from deleted albums. It
never deletes anything.
*/
type OrphanService struct {
	albumService AlbumServicer
	bucket       string
	s3Client     s3.S3Client
	uploadFolder string
}

func NewOrphanService(config OrphanServiceConfig) OrphanService {
	return OrphanService{
		albumService: config.AlbumService,
		bucket:       config.Bucket,
		s3Client:     config.S3Client,
		uploadFolder: strings.Trim(config.UploadFolder, "/"),
	}
}

func (s OrphanService) FindOrphans(ctx context.Context) ([]string, error) {
	var (
		err      error
		albums   []*models.Album
		response s3.ListResponse
	)

	if albums, err = s.albumService.GetAlbumList(ctx); err != nil {
		return nil, fmt.Errorf("error retrieving albums: %w", err)
	}

	response, err = s.s3Client.List(
		s.bucket,
		s.uploadFolder,
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			return IsImageFile(aws.ToString(obj.Key))
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("error listing uploaded images: %w", err)
	}

	keys := slices.Map(response.Objects, func(input s3.Object, index int) string {
		return input.Key
	})

	result := FindUnreferencedKeys(keys, albums)

	slog.Info("orphan scan finished", "numObjects", len(keys), "numAlbums", len(albums), "numOrphans", len(result))
	return result, nil
}

/*
FindUnreferencedKeys returns the keys that are not the trailing path of any
photo URL in albums.
*/
func FindUnreferencedKeys(keys []string, albums []*models.Album) []string {
	result := []string{}
	photoPaths := []string{}

	for _, album := range albums {
		for _, photo := range album.Photos {
			if u, err := url.Parse(photo); err == nil {
				photoPaths = append(photoPaths, strings.TrimPrefix(u.Path, "/"))
			}
		}
	}

	for _, key := range keys {
		key = strings.TrimPrefix(key, "/")
		referenced := false

		for _, p := range photoPaths {
			if p == key || strings.HasSuffix(p, "/"+key) {
				referenced = true
				break
			}
		}

		if !referenced {
			result = append(result, key)
		}
	}

	return result
}
