package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/putoptions"
)

type S3ImageServiceConfig struct {
	Bucket        string
	PublicBaseURL string
	Region        string
	S3Client      s3.S3Client
	UploadFolder  string
}

/*
S3ImageService stores published images in an S3 compatible bucket under
<UploadFolder>/<albumID>/<index>-<name>.
*/
type S3ImageService struct {
	bucket        string
	publicBaseURL string
	region        string
	s3Client      s3.S3Client
	uploadFolder  string
}

type s3UploadResult struct {
	url string
	err error
}

func NewS3ImageService(config S3ImageServiceConfig) S3ImageService {
	return S3ImageService{
		bucket:        config.Bucket,
		publicBaseURL: strings.TrimRight(config.PublicBaseURL, "/"),
		region:        config.Region,
		s3Client:      config.S3Client,
		uploadFolder:  strings.Trim(config.UploadFolder, "/"),
	}
}

func (s S3ImageService) EnsureBucketExists() error {
	var (
		err    error
		exists bool
	)

	exists, err = s.s3Client.BucketExists(s.bucket)

	if err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", s.bucket, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating bucket", "bucketName", s.bucket)

	err = s.s3Client.CreateBucket(
		s.bucket,
		createbucketoptions.WithRegion(s.region),
	)

	if err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", s.bucket, err)
	}

	return nil
}

/*
Upload streams the image into the bucket. ctx is handed to the S3 uploader.
If ctx ends while the stream is still open the upload is reported as failed
right away and its result is only logged.
*/
func (s S3ImageService) Upload(ctx context.Context, image PreparedImage) (string, error) {
	key := s.ObjectKey(image)
	done := make(chan s3UploadResult, 1)

	go func() {
		u, err := s.put(ctx, key, image)
		done <- s3UploadResult{url: u, err: err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if r := <-done; r.err != nil {
				slog.Error("abandoned upload failed", "key", key, "error", r.err)
			}
		}()

		return "", fmt.Errorf("error uploading '%s' to S3: %w", key, ctx.Err())

	case r := <-done:
		return r.url, r.err
	}
}

func (s S3ImageService) ObjectKey(image PreparedImage) string {
	return path.Join(
		s.uploadFolder,
		image.AlbumID,
		fmt.Sprintf("%03d-%s", image.Index, path.Base(image.Name)),
	)
}

/*
URLForKey returns the URL a key is served from. Without a public base URL
the client builds the URL.
*/
func (s S3ImageService) URLForKey(key string) (string, error) {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}

	u, err := s.s3Client.GetUrl(s.bucket, key)

	if err != nil {
		return "", fmt.Errorf("error getting URL for '%s': %w", key, err)
	}

	return u, nil
}

func (s S3ImageService) put(ctx context.Context, key string, image PreparedImage) (string, error) {
	var (
		err error
	)

	stream, err := s.s3Client.PutStream(
		s.bucket,
		key,
		putoptions.WithContentType(image.ContentType),
		putoptions.WithContext(ctx),
	)

	if err != nil {
		return "", fmt.Errorf("error setting up S3 stream for '%s': %w", key, err)
	}

	if _, err = io.Copy(stream.Writer, bytes.NewReader(image.Data)); err != nil {
		_ = stream.Writer.Close()
		return "", fmt.Errorf("error writing '%s' to S3: %w", key, err)
	}

	if err = stream.Writer.Close(); err != nil {
		return "", fmt.Errorf("error closing S3 stream writer for '%s': %w", key, err)
	}

	if _, err = stream.Wait(); err != nil {
		return "", fmt.Errorf("error waiting for S3 upload of '%s': %w", key, err)
	}

	return s.URLForKey(key)
}
