package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/albumshare/pkg/configuration"
	"github.com/adampresley/albumshare/pkg/database"
	"github.com/adampresley/albumshare/pkg/services"
	"github.com/rfberaldo/sqlz"
)

/*
Services holds everything both binaries need. OrphanService is nil unless
images are stored in S3.
*/
type Services struct {
	DB             *sqlz.DB
	AlbumService   services.AlbumServicer
	OrphanService  services.OrphanServicer
	PublishService services.PublishServicer
	QRCodeService  services.QRCodeServicer
	ShareService   services.ShareServicer
	ZipService     services.ZipServicer
}

func NewServices(config configuration.Config) (Services, error) {
	var (
		err         error
		result      Services
		idGenerator services.IDGenerator
		uploader    services.ImageUploader
	)

	if result.DB, err = database.Connect(config.DSN); err != nil {
		return result, err
	}

	albumService := services.NewAlbumService(services.AlbumServiceConfig{
		DB: result.DB,
	})

	result.AlbumService = albumService

	if idGenerator, err = services.NewIDGenerator(config.AlbumIDScheme, config.AlbumIDLength); err != nil {
		return result, err
	}

	httpClient := &http.Client{}

	if config.UsesS3() {
		var (
			s3Client s3.S3Client
		)

		if s3Client, err = newS3Client(config); err != nil {
			return result, err
		}

		s3ImageService := services.NewS3ImageService(services.S3ImageServiceConfig{
			Bucket:        config.AwsBucket,
			PublicBaseURL: config.PublicBaseURL,
			Region:        config.AwsRegion,
			S3Client:      s3Client,
			UploadFolder:  config.UploadFolder,
		})

		if err = s3ImageService.EnsureBucketExists(); err != nil {
			return result, err
		}

		uploader = s3ImageService

		result.OrphanService = services.NewOrphanService(services.OrphanServiceConfig{
			AlbumService: albumService,
			Bucket:       config.AwsBucket,
			S3Client:     s3Client,
			UploadFolder: config.UploadFolder,
		})
	} else {
		if config.ImgbbApiKey == "" {
			slog.Warn("no imgbb API key configured. uploads will be rejected")
		}

		uploader = services.NewImgbbService(services.ImgbbServiceConfig{
			ApiKey:            config.ImgbbApiKey,
			Endpoint:          config.ImgbbEndpoint,
			ExpirationSeconds: config.ImgbbExpiration,
			HttpClient:        httpClient,
		})
	}

	result.PublishService = services.NewPublishService(services.PublishServiceConfig{
		AlbumService:   albumService,
		GalleryBaseURL: config.GalleryBaseURL,
		IDGenerator:    idGenerator,
		ImagePreparer: services.NewImageService(services.ImageServiceConfig{
			JpegQuality:  config.JpegQuality,
			MaxImageEdge: uint(max(config.MaxImageEdge, 0)),
		}),
		PersistTimeout: config.PersistTimeout(),
		UploadTimeout:  config.UploadTimeout(),
		Uploader:       uploader,
	})

	result.QRCodeService = services.NewQRCodeService(services.QRCodeServiceConfig{
		Size: config.QRCodeSize,
	})

	result.ShareService = services.NewShareService(services.ShareServiceConfig{
		AlbumService:   albumService,
		EmailApiKey:    config.EmailApiKey,
		FromEmail:      config.FromEmail,
		FromName:       config.FromName,
		GalleryBaseURL: config.GalleryBaseURL,
	})

	result.ZipService = services.NewZipService(services.ZipServiceConfig{
		HttpClient: httpClient,
	})

	return result, nil
}

func newS3Client(config configuration.Config) (s3.S3Client, error) {
	var (
		err error
	)

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	s3Client, err := s3.NewClient(awsConfig)

	if err != nil {
		return nil, fmt.Errorf("error creating S3 client: %w", err)
	}

	return s3Client, nil
}
