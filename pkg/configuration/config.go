package configuration

import (
	"strings"
	"time"

	"github.com/adampresley/configinator"
)

type Config struct {
	AlbumDirs             string `flag:"dirs" env:"ALBUM_DIRS" default:"" description:"Comma separated directories to publish, one album per directory (albumpublish only)"`
	AlbumIDLength         int    `flag:"idlength" env:"ALBUM_ID_LENGTH" default:"8" description:"Length of generated album IDs"`
	AlbumIDScheme         string `flag:"idscheme" env:"ALBUM_ID_SCHEME" default:"random" description:"Album ID scheme. Valid values are 'random', 'sqids', and 'uuid'"`
	AwsEndpointUrl        string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion             string `flag:"awsregion" env:"AWS_REGION" default:"us-central-1" description:"AWS region"`
	AwsAccessKeyId        string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey    string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket             string `flag:"awsbucket" env:"AWS_BUCKET" default:"albumshare" description:"S3 bucket"`
	DSN                   string `flag:"dsn" env:"DSN" default:"file:./data/albumshare.db" description:"Data source name"`
	EmailApiKey           string `flag:"emailapikey" env:"EMAIL_API_KEY" default:"" description:"API key for sending emails"`
	FromEmail             string `flag:"fromemail" env:"FROM_EMAIL" default:"noreply@example.com" description:"Address share emails are sent from"`
	FromName              string `flag:"fromname" env:"FROM_NAME" default:"GLR Photography" description:"Name share emails are sent from"`
	GalleryBaseURL        string `flag:"gallery" env:"GALLERY_BASE_URL" default:"http://localhost:8080" description:"Base URL of the public gallery page"`
	Host                  string `flag:"host" env:"HOST" default:"localhost:8081" description:"The address and port to bind the HTTP server to"`
	ImageStore            string `flag:"imagestore" env:"IMAGE_STORE" default:"imgbb" description:"Where images are uploaded. Valid values are 'imgbb' and 's3'"`
	ImgbbApiKey           string `flag:"imgbbkey" env:"IMGBB_API_KEY" default:"" description:"imgbb API key"`
	ImgbbEndpoint         string `flag:"imgbbep" env:"IMGBB_ENDPOINT" default:"https://api.imgbb.com/1/upload" description:"imgbb upload endpoint"`
	ImgbbExpiration       int    `flag:"imgbbexp" env:"IMGBB_EXPIRATION" default:"0" description:"Seconds before imgbb deletes an image. 0 keeps images forever"`
	JpegQuality           int    `flag:"jpegquality" env:"JPEG_QUALITY" default:"70" description:"JPEG quality used when resizing images"`
	LogLevel              string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxImageEdge          int    `flag:"maxedge" env:"MAX_IMAGE_EDGE" default:"0" description:"Resize images whose longest edge is larger than this. 0 disables resizing"`
	MaxPublishWorkers     int    `flag:"mpw" env:"MAX_PUBLISH_WORKERS" default:"2" description:"Maximum number of albums published at once (albumpublish only)"`
	MaxUploadMB           int    `flag:"maxupload" env:"MAX_UPLOAD_MB" default:"200" description:"Maximum size of a publish request in megabytes"`
	PersistTimeoutSeconds int    `flag:"persisttimeout" env:"PERSIST_TIMEOUT_SECONDS" default:"10" description:"Timeout for saving an album"`
	PublicBaseURL         string `flag:"publicbaseurl" env:"PUBLIC_BASE_URL" default:"" description:"Public URL of the S3 bucket. When empty the S3 client builds image URLs"`
	QRCodeSize            int    `flag:"qrsize" env:"QR_CODE_SIZE" default:"256" description:"QR code size in pixels"`
	UploadFolder          string `flag:"uploadfolder" env:"UPLOAD_FOLDER" default:"albums" description:"S3 folder uploaded images are stored under"`
	UploadTimeoutSeconds  int    `flag:"uploadtimeout" env:"UPLOAD_TIMEOUT_SECONDS" default:"60" description:"Timeout for uploading a single image"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

func (c Config) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSeconds) * time.Second
}

func (c Config) PersistTimeout() time.Duration {
	return time.Duration(c.PersistTimeoutSeconds) * time.Second
}

func (c Config) UsesS3() bool {
	return strings.EqualFold(c.ImageStore, "s3")
}

/*
Dirs splits AlbumDirs on commas, dropping empty entries.
*/
func (c Config) Dirs() []string {
	result := []string{}

	for _, d := range strings.Split(c.AlbumDirs, ",") {
		if d = strings.TrimSpace(d); d != "" {
			result = append(result, d)
		}
	}

	return result
}
