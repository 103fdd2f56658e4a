package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const (
	DefaultImgbbEndpoint = "https://api.imgbb.com/1/upload"
)

/*
ImageUploader pushes one image to a remote image store and returns the
public URL it can be viewed at.
*/
type ImageUploader interface {
	Upload(ctx context.Context, image PreparedImage) (string, error)
}

type ImgbbServiceConfig struct {
	ApiKey            string
	Endpoint          string
	ExpirationSeconds int
	HttpClient        *http.Client
}

type ImgbbService struct {
	apiKey            string
	endpoint          string
	expirationSeconds int
	httpClient        *http.Client
}

type imgbbResponse struct {
	Data *struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

func NewImgbbService(config ImgbbServiceConfig) ImgbbService {
	if config.Endpoint == "" {
		config.Endpoint = DefaultImgbbEndpoint
	}

	if config.HttpClient == nil {
		config.HttpClient = http.DefaultClient
	}

	return ImgbbService{
		apiKey:            config.ApiKey,
		endpoint:          config.Endpoint,
		expirationSeconds: config.ExpirationSeconds,
		httpClient:        config.HttpClient,
	}
}

/*
Upload sends the image as the multipart field "image" and expects a JSON
body with the hosted URL at data.url.
*/
func (s ImgbbService) Upload(ctx context.Context, image PreparedImage) (string, error) {
	var (
		err      error
		body     bytes.Buffer
		part     io.Writer
		request  *http.Request
		response *http.Response
		b        []byte
	)

	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(image.Name)))
	header.Set("Content-Type", image.ContentType)

	if part, err = writer.CreatePart(header); err != nil {
		return "", fmt.Errorf("error creating multipart body for '%s': %w", image.Name, err)
	}

	if _, err = part.Write(image.Data); err != nil {
		return "", fmt.Errorf("error writing image '%s' to multipart body: %w", image.Name, err)
	}

	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("error closing multipart body for '%s': %w", image.Name, err)
	}

	if request, err = http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL(), &body); err != nil {
		return "", fmt.Errorf("error creating upload request for '%s': %w", image.Name, err)
	}

	request.Header.Set("Content-Type", writer.FormDataContentType())

	if response, err = s.httpClient.Do(request); err != nil {
		return "", fmt.Errorf("error uploading '%s': %w", image.Name, err)
	}

	defer response.Body.Close()

	if b, err = io.ReadAll(response.Body); err != nil {
		return "", fmt.Errorf("error reading upload response for '%s': %w", image.Name, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("%w: '%s' returned status %s", ErrUploadRejected, image.Name, response.Status)
	}

	result := imgbbResponse{}

	if err = json.Unmarshal(b, &result); err != nil {
		return "", fmt.Errorf("%w: decoding response for '%s': %v", ErrMalformedResponse, image.Name, err)
	}

	if result.Data == nil || strings.TrimSpace(result.Data.URL) == "" {
		return "", fmt.Errorf("%w: no data.url in response for '%s'", ErrMalformedResponse, image.Name)
	}

	return result.Data.URL, nil
}

func (s ImgbbService) uploadURL() string {
	params := url.Values{}
	params.Set("key", s.apiKey)

	if s.expirationSeconds > 0 {
		params.Set("expiration", strconv.Itoa(s.expirationSeconds))
	}

	separator := "?"

	if strings.Contains(s.endpoint, "?") {
		separator = "&"
	}

	return s.endpoint + separator + params.Encode()
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
