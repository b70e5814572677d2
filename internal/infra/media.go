package infra

import (
	"context"
	"fmt"
	"io"
	"time"

	"shopcat/internal/config"

	"resty.dev/v3"
)

// MediaClient uploads brand logos and catalog images to the media service
// and returns the secure URL stored on the owning record.
type MediaClient struct {
	baseURL    string
	httpClient *resty.Client
}

type mediaUploadResponse struct {
	SecureURL string `json:"secure_url"`
}

type mediaErrorResponse struct {
	Detail string `json:"detail"`
}

func NewMediaClient(cfg *config.Config) *MediaClient {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Authorization", "Bearer "+cfg.MediaAPIKey)

	return &MediaClient{
		baseURL:    cfg.MediaServiceURL,
		httpClient: client,
	}
}

// Upload streams a single image to the media service. folder groups uploads
// per entity kind ("brands", "categories", "products").
func (c *MediaClient) Upload(ctx context.Context, folder, filename string, file io.Reader) (string, error) {
	var result mediaUploadResponse
	var apiErr mediaErrorResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("file", filename, file).
		SetFormData(map[string]string{"folder": folder}).
		SetResult(&result).
		SetError(&apiErr).
		Post(c.baseURL + "/v1/uploads")
	if err != nil {
		return "", fmt.Errorf("media: upload request: %w", err)
	}
	if !resp.IsSuccess() {
		if apiErr.Detail != "" {
			return "", fmt.Errorf("media: upload rejected: %s", apiErr.Detail)
		}
		return "", fmt.Errorf("media: upload failed with status %d", resp.StatusCode())
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("media: upload response missing secure_url")
	}
	return result.SecureURL, nil
}

// Close releases idle connections held by the underlying client.
func (c *MediaClient) Close() error {
	return c.httpClient.Close()
}
