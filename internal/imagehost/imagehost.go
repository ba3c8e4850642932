// Package imagehost is the client for the third-party image-hosting API.
// Images are posted synchronously during post creation, one call per file;
// a failed upload is reported to the caller but never retried here.
package imagehost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"buddyscript/internal/config"
	"buddyscript/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Uploader uploads raw image bytes and returns the public URL the host
// assigned to them.
type Uploader interface {
	Upload(ctx context.Context, content []byte) (string, error)
}

// Client talks to an ImgBB-compatible upload endpoint: a form-encoded POST
// with the image as base64, answered with {"data": {"url": ...}}.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a Client from configuration.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.ImageHostTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.ImageHostURL,
		apiKey:     cfg.ImageHostAPIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload sends the image and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, content []byte) (hostedURL string, err error) {
	span, ctx := observability.NewSpan(ctx, "imagehost.upload",
		trace.WithSpanKind(trace.SpanKindClient))
	span.AddAttributes(attribute.Int("upload.bytes", len(content)))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if len(content) == 0 {
		return "", fmt.Errorf("empty image content")
	}

	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(content))

	endpoint := c.baseURL
	if c.apiKey != "" {
		endpoint = fmt.Sprintf("%s?key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image host returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("image host response malformed: %w", err)
	}
	if parsed.Data.URL == "" {
		return "", fmt.Errorf("image host response missing url")
	}

	return parsed.Data.URL, nil
}
