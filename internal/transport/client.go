// Package transport performs the catalog fetch and raw image downloads
// against the appetizers backend.
package transport

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"net/url"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/xenking/appetizers/internal/domain/appetizer"
)

// Sentinel errors for catalog fetch failures. Exactly one of these wraps
// every error returned by FetchCatalog.
var (
	// ErrInvalidURL means the configured endpoint does not parse as a URL.
	// This is a configuration defect, not a runtime condition.
	ErrInvalidURL = errors.New("invalid catalog URL")
	// ErrUnreachable means the transport could not complete the exchange.
	ErrUnreachable = errors.New("unable to reach server")
	// ErrInvalidResponse means a response arrived with a non-200 status.
	ErrInvalidResponse = errors.New("invalid server response")
	// ErrInvalidData means a 200 response body failed to parse.
	ErrInvalidData = errors.New("invalid catalog data")
)

// appetizersResource is appended to the configured base URL.
const appetizersResource = "appetizers"

// Client fetches the appetizer catalog and downloads item images over HTTP.
// A single attempt per call, no retries; callers impose timeouts through the
// request context or the injected http.Client.
type Client struct {
	httpClient *http.Client
	catalogURL string
	lg         *zap.Logger
}

// New creates a Client for the given base URL. When httpClient is nil an
// instrumented default client is used.
func New(baseURL string, httpClient *http.Client, lg *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		catalogURL: baseURL + "/" + appetizersResource,
		lg:         lg,
	}
}

// FetchCatalog retrieves the full catalog in server-provided order.
func (c *Client) FetchCatalog(ctx context.Context) ([]appetizer.Appetizer, error) {
	u, err := url.Parse(c.catalogURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.lg.Error("catalog URL does not parse", zap.String("url", c.catalogURL))
		return nil, errors.Wrap(ErrInvalidURL, c.catalogURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidURL, "build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.lg.Warn("catalog fetch failed", zap.Error(err))
		return nil, errors.Wrap(ErrUnreachable, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.lg.Warn("unexpected catalog status", zap.Int("status", resp.StatusCode))
		return nil, errors.Wrapf(ErrInvalidResponse, "status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidData, "read body")
	}

	items, err := appetizer.DecodeCatalog(body)
	if err != nil {
		c.lg.Warn("catalog body does not decode", zap.Error(err))
		return nil, errors.Wrap(ErrInvalidData, "decode catalog")
	}
	return items, nil
}

// DownloadImage fetches the raw image bytes at rawURL. It returns nil for
// every failure cause: unparsable URL, transport error, non-2xx status, or a
// body that does not decode as an image. Callers treat nil uniformly as
// "no image available".
func (c *Client) DownloadImage(ctx context.Context, rawURL string) []byte {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.lg.Debug("image download failed", zap.String("url", rawURL), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		c.lg.Debug("payload is not a decodable image", zap.String("url", rawURL))
		return nil
	}
	return data
}
