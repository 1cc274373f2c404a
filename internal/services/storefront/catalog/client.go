package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultBaseURL is the public catalog service.
const DefaultBaseURL = "https://fakestoreapi.com"

const tracerName = "github.com/louisbranch/storefront/internal/services/storefront/catalog"

// FetchError reports a catalog fetch that did not complete successfully.
// StatusCode is zero when no response was received.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "catalog fetch failed"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog fetch failed: status %d", e.StatusCode)
	}
	if e.Err != nil {
		return "catalog fetch failed: " + e.Err.Error()
	}
	return "catalog fetch failed"
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsFetchError reports whether err carries a FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// Source produces display items for one page load.
type Source interface {
	FetchAndTransform(ctx context.Context) ([]DisplayItem, error)
}

// Client fetches raw products over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for fetches.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds each fetch. Zero leaves the fetch bounded only by the
// caller's context.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout <= 0 {
			return
		}
		copied := *c.httpClient
		copied.Timeout = timeout
		c.httpClient = &copied
	}
}

// NewClient builds a catalog client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("catalog base url %q must be http or https", baseURL)
	}
	client := &Client{baseURL: baseURL, httpClient: &http.Client{}}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// FetchAndTransform requests up to FetchLimit products and maps them to
// display items. Any transport failure, non-2xx status or undecodable body
// yields a *FetchError. There is no retry.
func (c *Client) FetchAndTransform(ctx context.Context) ([]DisplayItem, error) {
	if c == nil {
		return nil, &FetchError{Err: errors.New("catalog client is not configured")}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.fetch")
	defer span.End()

	raw, err := c.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog fetch failed")
		return nil, err
	}
	items := Transform(raw)
	span.SetAttributes(attribute.Int("catalog.items", len(items)))
	return items, nil
}

func (c *Client) fetch(ctx context.Context) ([]RawProduct, error) {
	endpoint := c.baseURL + "/products?limit=" + strconv.Itoa(FetchLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	var raw []RawProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode products: %w", err)}
	}
	return raw, nil
}

var _ Source = (*Client)(nil)
