package openrouter

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/andybalholm/brotli"
)

// DefaultBaseURL is the OpenRouter API root used when no override is
// configured.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Client talks to the OpenRouter API. A zero-value Client is not usable;
// construct one with NewClient. A Client is safe for concurrent use; every
// stream it opens owns its own decoder and accumulator state.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	provisioningKey string
	xTitle          string
	httpReferer     string
	logger          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for a proxy or test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient supplies the *http.Client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithXTitle sets the X-Title app attribution header.
func WithXTitle(title string) Option {
	return func(c *Client) { c.xTitle = title }
}

// WithHTTPReferer sets the HTTP-Referer app attribution header.
func WithHTTPReferer(referer string) Option {
	return func(c *Client) { c.httpReferer = referer }
}

// WithProvisioningKey sets the key used for the key-management endpoints.
func WithProvisioningKey(key string) Option {
	return func(c *Client) { c.provisioningKey = key }
}

// WithLogger sets the structured logger. Without it the client is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient builds a Client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any, key string) (*http.Request, error) {
	if key == "" {
		return nil, ErrKeyNotConfigured
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept-Encoding", "gzip, br")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.xTitle != "" {
		req.Header.Set("X-Title", c.xTitle)
	}
	if c.httpReferer != "" {
		req.Header.Set("HTTP-Referer", c.httpReferer)
	}

	return req, nil
}

// do executes the request and decodes a JSON response into out. Non-success
// statuses are parsed into *APIError.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	bodyReader, err := decompressReader(resp)
	if err != nil {
		return fmt.Errorf("decompress response: %w", err)
	}
	if closer, ok := bodyReader.(io.Closer); ok {
		defer closer.Close()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(bodyReader)
		apiErr := parseAPIError(resp.StatusCode, resp.Header.Get("X-Request-Id"), body)
		c.logger.Error("api request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"status", resp.StatusCode,
			"error", apiErr.Message,
		)
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(bodyReader).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// stream executes a streaming request and hands the live body to a Stream
// driven by the given protocol adapter. A non-success status before any
// frame is read surfaces as an error from this call.
func (c *Client) stream(ctx context.Context, path string, body any, adapter protocolAdapter, opts ...StreamOption) (*Stream, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body, c.apiKey)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}

	bodyReader, err := decompressReader(resp)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("decompress response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(bodyReader)
		resp.Body.Close()
		return nil, parseAPIError(resp.StatusCode, resp.Header.Get("X-Request-Id"), data)
	}

	c.logger.Debug("stream opened", "path", path)

	return newStream(&streamBody{reader: bodyReader, closer: resp.Body}, adapter, c.logger, opts...), nil
}

// streamBody pairs a possibly-wrapping decompression reader with the
// response body it must close.
type streamBody struct {
	reader io.Reader
	closer io.Closer
}

func (b *streamBody) Read(p []byte) (int, error) { return b.reader.Read(p) }

func (b *streamBody) Close() error { return b.closer.Close() }

// decompressReader unwraps gzip and brotli response bodies.
func decompressReader(resp *http.Response) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "br":
		return brotli.NewReader(resp.Body), nil
	default:
		return resp.Body, nil
	}
}

// apiResponse is the {"data": ...} envelope used by the discovery, usage
// and key-management endpoints.
type apiResponse[T any] struct {
	Data T `json:"data"`
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, c.apiKey)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body, c.apiKey)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// provisioningOrAPIKey prefers the provisioning key for endpoints that
// require one, falling back to the regular key.
func (c *Client) provisioningOrAPIKey() string {
	if c.provisioningKey != "" {
		return c.provisioningKey
	}
	return c.apiKey
}
