// Package mymemory is the client of the public MyMemory translation API.
package mymemory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"tradutor/internal/domain"
	"tradutor/internal/ports/output"
)

// DefaultBaseURL is the public MyMemory endpoint.
const DefaultBaseURL = "https://api.mymemory.translated.net"

const maxBodyBytes = 1 << 20

var _ output.TranslationProvider = (*Client)(nil)

type response struct {
	ResponseData *struct {
		TranslatedText *string `json:"translatedText"`
	} `json:"responseData"`
	// MyMemory reports quota and language pair errors in the body, sometimes
	// as a number and sometimes as a string.
	ResponseStatus json.RawMessage `json:"responseStatus"`
}

type Client struct {
	baseURL    string
	email      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEmail sends the "de" parameter, which raises the anonymous daily quota.
func WithEmail(email string) Option {
	return func(c *Client) { c.email = strings.TrimSpace(email) }
}

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate translates text from sourceCode to targetCode. Any failure,
// whatever its cause, wraps domain.ErrTranslationFailed.
func (c *Client) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	endpoint := c.requestURL(text, sourceCode, targetCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", domain.ErrTranslationFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: executing request: %v", domain.ErrTranslationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrTranslationFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("MyMemory request failed", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("%w: status %d", domain.ErrTranslationFailed, resp.StatusCode)
	}

	var res response
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", domain.ErrTranslationFailed, err)
	}
	if status := responseStatus(res.ResponseStatus); status != "" && status != "200" {
		return "", fmt.Errorf("%w: response status %s", domain.ErrTranslationFailed, status)
	}
	if res.ResponseData == nil || res.ResponseData.TranslatedText == nil {
		return "", fmt.Errorf("%w: response has no translatedText", domain.ErrTranslationFailed)
	}

	return *res.ResponseData.TranslatedText, nil
}

func (c *Client) requestURL(text, sourceCode, targetCode string) string {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", sourceCode+"|"+targetCode)
	if c.email != "" {
		q.Set("de", c.email)
	}
	return c.baseURL + "/get?" + q.Encode()
}

// responseStatus normalizes the numeric or string responseStatus to a
// string, "" when absent.
func responseStatus(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
