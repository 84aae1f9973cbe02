package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fetcher loads the catalog and per-beer details from static resources.
// It is implemented by *Client and DirSource.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]Beer, error)
	FetchDetail(ctx context.Context, id string) (Beer, error)
}

// Ensure both sources implement Fetcher at compile time.
var (
	_ Fetcher = (*Client)(nil)
	_ Fetcher = DirSource{}
)

// Client fetches the static JSON files over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	dataPrefix      = "/data"
	catalogPath     = dataPrefix + "/beers/beers.json"
	detailPathFmt   = dataPrefix + "/beers/details/%s.json"
	defaultBaseURL  = "127.0.0.1:8000"
	defaultTimeout  = 5 * time.Second
	userAgentPrefix = "beerdex/"

	// RequestIDHeader carries a per-request id between client and server.
	RequestIDHeader = "X-Request-ID"
)

// Version is reported in the User-Agent header.
var Version = "0.1"

var validID = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidID reports whether id can name a detail resource without escaping
// its directory.
func ValidID(id string) bool {
	return validID.MatchString(id) && id != "." && id != ".."
}

// NewClient builds a Client rooted at baseURL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgentPrefix + Version,
	}, nil
}

// BaseURL returns the normalized base the client resolves paths against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchCatalog retrieves /data/beers/beers.json.
func (c *Client) FetchCatalog(ctx context.Context) ([]Beer, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var beers []Beer
	if err := c.get(ctx, catalogPath, &beers); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return beers, nil
}

// FetchDetail retrieves /data/beers/details/{id}.json.
func (c *Client) FetchDetail(ctx context.Context, id string) (Beer, error) {
	if c == nil {
		return Beer{}, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Beer{}, fmt.Errorf("beer id required")
	}
	var beer Beer
	if err := c.get(ctx, fmt.Sprintf(detailPathFmt, url.PathEscape(id)), &beer); err != nil {
		return Beer{}, fmt.Errorf("fetch detail %q: %w", id, err)
	}
	return beer, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path: %w", err)
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w: %s returned status %d", ErrNotFound, ErrTransport, path, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %s returned status %d", ErrTransport, path, resp.StatusCode)
	}
	return decode(resp.Body, dest)
}

func decode(r io.Reader, dest any) error {
	if err := json.NewDecoder(r).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrParse, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
