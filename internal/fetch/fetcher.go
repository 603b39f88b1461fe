package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cyraxred/contribviolin/internal/core"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is where the public profile pages live.
	DefaultBaseURL = "https://github.com"
	// NotFoundBody is the complete body GitHub serves for unknown users.
	NotFoundBody = "Not Found"
	// UserAgent is sent with every request.
	UserAgent = "contribviolin"
)

// HTTPFetcher downloads profile pages over HTTP.
type HTTPFetcher struct {
	// BaseURL is prepended to the escaped username.
	BaseURL string
	// Client performs the requests. http.DefaultClient is used if nil.
	Client *http.Client

	l core.Logger
}

// NewHTTPFetcher creates the fetcher for github.com with the default HTTP client.
func NewHTTPFetcher(l core.Logger) *HTTPFetcher {
	return &HTTPFetcher{BaseURL: DefaultBaseURL, l: l}
}

// Fetch performs a single GET of the profile page and returns the body.
func (fetcher *HTTPFetcher) Fetch(ctx context.Context, username string) (string, error) {
	client := fetcher.Client
	if client == nil {
		client = http.DefaultClient
	}
	base := fetcher.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	address := strings.TrimRight(base, "/") + "/" + url.PathEscape(username)
	if fetcher.l != nil {
		fetcher.l.Infof("GET %s", address)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return "", errors.Wrapf(core.ErrNetwork, "%s: %v", address, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrapf(core.ErrNetwork, "%v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(core.ErrNetwork, "failed to read %s: %v", address, err)
	}
	text := string(body)
	if strings.TrimSpace(text) == NotFoundBody {
		return "", errors.Wrapf(core.ErrUserNotFound, "%s", username)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Wrapf(core.ErrNetwork, "%s: %s", address, resp.Status)
	}
	return text, nil
}
