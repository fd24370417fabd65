// Package client provides the Loader implementations that fetch
// results documents: over HTTP from the exago API, or from disk.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hotolab/exago-app/internal/results"
	"gopkg.in/resty.v1"
)

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 60 * time.Second

// HTTPLoader talks to the exago API.
//
//	GET  {api}/project/{repository}          latest results
//	POST {api}/project/{repository}/refresh  run a new analysis
//	GET  {api}/project/{repository}/cached   {"data": bool}
type HTTPLoader struct {
	apiURL string
	client *resty.Client
	logger *log.Logger
}

// NewHTTPLoader returns a loader for the API rooted at apiURL.
func NewHTTPLoader(apiURL string, timeout time.Duration, logger *log.Logger) (*HTTPLoader, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", apiURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}

	c := resty.NewWithClient(&http.Client{Timeout: timeout})
	c.SetHeader("Accept", "application/json")
	c.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(u.Hostname()))

	return &HTTPLoader{
		apiURL: strings.TrimRight(apiURL, "/"),
		client: c,
		logger: logger,
	}, nil
}

// Load fetches the latest results for repository.
func (h *HTTPLoader) Load(ctx context.Context, repository string) (*results.Document, error) {
	resp, err := h.client.R().SetContext(ctx).Get(h.projectURL(repository))
	if err != nil {
		return nil, fmt.Errorf("failed to get results for %s: %w", repository, err)
	}
	return h.decode(repository, resp)
}

// Refresh asks the API to analyse repository again.
func (h *HTTPLoader) Refresh(ctx context.Context, repository string) (*results.Document, error) {
	resp, err := h.client.R().SetContext(ctx).Post(h.projectURL(repository) + "/refresh")
	if err != nil {
		return nil, fmt.Errorf("failed to refresh results for %s: %w", repository, err)
	}
	return h.decode(repository, resp)
}

// IsCached asks the API whether results exist for repository.
func (h *HTTPLoader) IsCached(ctx context.Context, repository string) (bool, error) {
	resp, err := h.client.R().SetContext(ctx).Get(h.projectURL(repository) + "/cached")
	if err != nil {
		return false, fmt.Errorf("failed to check cache for %s: %w", repository, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, statusError("check cache for", repository, resp)
	}

	var body struct {
		Data bool `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return false, fmt.Errorf("decoding cache status for %s: %w", repository, err)
	}
	return body.Data, nil
}

func (h *HTTPLoader) decode(repository string, resp *resty.Response) (*results.Document, error) {
	if resp.StatusCode() != http.StatusOK {
		return nil, statusError("get results for", repository, resp)
	}
	h.logger.Debug("results received", "repository", repository,
		"bytes", len(resp.Body()), "elapsed", resp.Time())
	return results.Decode(bytes.NewReader(resp.Body()))
}

// projectURL escapes each path segment of the repository but keeps
// the slashes between them.
func (h *HTTPLoader) projectURL(repository string) string {
	segs := strings.Split(strings.Trim(repository, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return h.apiURL + "/project/" + strings.Join(segs, "/")
}

func statusError(action, repository string, resp *resty.Response) error {
	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > 200 {
		body = body[:197] + "..."
	}
	return fmt.Errorf("failed to %s %s: status code %d %s", action, repository, resp.StatusCode(), body)
}
