package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"arecibodash/internal/domain"
	apperrors "arecibodash/internal/errors"
)

// Collector endpoints
const (
	HostsPath       = "/rest/1.0/hosts"
	SampleKindsPath = "/rest/1.0/sample_kinds"
)

// maxBody caps how much of a response is read
const maxBody = 8 << 20

// Client talks to the collector REST API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the collector base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Hosts lists every known host
func (c *Client) Hosts(ctx context.Context) ([]domain.Host, error) {
	var hosts []domain.Host
	if err := c.get(ctx, HostsPath, &hosts); err != nil {
		return nil, err
	}
	for i, h := range hosts {
		if h.HostName == "" {
			return nil, apperrors.DataSource(fmt.Sprintf("malformed hosts: entry %d has no hostName", i), nil)
		}
	}
	return hosts, nil
}

// SampleKinds lists the sample kinds of the hosts in hostsQuery
func (c *Client) SampleKinds(ctx context.Context, hostsQuery string) ([]domain.SampleKindEntry, error) {
	path := SampleKindsPath
	if hostsQuery != "" {
		path += "?" + hostsQuery
	}
	var entries []domain.SampleKindEntry
	if err := c.get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.DataSource("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.DataSource(fmt.Sprintf("GET %s failed", path), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return apperrors.DataSource(fmt.Sprintf("failed to read %s response", path), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.DataSource(fmt.Sprintf("GET %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.DataSource(fmt.Sprintf("malformed %s response", path), err)
	}
	return nil
}
