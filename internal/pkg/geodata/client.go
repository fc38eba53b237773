package geodata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 10 << 20

// Response is an upstream answer relayed to the caller unchanged.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client talks to the external geodata service that computes zone risk data
// and safe routes.
type Client struct {
	zoneURL      string
	safeRouteURL string
	httpClient   *http.Client
}

func NewClient(zoneURL, safeRouteURL string, timeout time.Duration) *Client {
	return &Client{
		zoneURL:      zoneURL,
		safeRouteURL: safeRouteURL,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Zones fetches zone data filtered by zone and town. Empty filters are not
// forwarded.
func (c *Client) Zones(ctx context.Context, zone, town string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ZoneURL(c.zoneURL, zone, town), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build zone request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// SafeRoute forwards a JSON route request body.
func (c *Client) SafeRoute(ctx context.Context, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.safeRouteURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build safe route request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to geodata service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read geodata response: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("geodata response exceeds %d bytes", maxResponseBytes)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("geodata service answered %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &Response{StatusCode: resp.StatusCode, ContentType: contentType, Body: body}, nil
}

// ZoneURL appends the zone and town filters to base. Values are percent
// encoded with spaces as %20.
func ZoneURL(base, zone, town string) string {
	var params []string
	if zone != "" {
		params = append(params, "zone="+escape(zone))
	}
	if town != "" {
		params = append(params, "town="+escape(town))
	}
	if len(params) == 0 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(params, "&")
}

func escape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
