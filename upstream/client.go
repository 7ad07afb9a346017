package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"eventdesk/models"
)

// Endpoint paths relative to the configured base URL.
const (
	PathEvents       = "/event/"
	PathCreateUpdate = "/event/createUpdate"
	PathDelete       = "/event/delete"
)

// The upstream gateway requires this fixed header on every request,
// alongside the tenant id.
const (
	auxHeaderName  = "myheader"
	auxHeaderValue = "123ABC"
)

// Client wraps calls to the remote event store. Every request carries the
// base URL, the tenant header and a JSON content type. Failures (non-2xx,
// network) come back as plain errors; no retry, no timeout policy here.
type Client struct {
	baseURL  string
	tenantID string
	http     *http.Client
}

func New(baseURL, tenantID string) *Client {
	return &Client{baseURL: baseURL, tenantID: tenantID, http: http.DefaultClient}
}

// NewWithHTTPClient lets tests swap the transport.
func NewWithHTTPClient(baseURL, tenantID string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, tenantID: tenantID, http: hc}
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", c.tenantID)
	req.Header.Set(auxHeaderName, auxHeaderValue)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upstream %s %s: http %d: %s", req.Method, req.URL.Path, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Get issues a GET to path with the given raw query string and decodes the
// body into out.
func (c *Client) Get(ctx context.Context, path, query string, out any) error {
	url := c.baseURL + path
	if query != "" {
		url += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Post issues a POST to path with a JSON-encoded payload and decodes the
// body into out.
func (c *Client) Post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.do(req, out)
}

/* ------------------- typed operations ------------------- */

func (c *Client) ListEvents(ctx context.Context, pageNumber, pageSize int) (*models.EventListResponse, error) {
	var resp models.EventListResponse
	query := fmt.Sprintf("pageNumber=%d&pageSize=%d", pageNumber, pageSize)
	if err := c.Get(ctx, PathEvents, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateUpdate handles both cases through one endpoint: a sentinel id means
// create, a real id means update.
func (c *Client) CreateUpdate(ctx context.Context, e *models.Event) (*models.CreateUpdateResponse, error) {
	var resp models.CreateUpdateResponse
	if err := c.Post(ctx, PathCreateUpdate, e, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) (*models.DeleteResponse, error) {
	var resp models.DeleteResponse
	if err := c.Post(ctx, PathDelete, map[string]string{"id": id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
