// Package backend is the typed client for the PharmaChain verification
// backend. Every substantive check (blockchain hashing, AI image matching,
// QR encryption, fraud heuristics) runs there; this package only issues the
// REST calls and normalizes the responses once, at the client boundary, so
// callers never guess at envelope shapes.
//
// Calls are fire-once: no retries, no client-side timeout beyond the
// transport default. Cancellation is the caller's context.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client talks to the verification backend. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL string
	http    *http.Client

	Manufacturer *ManufacturerAPI
	Pharmacy     *PharmacyAPI
	Watchdog     *WatchdogAPI
	Medicine     *MedicineAPI
	QR           *QRAPI
	AI           *AIAPI
	Chat         *ChatAPI
}

// New creates a client for the backend at baseURL (e.g. http://localhost:8000).
func New(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	c.Manufacturer = &ManufacturerAPI{c: c}
	c.Pharmacy = &PharmacyAPI{c: c}
	c.Watchdog = &WatchdogAPI{c: c}
	c.Medicine = &MedicineAPI{c: c}
	c.QR = &QRAPI{c: c}
	c.AI = &AIAPI{c: c}
	c.Chat = &ChatAPI{c: c}
	return c
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload is an image artifact attached to a multipart request. The portal
// treats camera captures and file uploads identically at this level.
type Upload struct {
	FieldName   string
	FileName    string
	ContentType string
	Reader      io.Reader
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) deleteJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out interface{}) error {
	if body == nil {
		body = map[string]interface{}{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// postMultipart sends form fields plus an optional image as multipart/form-data.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, upload *Upload, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if upload != nil {
		part, err := w.CreateFormFile(upload.FieldName, upload.FileName)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, upload.Reader); err != nil {
			return fmt.Errorf("copy upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
