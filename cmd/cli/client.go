package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// apiClient talks to the tracker API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL, token string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is a non-2xx answer.
type apiError struct {
	Status  int    `json:"-"`
	Title   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	title := e.Title
	if title == "" {
		title = "request failed"
	}
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d): %s", title, e.Status, e.Message)
	}
	return fmt.Sprintf("%s with status %d", title, e.Status)
}

// do sends a request and returns the response body. Mutating requests
// carry a fresh idempotency key.
func (c *apiClient) do(method, path, contentType string, body io.Reader) ([]byte, http.Header, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", ulid.Make().String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{Status: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return nil, nil, apiErr
	}

	return data, resp.Header, nil
}

// getJSON decodes a GET response into v.
func (c *apiClient) getJSON(path string, v any) error {
	data, _, err := c.do(http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// sendJSON encodes in, sends it and decodes the answer into out when out
// is not nil.
func (c *apiClient) sendJSON(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	data, _, err := c.do(method, path, "application/json", body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// attachmentName extracts the filename of a Content-Disposition header.
func attachmentName(h http.Header) string {
	_, params, err := mime.ParseMediaType(h.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}
