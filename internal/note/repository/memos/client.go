package memos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Client is the HTTP wrapper for the Memos REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new Memos HTTP client.
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{},
	}
}

// CreateMemo creates a new memo via POST /api/v1/memos.
func (c *Client) CreateMemo(ctx context.Context, req CreateMemoRequest) (*Memo, error) {
	var memo Memo
	if err := c.do(ctx, http.MethodPost, "/api/v1/memos", req, &memo); err != nil {
		return nil, err
	}
	return &memo, nil
}

// GetMemo fetches a single memo by its resource name. A nil memo with a
// nil error means the id does not exist.
func (c *Client) GetMemo(ctx context.Context, id string) (*Memo, error) {
	var memo Memo
	err := c.do(ctx, http.MethodGet, "/api/v1/memos/"+id, nil, &memo)
	var se *statusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &memo, nil
}

// ListMemos returns up to limit memos, optionally filtered by tag. The
// API pages by token, not by offset, so offset is emulated by
// over-fetching and discarding the leading entries.
func (c *Client) ListMemos(ctx context.Context, tag string, limit, offset int) ([]Memo, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(limit+offset))
	if tag != "" {
		q.Set("filter", fmt.Sprintf("tag='%s'", tag))
	}

	var page struct {
		Memos []Memo `json:"memos"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/memos?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	if offset >= len(page.Memos) {
		return nil, nil
	}
	return page.Memos[offset:], nil
}

// do runs one authenticated JSON round trip against path. Non-2xx replies
// come back as *statusError so callers can branch on the code.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("memos: marshal %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("memos: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("memos: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return &statusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("memos: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// statusError is a non-2xx reply from the Memos API.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("memos API error %d: %s", e.Code, e.Body)
}

// ---- Wire types ----

// CreateMemoRequest is the body for POST /api/v1/memos.
type CreateMemoRequest struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

// Memo is the Memos API memo object. Name is the canonical resource id
// on current servers; ID and UID survive for older ones.
type Memo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UID        string `json:"uid"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
	CreateTime string `json:"createTime"`
	UpdateTime string `json:"updateTime"`
}
