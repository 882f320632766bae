package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is the Qdrant HTTP API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Qdrant client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// CollectionExists reports whether the collection is already present.
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to call qdrant API: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("qdrant API error: %d", resp.StatusCode)
	}
}

// CreateCollection creates a collection with the given vector schema.
func (c *Client) CreateCollection(ctx context.Context, name string, cfg VectorConfig) error {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, name)
	return c.doJSON(ctx, http.MethodPut, url, createCollectionRequest{Vectors: cfg}, nil)
}

// UpsertPoints inserts or updates points in a collection.
func (c *Client) UpsertPoints(ctx context.Context, collection string, points []Point) error {
	url := fmt.Sprintf("%s/collections/%s/points", c.baseURL, collection)
	return c.doJSON(ctx, http.MethodPut, url, upsertPointsRequest{Points: points}, nil)
}

// Search runs a vector similarity query and returns the scored hits.
func (c *Client) Search(ctx context.Context, collection string, req SearchRequest) ([]ScoredPoint, error) {
	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, collection)

	var result searchResponse
	if err := c.doJSON(ctx, http.MethodPost, url, req, &result); err != nil {
		return nil, err
	}
	return result.Result, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call qdrant API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("qdrant API error: %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
