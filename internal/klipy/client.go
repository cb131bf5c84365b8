// Package klipy implements a client for the Klipy GIF API.
package klipy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.klipy.co/api/v1"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, DefaultBaseURL)
}

func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Search queries GIFs. Pages are 1-based; the response reports the total
// match count for pagination.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (*Page, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var resp searchResponse
	if err := c.get(ctx, "/gifs/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.page(page), nil
}

// Trending returns the current trending feed, paginated like Search.
func (c *Client) Trending(ctx context.Context, page, perPage int) (*Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var resp searchResponse
	if err := c.get(ctx, "/gifs/trending", params, &resp); err != nil {
		return nil, err
	}
	return resp.page(page), nil
}

// GetBySlug fetches a single GIF by its slug.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*Gif, error) {
	params := url.Values{}
	params.Set("slugs", slug)

	var resp searchResponse
	if err := c.get(ctx, "/gifs/items", params, &resp); err != nil {
		return nil, err
	}

	page := resp.page(1)
	if len(page.Gifs) == 0 {
		return nil, fmt.Errorf("gif not found: %s", slug)
	}
	return &page.Gifs[0], nil
}

// Categories returns the browsable category list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "/gifs/categories", nil, &resp); err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(resp.Data.Categories))
	for _, raw := range resp.Data.Categories {
		categories = append(categories, Category{
			Name:       raw.Category,
			Query:      raw.Query,
			PreviewURL: raw.PreviewURL,
		})
	}
	return categories, nil
}

// Autocomplete suggests query completions for a partial query.
func (c *Client) Autocomplete(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp stringListResponse
	if err := c.get(ctx, "/autocomplete/"+url.PathEscape(query), params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SearchSuggestions returns related searches for a query.
func (c *Client) SearchSuggestions(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp stringListResponse
	if err := c.get(ctx, "/search-suggestions/"+url.PathEscape(query), params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// get issues a GET against an API path. The app key is a path segment in the
// Klipy API, not a query parameter.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + "/" + c.apiKey + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("klipy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("klipy API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse klipy response: %w", err)
	}
	return nil
}
