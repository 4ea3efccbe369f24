// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package spotify queries the Spotify catalog search API for audiobooks.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"audioscout/internal/httputil"
	"audioscout/pkg/types"
)

// SearchBase is the catalog search endpoint. Declared as a var so tests
// can substitute an httptest server.
var SearchBase = "https://api.spotify.com/v1/search"

// ErrTokenExpired means the catalog signalled the bearer token is invalid
// or expired (HTTP 401). The pipeline aborts the remaining batch on it.
var ErrTokenExpired = errors.New("access token expired or invalid")

// Client searches the audiobook catalog one keyword at a time.
type Client struct {
	HTTP *http.Client
	Cfg  types.SearchConfig
}

// NewClient returns a Client with a timeout taken from cfg.
func NewClient(cfg types.SearchConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// Search queries the catalog for keyword in the audiobook category and
// returns the reported total match count and the returned items. A 401
// response maps to ErrTokenExpired; any other non-success response is a
// plain error the caller records as a per-keyword failure.
func (c *Client) Search(ctx context.Context, token, keyword string) (int, []types.CatalogItem, error) {
	limit := c.Cfg.Limit
	if limit <= 0 {
		limit = 50
	}

	params := url.Values{
		"q":     {keyword},
		"type":  {"audiobook"},
		"limit": {fmt.Sprintf("%d", limit)},
	}
	if c.Cfg.Market != "" {
		params.Set("market", c.Cfg.Market)
	}

	reqURL := SearchBase + "?" + params.Encode()

	var sr searchResponse
	err := httputil.GetJSON(ctx, c.HTTP, reqURL, token, c.Cfg.UserAgent, &sr)
	if err != nil {
		var serr *httputil.StatusError
		if errors.As(err, &serr) && serr.Code == http.StatusUnauthorized {
			return 0, nil, ErrTokenExpired
		}
		return 0, nil, fmt.Errorf("catalog search for %q: %w", keyword, err)
	}

	items := make([]types.CatalogItem, 0, len(sr.Audiobooks.Items))
	for _, ab := range sr.Audiobooks.Items {
		items = append(items, types.CatalogItem{
			ID:         ab.ID,
			Name:       ab.Name,
			Publisher:  ab.Publisher,
			Popularity: ab.Popularity,
		})
	}
	return sr.Audiobooks.Total, items, nil
}

// Catalog API JSON structures.
type searchResponse struct {
	Audiobooks audiobookPage `json:"audiobooks"`
}

type audiobookPage struct {
	Total int             `json:"total"`
	Items []audiobookItem `json:"items"`
}

type audiobookItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
	// Popularity is optional in the catalog response; a pointer keeps
	// "absent" distinct from zero.
	Popularity *int `json:"popularity"`
}
