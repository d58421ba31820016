// Package audiomuse provides a client for the AudioMuse-AI sonic
// similarity API.
package audiomuse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "stepsync/1.0 (https://github.com/pdaderko/stepsync)"

// Client is an AudioMuse-AI API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for an AudioMuse-AI server. The server is given
// as host:port; a scheme is added when missing.
func New(server string) *Client {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	return &Client{
		baseURL: strings.TrimSuffix(server, "/") + "/api",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Track is a single track as reported by the similarity API.
type Track struct {
	ItemID   string  `json:"item_id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Album    string  `json:"album"`
	Distance float64 `json:"distance"`
}

// MaxDistanceResult identifies the sonically farthest track in the
// library for a given source track.
type MaxDistanceResult struct {
	FarthestItemID string  `json:"farthest_item_id"`
	MaxDistance    float64 `json:"max_distance"`
}

// SimilarTracks fetches the n tracks most similar to the given item.
// Results come back ordered by ascending distance.
func (c *Client) SimilarTracks(ctx context.Context, itemID string, n int) ([]Track, error) {
	params := url.Values{}
	params.Set("item_id", itemID)
	params.Set("n", strconv.Itoa(n))
	params.Set("eliminate_duplicates", "false")
	params.Set("radius_similarity", "false")

	var tracks []Track
	if err := c.get(ctx, "/similar_tracks", params, &tracks); err != nil {
		return nil, fmt.Errorf("similar tracks: %w", err)
	}
	return tracks, nil
}

// MaxDistance fetches the id and distance of the farthest track from
// the given item.
func (c *Client) MaxDistance(ctx context.Context, itemID string) (*MaxDistanceResult, error) {
	params := url.Values{}
	params.Set("item_id", itemID)

	var result MaxDistanceResult
	if err := c.get(ctx, "/max_distance", params, &result); err != nil {
		return nil, fmt.Errorf("max distance: %w", err)
	}
	return &result, nil
}

// Track fetches the metadata of a single track by item id.
func (c *Client) Track(ctx context.Context, itemID string) (*Track, error) {
	params := url.Values{}
	params.Set("item_id", itemID)

	var track Track
	if err := c.get(ctx, "/track", params, &track); err != nil {
		return nil, fmt.Errorf("track: %w", err)
	}
	return &track, nil
}

// get performs a single bounded GET request and decodes the JSON body
// into out. There are no retries; a failed song is the caller's problem
// to log and skip.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
