package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client fetches public profile pages through a content-extraction API that
// returns the page as markdown plus basic metadata. Its output shape (text,
// image, author) is the input contract of the profile parsers below.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Result is one fetched profile document.
type Result struct {
	URL    string `json:"url"`
	Text   string `json:"text"`
	Image  string `json:"image"`
	Author string `json:"author"`
}

type contentsRequest struct {
	URLs []string `json:"urls"`
	Text bool     `json:"text"`
}

type contentsResponse struct {
	Results []Result `json:"results"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchProfile pulls one profile URL through the contents endpoint.
func (c *Client) FetchProfile(ctx context.Context, profileURL string) (*Result, error) {
	payload, err := json.Marshal(contentsRequest{URLs: []string{profileURL}, Text: true})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contents", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	var parsed contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("fetch profile: decode response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("fetch profile: no results for %s", profileURL)
	}

	return &parsed.Results[0], nil
}
