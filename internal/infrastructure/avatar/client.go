package avatar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client generates a placeholder avatar for personas whose scraped profile
// carried no photo. Failure just leaves the persona without a displayable
// avatar; nothing downstream depends on the bytes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ImageURL returns the service URL that renders an avatar for name.
func (c *Client) ImageURL(name string) string {
	return fmt.Sprintf("%s?name=%s&size=256", c.baseURL, url.QueryEscape(name))
}

// Generate fetches the rendered avatar bytes, verifying the URL actually
// serves an image before it is stored on a profile.
func (c *Client) Generate(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(name), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generate avatar: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
