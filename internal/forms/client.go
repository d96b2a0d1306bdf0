package forms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client posts submissions to the survey form.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the form at url.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Submit sends d as an urlencoded form post. Any non-2xx status is an error.
func (c *Client) Submit(ctx context.Context, d FormData) error {
	body := d.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build form request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Debug().Str("url", c.url).Int("bytes", len(body)).Msg("Submitting form")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit form: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to submit form. Status code: %d", resp.StatusCode)
	}
	return nil
}
