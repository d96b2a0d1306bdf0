package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration without modifying it.
func (c File) Validate() error {
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be >= 0")
	}
	if c.Redis.Key == "" {
		return fmt.Errorf("redis.key must not be empty")
	}
	if c.Simulate.Duration < 0 {
		return fmt.Errorf("simulate.duration must not be negative")
	}
	if c.Form.URL != "" {
		u, err := url.Parse(c.Form.URL)
		if err != nil {
			return fmt.Errorf("form.url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("form.url must be http or https, got %q", u.Scheme)
		}
	}
	return nil
}
