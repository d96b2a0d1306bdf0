package m18

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/protocol"
)

const (
	keepaliveInterval = 500 * time.Millisecond
	configureDelay    = 600 * time.Millisecond
)

// SimulateFor impersonates a charger for d. See SimulateContext.
func (c *Client) SimulateFor(d time.Duration) (time.Duration, error) {
	return c.SimulateContext(context.Background(), d)
}

// SimulateContext runs the charger start-up sequence and then sends
// keepalives until d has elapsed, ctx is cancelled or a keepalive fails.
// A failed keepalive ends the loop but is not an error. The line is left
// idle and the elapsed time is returned.
func (c *Client) SimulateContext(ctx context.Context, d time.Duration) (time.Duration, error) {
	log.Info().Msgf("Simulating charger communication for %.0f seconds...", d.Seconds())
	start := c.now()
	defer c.Idle()

	if _, err := c.Reset(); err != nil {
		return c.now().Sub(start), err
	}
	c.seq.Reset()

	if err := c.startCharging(); err != nil {
		return c.now().Sub(start), err
	}

	for c.now().Sub(start) < d {
		if ctx.Err() != nil {
			log.Info().Msg("Simulation cancelled")
			break
		}
		c.sleep(keepaliveInterval)
		if _, err := c.Keepalive(); err != nil {
			log.Warn().Err(err).Msg("Keepalive failed")
			break
		}
	}

	elapsed := c.now().Sub(start)
	log.Info().Msgf("Duration: %.2f seconds", elapsed.Seconds())
	return elapsed, nil
}

// startCharging is the exchange a charger performs when a pack is inserted.
func (c *Client) startCharging() error {
	if _, err := c.Configure(protocol.ChargeInitialization); err != nil {
		return err
	}
	if _, err := c.Snapshot(); err != nil {
		return err
	}
	c.sleep(configureDelay)
	if _, err := c.Keepalive(); err != nil {
		return err
	}
	c.sleep(configureDelay)
	if _, err := c.Configure(protocol.ChargeActive); err != nil {
		return err
	}
	_, err := c.Snapshot()
	return err
}
