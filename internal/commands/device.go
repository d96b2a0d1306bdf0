package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/inhibit"
	"github.com/vitaminmoo/m18-tool/internal/m18"
)

// Simulate impersonates a charger for d, or until ctx is cancelled. The
// host is kept from suspending while it runs when logind allows it.
func Simulate(ctx context.Context, c *m18.Client, w io.Writer, d time.Duration) error {
	lock, err := inhibit.Acquire("m18", "Simulating charger")
	if err != nil {
		log.Debug().Err(err).Msg("Running without suspend inhibitor")
	} else {
		defer lock.Release()
	}

	elapsed, err := c.SimulateContext(ctx, d)
	if err != nil {
		return fmt.Errorf("simulation failed after %s: %w", elapsed.Round(time.Millisecond), err)
	}
	fmt.Fprintf(w, "Simulated charger for %s\n", elapsed.Round(time.Second))
	return nil
}

// High raises J2 for d, or until ctx is cancelled when d is zero, then idles it.
func High(ctx context.Context, c *m18.Client, d time.Duration) {
	if d > 0 {
		c.HighFor(d)
		return
	}
	c.High()
	defer c.Idle()
	<-ctx.Done()
}
