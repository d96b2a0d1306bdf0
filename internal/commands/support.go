package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/forms"
	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/render"
)

// Submit reads every register, prompts for the label details and posts
// both to the survey form at formURL.
func Submit(ctx context.Context, c *m18.Client, w io.Writer, formURL string) error {
	fmt.Fprintln(w, "Getting data from battery...")
	readings, err := c.ReadAllRegisters(true)
	if err != nil {
		return fmt.Errorf("failed to read registers: %w", err)
	}
	if len(readings) == 0 {
		return fmt.Errorf("no registers could be read: %w", m18.ErrNoResponse)
	}

	data := forms.FormData{DiagnosticOutput: render.FormBlob(readings, time.Now())}
	if err := forms.Collect(&data); err != nil {
		return err
	}
	if err := ConfirmAction("Submit to " + formURL); err != nil {
		return err
	}

	if err := forms.NewClient(formURL).Submit(ctx, data); err != nil {
		return err
	}
	fmt.Fprintln(w, "Form submitted successfully!")
	return nil
}
