package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"

	"github.com/vitaminmoo/m18-tool/internal/m18"
)

// ErrDeclined is returned when the user answers no to a confirmation.
var ErrDeclined = errors.New("cancelled")

// PrintJSON pretty-prints JSON data. If indentation fails, prints raw.
func PrintJSON(w io.Writer, data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err != nil {
		fmt.Fprintf(w, "Body: %s\n", string(data))
	} else {
		fmt.Fprintln(w, prettyJSON.String())
	}
}

// ConfirmAction asks a yes/no question. Anything but yes is ErrDeclined.
func ConfirmAction(label string) error {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return ErrDeclined
		}
		return err
	}
	return nil
}

// synced resets the pack and fails with m18.ErrNoResponse when it does not
// answer. The caller must idle the line afterwards.
func synced(c *m18.Client) error {
	ok, err := c.Reset()
	if err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	if !ok {
		return m18.ErrNoResponse
	}
	return nil
}
