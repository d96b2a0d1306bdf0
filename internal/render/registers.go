package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/registers"
)

const labelHeader = "ID  ADDR   LEN TYPE       LABEL                                   VALUE"

// Registers prints readings in format f. Every format except Array starts
// with a UTC timestamp line taken from now.
func Registers(w io.Writer, readings []registers.Reading, f Format, now time.Time) error {
	var b strings.Builder
	stamp := now.UTC().Format(registers.DateLayout)

	switch f {
	case Label:
		fmt.Fprintln(&b, stamp)
		fmt.Fprintln(&b, labelHeader)
		for _, r := range readings {
			d := r.Definition
			fmt.Fprintf(&b, "%3d 0x%04X %2d %6s   %-39s %s\n",
				r.ID, d.Address, d.Length, d.Encoding, d.Label, Value(r.Value, f))
		}
	case Array:
		items := make([]string, len(readings))
		for i, r := range readings {
			items[i] = fmt.Sprintf("(%d, %s)", r.ID, Value(r.Value, f))
		}
		fmt.Fprintf(&b, "Results as array: [%s]\n", strings.Join(items, ", "))
	default:
		b.WriteString(listing(readings, f, now))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormBlob is the raw-value listing submitted as the diagnostic output of
// the survey form: a timestamp line followed by one value per line.
func FormBlob(readings []registers.Reading, now time.Time) string {
	return listing(readings, Form, now)
}

func listing(readings []registers.Reading, f Format, now time.Time) string {
	var b strings.Builder
	b.WriteString(now.UTC().Format(registers.DateLayout))
	b.WriteByte('\n')
	for _, r := range readings {
		b.WriteString(Value(r.Value, f))
		b.WriteByte('\n')
	}
	return b.String()
}
