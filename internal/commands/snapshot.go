package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/config"
	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/registers"
	"github.com/vitaminmoo/m18-tool/internal/render"
	"github.com/vitaminmoo/m18-tool/internal/util"
)

// Dump reads every bulk region and prints a hex dump of each.
func Dump(c *m18.Client, w io.Writer) (registers.Image, error) {
	img, err := c.ReadAllRaw()
	if err != nil {
		return nil, fmt.Errorf("failed to dump memory: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("no regions could be read: %w", m18.ErrNoResponse)
	}
	PrintImage(w, img)
	fmt.Fprintf(w, "Read %d of %d regions, %d bytes\n", len(img), len(c.Tables().Regions), img.Size())
	return img, nil
}

// PrintImage hex dumps each block of img.
func PrintImage(w io.Writer, img registers.Image) {
	for _, b := range img {
		fmt.Fprintf(w, "Region %#06x (%d bytes):\n", b.Address, len(b.Data))
		util.HexDump(w, b.Address, b.Data)
	}
}

// SaveImage writes img to path in the dump file format.
func SaveImage(path string, img registers.Image) error {
	data, err := img.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// LoadImage reads a dump file.
func LoadImage(path string) (registers.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	var img registers.Image
	if err := img.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	config.Debugf("Loaded %s: %d blocks, %d bytes", path, len(img), img.Size())
	return img, nil
}

// DecodeImage prints the registers covered by img, and the health report
// when the image holds enough of them.
func DecodeImage(w io.Writer, img registers.Image, tables *registers.Tables, f render.Format, now time.Time) error {
	readings := img.Decode(tables)
	if len(readings) == 0 {
		return fmt.Errorf("dump covers no known registers")
	}
	if err := render.Registers(w, readings, f, now); err != nil {
		return err
	}
	report, err := m18.BuildHealthReport(readings, tables, now)
	if err != nil {
		return nil
	}
	fmt.Fprintln(w)
	return render.HealthReport(w, report)
}
