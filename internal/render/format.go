package render

import (
	"fmt"
	"strings"

	"github.com/vitaminmoo/m18-tool/internal/registers"
)

// Format selects how register readings are printed.
type Format int

const (
	Label Format = iota // one aligned row per register
	Raw                 // bare values, multi-part values split over lines
	Array               // a single structured dump
	Form                // bare values as submitted with the survey form
)

var formatNames = map[Format]string{
	Label: "label",
	Raw:   "raw",
	Array: "array",
	Form:  "form",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat resolves a format name as used on the command line.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown output format %q (want label, raw, array or form)", s)
}

// Value renders a single register value for the given format.
func Value(v registers.Value, f Format) string {
	switch v := v.(type) {
	case registers.Float:
		return fmt.Sprintf("%.2f", float64(v))
	case registers.Cells:
		switch f {
		case Label:
			return v.String()
		case Raw:
			return fmt.Sprintf("%4d\n%4d\n%4d\n%4d\n%4d", v[0], v[1], v[2], v[3], v[4])
		default:
			return cellList(v)
		}
	case registers.Serial:
		if f == Raw {
			return fmt.Sprintf("%d\n%d", v.BatteryType, v.Serial)
		}
		return v.String()
	case nil:
		return ""
	}
	return v.String()
}

func cellList(c registers.Cells) string {
	parts := make([]string, len(c))
	for i, mv := range c {
		parts[i] = fmt.Sprint(mv)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
