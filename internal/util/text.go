package util

import (
	"fmt"
	"io"
	"strings"
)

// SpacedHex formats bytes as upper-case hex pairs separated by spaces.
func SpacedHex(data []byte) string {
	var b strings.Builder
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", c)
	}
	return b.String()
}

// HexDump writes data in hex dump format, labelling rows from base.
func HexDump(w io.Writer, base uint16, data []byte) {
	for i := 0; i < len(data); i += 16 {
		// Address
		fmt.Fprintf(w, "%04x  ", int(base)+i)

		// Hex bytes
		for j := 0; j < 16; j++ {
			if i+j < len(data) {
				fmt.Fprintf(w, "%02x ", data[i+j])
			} else {
				fmt.Fprint(w, "   ")
			}
			if j == 7 {
				fmt.Fprint(w, " ")
			}
		}

		// ASCII
		fmt.Fprint(w, " |")
		for j := 0; j < 16 && i+j < len(data); j++ {
			c := data[i+j]
			if c >= 32 && c < 127 {
				fmt.Fprintf(w, "%c", c)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}
