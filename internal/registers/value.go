package registers

import (
	"fmt"
	"strconv"
	"time"
)

// Value is a decoded register. The concrete type is one of Uint, Float,
// Text, Date, Duration, Cells or Serial. Each marshals to JSON as its bare
// content (a number, string, array or object) with no type tag.
type Value interface {
	fmt.Stringer
	value()
}

// Uint is an unsigned big-endian integer.
type Uint uint64

// Float is a temperature in degrees Celsius, rounded to two decimals.
type Float float64

// Text is a note decoded from ASCII, including the surrounding quotes.
type Text string

// Date is a UTC timestamp.
type Date struct {
	time.Time
}

// Duration is an elapsed time formatted as HH:MM:SS with uncapped hours.
type Duration string

// Cells holds the five cell voltages in millivolts.
type Cells [5]uint16

// Serial is the battery type code and electronic serial number.
type Serial struct {
	BatteryType uint16 `json:"battery_type"`
	Serial      uint32 `json:"serial"`
}

func (Uint) value()     {}
func (Float) value()    {}
func (Text) value()     {}
func (Date) value()     {}
func (Duration) value() {}
func (Cells) value()    {}
func (Serial) value()   {}

func (v Uint) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v Text) String() string  { return string(v) }

// DateLayout is how dates are printed.
const DateLayout = "2006-01-02 15:04:05"

func (v Date) String() string     { return v.UTC().Format(DateLayout) }
func (v Duration) String() string { return string(v) }

func (v Cells) String() string {
	return fmt.Sprintf("1: %4d, 2: %4d, 3: %4d, 4: %4d, 5: %4d", v[0], v[1], v[2], v[3], v[4])
}

func (v Serial) String() string {
	return fmt.Sprintf("Type: %3d, Serial: %d", v.BatteryType, v.Serial)
}

// Sum returns the total of all cells in millivolts.
func (v Cells) Sum() int {
	total := 0
	for _, mv := range v {
		total += int(mv)
	}
	return total
}

// Spread returns the difference between the highest and lowest cell.
func (v Cells) Spread() uint16 {
	lo, hi := v[0], v[0]
	for _, mv := range v[1:] {
		lo = min(lo, mv)
		hi = max(hi, mv)
	}
	return hi - lo
}
