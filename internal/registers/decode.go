package registers

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Thermistor calibration: ADC counts map linearly to resistance, resistance
// maps linearly to temperature.
const (
	adcLow    = 0x0180 // reads as 10 kΩ
	adcHigh   = 0x022E // reads as 20 kΩ
	ohmLow    = 10000.0
	ohmHigh   = 20000.0
	tempAt10k = 50.0
	tempAt20k = 35.0
)

// fixedSizes lists encodings that only make sense at one length.
var fixedSizes = map[Encoding]int{
	Timestamp:          4,
	SerialNumberPair:   5,
	AdcTemperature:     2,
	DecimalTemperature: 2,
	CellVoltageArray:   10,
	DurationSeconds:    4,
}

// Decode interprets data according to def. The data must be exactly
// def.Length bytes long.
func Decode(def Definition, data []byte) (Value, error) {
	if len(data) != def.Length {
		return nil, parseErrorf("register %#06x: expected %d bytes, got %d", def.Address, def.Length, len(data))
	}
	if n, ok := fixedSizes[def.Encoding]; ok && len(data) != n {
		return nil, parseErrorf("register %#06x: %s needs %d bytes, got %d", def.Address, def.Encoding, n, len(data))
	}

	switch def.Encoding {
	case UnsignedInt:
		switch len(data) {
		case 1, 2, 4, 8:
			return Uint(beUint(data)), nil
		default:
			return nil, parseErrorf("register %#06x: invalid uint length %d", def.Address, len(data))
		}

	case Timestamp:
		secs := binary.BigEndian.Uint32(data)
		return Date{time.Unix(int64(secs), 0).UTC()}, nil

	case AsciiText:
		return Text(`"` + lossyText(data) + `"`), nil

	case SerialNumberPair:
		return Serial{
			BatteryType: binary.BigEndian.Uint16(data[0:2]),
			Serial:      uint32(beUint(data[2:5])),
		}, nil

	case AdcTemperature:
		return Float(AdcToCelsius(binary.BigEndian.Uint16(data))), nil

	case DecimalTemperature:
		return Float(round2(float64(data[0]) + float64(data[1])/256)), nil

	case CellVoltageArray:
		var cells Cells
		for i := range cells {
			cells[i] = binary.BigEndian.Uint16(data[i*2:])
		}
		return cells, nil

	case DurationSeconds:
		return Duration(FormatDuration(uint64(binary.BigEndian.Uint32(data)))), nil
	}

	return nil, &InvalidDataTypeError{Tag: def.Encoding.String()}
}

// AdcToCelsius converts a thermistor ADC reading to degrees Celsius,
// rounded to two decimals.
func AdcToCelsius(adc uint16) float64 {
	r := ohmLow + (float64(adc)-adcLow)*(ohmHigh-ohmLow)/(adcHigh-adcLow)
	m := (tempAt20k - tempAt10k) / (ohmHigh - ohmLow)
	b := tempAt10k - m*ohmLow
	return round2(m*r + b)
}

// FormatDuration renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatDuration(secs uint64) string {
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// lossyText replaces each byte that does not start a valid UTF-8 sequence
// with U+FFFD. Unlike strings.ToValidUTF8 it does not merge adjacent
// invalid bytes, so a corrupted note keeps its width.
func lossyText(p []byte) string {
	var b strings.Builder
	b.Grow(len(p))
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		b.WriteRune(r)
		p = p[size:]
	}
	return b.String()
}

func beUint(p []byte) uint64 {
	var v uint64
	for _, b := range p {
		v = v<<8 | uint64(b)
	}
	return v
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
