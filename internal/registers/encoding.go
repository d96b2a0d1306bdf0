package registers

import "fmt"

// Encoding says how the raw bytes of a register are interpreted.
type Encoding int

const (
	UnsignedInt Encoding = iota
	Timestamp
	AsciiText
	SerialNumberPair
	AdcTemperature
	DecimalTemperature
	CellVoltageArray
	DurationSeconds
)

var encodingTags = map[Encoding]string{
	UnsignedInt:        "uint",
	Timestamp:          "date",
	AsciiText:          "ascii",
	SerialNumberPair:   "sn",
	AdcTemperature:     "adc_t",
	DecimalTemperature: "dec_t",
	CellVoltageArray:   "cell_v",
	DurationSeconds:    "hhmmss",
}

// String returns the short tag used in tables and YAML files.
func (e Encoding) String() string {
	if tag, ok := encodingTags[e]; ok {
		return tag
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding maps a tag such as "cell_v" back to its Encoding.
func ParseEncoding(tag string) (Encoding, error) {
	for e, t := range encodingTags {
		if t == tag {
			return e, nil
		}
	}
	return 0, &InvalidDataTypeError{Tag: tag}
}
