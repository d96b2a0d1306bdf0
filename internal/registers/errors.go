package registers

import "fmt"

// InvalidDataTypeError is returned for an unknown encoding tag.
type InvalidDataTypeError struct {
	Tag string
}

func (e *InvalidDataTypeError) Error() string {
	return fmt.Sprintf("invalid data type: %s", e.Tag)
}

// ParseError reports bytes that cannot be decoded, or a report that is missing
// a mandatory register.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Msg
}

func parseErrorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
