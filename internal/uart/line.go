package uart

import "io"

// Line is an exclusively owned serial link to a pack. Besides byte I/O it
// controls the break condition and DTR, which together reset the pack.
type Line interface {
	io.ReadWriteCloser
	SetBreak(on bool) error
	SetDTR(on bool) error
	// ResetInput discards bytes received but not yet read.
	ResetInput() error
}
