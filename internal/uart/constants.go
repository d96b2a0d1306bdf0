package uart

import "time"

// Line parameters of the pack's UART.
const (
	BaudRate    = 4800
	DataBits    = 8
	ReadTimeout = 2000 * time.Millisecond
)
