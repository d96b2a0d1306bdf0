package protocol

// accValues is the fixed rotation of the sequence (ACC) byte.
var accValues = [...]byte{0x04, 0x0C, 0x1C}

// InitialACC is the ACC value after every reset.
const InitialACC byte = 0x04

// Sequence tracks the rotating ACC byte. The zero value starts at InitialACC.
type Sequence struct {
	idx int
}

// Current returns the ACC value to put in the next command.
func (s *Sequence) Current() byte {
	return accValues[s.idx]
}

// Advance moves to the next ACC value and returns it.
func (s *Sequence) Advance() byte {
	s.idx = (s.idx + 1) % len(accValues)
	return accValues[s.idx]
}

// Reset returns the sequence to InitialACC.
func (s *Sequence) Reset() {
	s.idx = 0
}
