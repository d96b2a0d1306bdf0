package protocol

// ConfigureCommand announces the charger limits and charge state.
func ConfigureCommand(acc byte, state ChargeState) []byte {
	return []byte{
		CmdConfigure, acc, 8,
		byte(CutoffCurrent >> 8), byte(CutoffCurrent & 0xFF),
		byte(MaxCurrent >> 8), byte(MaxCurrent & 0xFF),
		byte(MaxCurrent >> 8), byte(MaxCurrent & 0xFF),
		byte(state), 13,
	}
}

// SnapshotCommand requests a status snapshot.
func SnapshotCommand(acc byte) []byte {
	return []byte{CmdSnapshot, acc, 0}
}

// KeepaliveCommand keeps the pack's interface awake.
func KeepaliveCommand(acc byte) []byte {
	return []byte{CmdKeepalive, acc, 0}
}

// CalibrateCommand is passed through unchanged; its effect on the pack is not known.
func CalibrateCommand(acc byte) []byte {
	return []byte{CmdCalibrate, acc, 0}
}

// MemoryCommand builds a memory read or write. For reads arg is the number
// of bytes wanted, for writes it is the byte to store.
func MemoryCommand(op MemoryOp, addr uint16, arg byte) []byte {
	return []byte{CmdMemory, byte(op), memSpace, byte(addr >> 8), byte(addr), arg}
}

// ReadCommand reads length bytes starting at addr.
func ReadCommand(addr uint16, length byte) []byte {
	return MemoryCommand(MemRead, addr, length)
}

// WriteCommand stores a single byte at addr.
func WriteCommand(addr uint16, value byte) []byte {
	return MemoryCommand(MemWrite, addr, value)
}
