package protocol

// Command opcodes (first logical byte of a command frame)
const (
	CmdMemory    byte = 0x01
	CmdCalibrate byte = 0x55
	CmdConfigure byte = 0x60
	CmdSnapshot  byte = 0x61
	CmdKeepalive byte = 0x62
)

// SyncByte is sent after a reset and echoed back by a responsive pack.
const SyncByte byte = 0xAA

// Reply markers
const (
	// ReplyOK is the first byte of a successful memory read.
	ReplyOK byte = 0x81
	// ReplyShort is the first byte of a two-byte reply (acks and refusals).
	ReplyShort byte = 0x82
)

// MemoryOp selects read or write in a memory command.
type MemoryOp byte

const (
	MemRead  MemoryOp = 0x04
	MemWrite MemoryOp = 0x05
)

// memSpace is the constant third byte of every memory command.
const memSpace byte = 0x03

// ChargeState is the state byte of a configure command.
type ChargeState byte

const (
	ChargeActive         ChargeState = 0x01
	ChargeInitialization ChargeState = 0x02
)

func (s ChargeState) String() string {
	switch s {
	case ChargeActive:
		return "active"
	case ChargeInitialization:
		return "initialization"
	default:
		return "unknown"
	}
}

// Charger limits advertised in configure (mA).
const (
	CutoffCurrent uint16 = 300
	MaxCurrent    uint16 = 6000
)

// Expected reply sizes in bytes.
const (
	ConfigureReplyLen = 5
	SnapshotReplyLen  = 8
	KeepaliveReplyLen = 9
	CalibrateReplyLen = 8
	WriteAckLen       = 2
	// ReadOverhead is added to the requested length of a memory read.
	ReadOverhead = 5
)
