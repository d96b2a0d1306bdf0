package m18

import (
	"bytes"
	"testing"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/protocol"
)

// fakePack emulates a pack on the other end of a Line. Replies are queued
// in wire (bit-reversed) form; an empty queue reads like an expired
// timeout.
type fakePack struct {
	t *testing.T

	mem        map[uint16]byte
	syncReply  []byte // reply to the sync byte; nil means silence
	keepalives int    // keepalives answered before going silent, -1 for unlimited
	corrupt    bool   // break the checksum of read replies
	syncErr    error  // returned when the sync byte is written

	rx      bytes.Buffer
	frames  [][]byte // logical frames received, checksum stripped
	breakOn bool
	dtrOn   bool
	lines   []string
	closed  bool
}

func newFakePack(t *testing.T) *fakePack {
	return &fakePack{
		t:          t,
		mem:        map[uint16]byte{},
		syncReply:  []byte{protocol.SyncByte},
		keepalives: -1,
	}
}

func (p *fakePack) put(addr uint16, data ...byte) {
	for i, b := range data {
		p.mem[addr+uint16(i)] = b
	}
}

func (p *fakePack) reply(logical []byte) {
	p.rx.Write(protocol.Reverse(logical))
}

func (p *fakePack) Read(b []byte) (int, error) {
	if p.rx.Len() == 0 {
		return 0, nil
	}
	return p.rx.Read(b)
}

func (p *fakePack) Write(b []byte) (int, error) {
	logical := protocol.Reverse(b)
	if len(logical) == 1 {
		if p.syncErr != nil {
			return 0, p.syncErr
		}
		if logical[0] == protocol.SyncByte && p.syncReply != nil {
			p.reply(p.syncReply)
		}
		return len(b), nil
	}

	n := len(logical) - 2
	cmd := logical[:n]
	if sum := protocol.Checksum(cmd); logical[n] != byte(sum>>8) || logical[n+1] != byte(sum) {
		p.t.Errorf("bad checksum on frame % X", logical)
	}
	p.frames = append(p.frames, append([]byte(nil), cmd...))

	switch cmd[0] {
	case protocol.CmdMemory:
		addr := uint16(cmd[3])<<8 | uint16(cmd[4])
		switch protocol.MemoryOp(cmd[1]) {
		case protocol.MemRead:
			out := []byte{protocol.ReplyOK, cmd[1], cmd[2]}
			for i := 0; i < int(cmd[5]); i++ {
				out = append(out, p.mem[addr+uint16(i)])
			}
			out = protocol.AppendChecksum(out)
			if p.corrupt {
				out[len(out)-1]++
			}
			p.reply(out)
		case protocol.MemWrite:
			p.mem[addr] = cmd[5]
			p.reply([]byte{protocol.ReplyShort, 0x00})
		}
	case protocol.CmdConfigure:
		p.reply(make([]byte, protocol.ConfigureReplyLen))
	case protocol.CmdSnapshot:
		p.reply(make([]byte, protocol.SnapshotReplyLen))
	case protocol.CmdCalibrate:
		p.reply(make([]byte, protocol.CalibrateReplyLen))
	case protocol.CmdKeepalive:
		if p.keepalives == 0 {
			return len(b), nil
		}
		if p.keepalives > 0 {
			p.keepalives--
		}
		p.reply(make([]byte, protocol.KeepaliveReplyLen))
	}
	return len(b), nil
}

func (p *fakePack) SetBreak(on bool) error {
	p.breakOn = on
	p.lines = append(p.lines, map[bool]string{true: "break+", false: "break-"}[on])
	return nil
}

func (p *fakePack) SetDTR(on bool) error {
	p.dtrOn = on
	p.lines = append(p.lines, map[bool]string{true: "dtr+", false: "dtr-"}[on])
	return nil
}

func (p *fakePack) ResetInput() error {
	p.rx.Reset()
	return nil
}

func (p *fakePack) Close() error {
	p.closed = true
	return nil
}

// reads returns the addresses of all memory reads received.
func (p *fakePack) reads() []uint16 {
	var out []uint16
	for _, f := range p.frames {
		if f[0] == protocol.CmdMemory && protocol.MemoryOp(f[1]) == protocol.MemRead {
			out = append(out, uint16(f[3])<<8|uint16(f[4]))
		}
	}
	return out
}

func (p *fakePack) idle() bool {
	return p.breakOn && p.dtrOn
}

type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *fakePack, *fakeClock) {
	t.Helper()
	pack := newFakePack(t)
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(pack, opts...)
	c.sleep = clock.sleep
	c.now = clock.now
	pack.lines = nil
	return c, pack, clock
}
