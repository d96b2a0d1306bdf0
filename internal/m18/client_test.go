package m18

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/protocol"
	"github.com/vitaminmoo/m18-tool/internal/registers"
)

func TestNewLeavesLineIdle(t *testing.T) {
	pack := newFakePack(t)
	New(pack)
	if !pack.idle() {
		t.Fatalf("line not idle after New: break=%v dtr=%v", pack.breakOn, pack.dtrOn)
	}
}

func TestResetSyncs(t *testing.T) {
	c, pack, clock := newTestClient(t)

	ok, err := c.Reset()
	if err != nil || !ok {
		t.Fatalf("Reset = %v, %v", ok, err)
	}
	if c.State() != Synced {
		t.Fatalf("state = %s", c.State())
	}

	wantLines := []string{"break+", "dtr+", "break-", "dtr-"}
	if !slices.Equal(pack.lines, wantLines) {
		t.Fatalf("line changes = %v, want %v", pack.lines, wantLines)
	}
	wantSleeps := []time.Duration{resetHold, resetHold, responseGap, syncSettle}
	if !slices.Equal(clock.slept, wantSleeps) {
		t.Fatalf("sleeps = %v, want %v", clock.slept, wantSleeps)
	}
}

func TestResetWithoutEcho(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.syncReply = nil

	ok, err := c.Reset()
	if err != nil {
		t.Fatalf("silence must not be an error: %v", err)
	}
	if ok || c.State() != Failed {
		t.Fatalf("Reset = %v, state %s", ok, c.State())
	}
}

func TestResetWrongEcho(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.syncReply = []byte{0x55}

	ok, err := c.Reset()
	if ok || err != nil {
		t.Fatalf("Reset = %v, %v; want false, nil", ok, err)
	}
}

func TestResetRestoresInitialACC(t *testing.T) {
	c, _, _ := newTestClient(t)
	if _, err := c.Configure(protocol.ChargeActive); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if c.ACC() == protocol.InitialACC {
		t.Fatalf("Configure should advance ACC")
	}
	if _, err := c.Reset(); err != nil {
		t.Fatal(err)
	}
	if c.ACC() != protocol.InitialACC {
		t.Fatalf("ACC after reset = %#02x", c.ACC())
	}
}

func TestCommandSequenceBytes(t *testing.T) {
	c, pack, _ := newTestClient(t)

	if _, err := c.Configure(protocol.ChargeInitialization); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Snapshot(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Keepalive(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Keepalive(); err != nil {
		t.Fatal(err)
	}
	reply, err := c.Calibrate()
	if err != nil {
		t.Fatal(err)
	}
	if len(reply) != protocol.CalibrateReplyLen {
		t.Fatalf("calibrate reply is %d bytes", len(reply))
	}

	var accs []byte
	for _, f := range pack.frames {
		accs = append(accs, f[1])
	}
	want := []byte{0x04, 0x0C, 0x1C, 0x1C, 0x1C}
	if !bytes.Equal(accs, want) {
		t.Fatalf("ACC bytes = % X, want % X", accs, want)
	}
	if c.ACC() != 0x04 {
		t.Fatalf("ACC after calibrate = %#02x", c.ACC())
	}
	if !bytes.Equal(pack.frames[0], protocol.ConfigureCommand(0x04, protocol.ChargeInitialization)) {
		t.Fatalf("configure frame = % X", pack.frames[0])
	}
}

func TestClearsInputBeforeSend(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.rx.Write([]byte{0xFF, 0xFF, 0xFF})

	reply, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !bytes.Equal(reply, make([]byte, protocol.SnapshotReplyLen)) {
		t.Fatalf("stale bytes leaked into reply: % X", reply)
	}
}

func TestKeepaliveTimeout(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.keepalives = 0

	_, err := c.Keepalive()
	if !errors.Is(err, protocol.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !IsConnectivity(err) {
		t.Fatalf("timeout should count as a connectivity error")
	}
}

func TestStrictChecksum(t *testing.T) {
	c, pack, _ := newTestClient(t, WithStrictChecksum(true))
	pack.put(0x6000, 0x0E, 0xA6)

	if _, err := c.ReadMemory(0x6000, 2); err != nil {
		t.Fatalf("valid reply rejected: %v", err)
	}

	pack.corrupt = true
	if _, err := c.ReadMemory(0x6000, 2); !errors.Is(err, protocol.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestLenientChecksumByDefault(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.put(0x6000, 0x0E, 0xA6)
	pack.corrupt = true

	data, err := c.ReadMemory(0x6000, 2)
	if err != nil {
		t.Fatalf("ReadMemory: %v", err)
	}
	if !bytes.Equal(data, []byte{0x0E, 0xA6}) {
		t.Fatalf("data = % X", data)
	}
}

func TestSendCustomCommand(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.put(0x9010, 0x65, 0x53, 0xF1, 0x00)

	reply, err := c.SendCustomCommand(protocol.CmdMemory, 0x90, 0x10, 4)
	if err != nil {
		t.Fatalf("SendCustomCommand: %v", err)
	}
	if len(reply) != 9 || reply[0] != protocol.ReplyOK || !bytes.Equal(reply[3:7], []byte{0x65, 0x53, 0xF1, 0x00}) {
		t.Fatalf("reply = % X", reply)
	}
}

func TestReadRegisters(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.put(0x0004, 0x00, 0x6A, 0x01, 0xE2, 0x40)
	pack.put(0x6000, 0x0E, 0xA6, 0x0E, 0xA8, 0x0E, 0xAA, 0x0E, 0xAC, 0x0E, 0xAE)

	readings, err := c.ReadRegisters([]int{12, 999, -1, 2}, false)
	if err != nil {
		t.Fatalf("ReadRegisters: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("got %d readings, want 2", len(readings))
	}
	if readings[0].ID != 12 || readings[0].Value != (registers.Cells{3750, 3752, 3754, 3756, 3758}) {
		t.Errorf("first reading = %+v", readings[0])
	}
	if readings[1].ID != 2 || readings[1].Value != (registers.Serial{BatteryType: 106, Serial: 123456}) {
		t.Errorf("second reading = %+v", readings[1])
	}
	if !slices.Equal(pack.reads(), []uint16{0x6000, 0x0004}) {
		t.Errorf("reads = %04X", pack.reads())
	}
	if !pack.idle() {
		t.Errorf("line not idle after batch")
	}
}

func TestReadRegistersForceRefresh(t *testing.T) {
	c, pack, clock := newTestClient(t)

	if _, err := c.ReadRegisters([]int{8}, true); err != nil {
		t.Fatalf("ReadRegisters: %v", err)
	}
	regions := c.Tables().Regions
	reads := pack.reads()
	if len(reads) != len(regions)+1 {
		t.Fatalf("got %d reads, want %d", len(reads), len(regions)+1)
	}
	for i, r := range regions {
		if reads[i] != r.Address() {
			t.Fatalf("read %d at %#04x, want region %#04x", i, reads[i], r.Address())
		}
	}
	if reads[len(reads)-1] != 0x4000 {
		t.Fatalf("last read at %#04x", reads[len(reads)-1])
	}
	if !slices.Contains(clock.slept, refreshSettle) {
		t.Fatalf("missing settle delay after refresh: %v", clock.slept)
	}
}

func TestReadRegistersSkipsSilentPack(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.syncReply = nil

	// The fake still answers memory reads, so only the handshake is missing;
	// the batch goes ahead regardless.
	readings, err := c.ReadRegisters([]int{0}, false)
	if err != nil {
		t.Fatalf("ReadRegisters: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("got %d readings", len(readings))
	}
}

func TestReadsIdleAfterLineFailure(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.syncErr = errors.New("device unplugged")

	if _, err := c.ReadRegisters([]int{0}, true); err == nil {
		t.Fatal("ReadRegisters: expected error")
	}
	if !pack.idle() {
		t.Fatalf("line left active after ReadRegisters: %v", pack.lines)
	}

	pack.lines = nil
	if _, err := c.ReadAllRaw(); err == nil {
		t.Fatal("ReadAllRaw: expected error")
	}
	if !pack.idle() {
		t.Fatalf("line left active after ReadAllRaw: %v", pack.lines)
	}
}

func TestReadAllRegisters(t *testing.T) {
	c, _, _ := newTestClient(t)
	readings, err := c.ReadAllRegisters(false)
	if err != nil {
		t.Fatalf("ReadAllRegisters: %v", err)
	}
	if len(readings) != len(c.Tables().Registers) {
		t.Fatalf("got %d readings, want %d", len(readings), len(c.Tables().Registers))
	}
}

func TestReadAllRaw(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.put(0x0000, 0x00, 0x01)

	img, err := c.ReadAllRaw()
	if err != nil {
		t.Fatalf("ReadAllRaw: %v", err)
	}
	if len(img) != len(c.Tables().Regions) {
		t.Fatalf("got %d blocks", len(img))
	}
	if img[0].Address != 0 || img[0].Data[1] != 0x01 {
		t.Fatalf("first block = %+v", img[0])
	}
	if !pack.idle() {
		t.Fatalf("line not idle after dump")
	}
}

func TestReadAddress(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.put(0x902E, 0x00, 0x00, 0x0E, 0x4D)

	r, err := c.ReadAddress(0x902E)
	if err != nil {
		t.Fatalf("ReadAddress: %v", err)
	}
	if r.ID != 35 || r.Value != registers.Duration("01:01:01") {
		t.Fatalf("reading = %+v", r)
	}

	_, err = c.ReadAddress(0x1234)
	var nf *RegisterNotFoundError
	if !errors.As(err, &nf) || nf.Address != 0x1234 {
		t.Fatalf("expected RegisterNotFoundError, got %v", err)
	}
	if !strings.Contains(err.Error(), "0x1234") {
		t.Fatalf("error should name the address: %v", err)
	}
}

func TestWriteMessage(t *testing.T) {
	c, pack, _ := newTestClient(t)

	if err := c.WriteMessage("hello"); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	var got []byte
	for i := uint16(0); i < MaxMessageLength; i++ {
		got = append(got, pack.mem[noteAddress+i])
	}
	if string(got) != "hello---------------" {
		t.Fatalf("note = %q", got)
	}
	if len(pack.frames) != MaxMessageLength {
		t.Fatalf("sent %d frames, want one per byte", len(pack.frames))
	}
	if !pack.idle() {
		t.Fatalf("line not idle after write")
	}
}

func TestWriteMessageTooLong(t *testing.T) {
	c, pack, _ := newTestClient(t)

	err := c.WriteMessage(strings.Repeat("x", 21))
	var tooLong *MessageTooLongError
	if !errors.As(err, &tooLong) || tooLong.Length != 21 {
		t.Fatalf("expected MessageTooLongError{21}, got %v", err)
	}
	if len(pack.frames) != 0 || len(pack.lines) != 0 {
		t.Fatalf("no traffic expected, got %d frames and line changes %v", len(pack.frames), pack.lines)
	}
}

func TestWriteMessageNoResponse(t *testing.T) {
	c, pack, _ := newTestClient(t)
	pack.syncReply = nil

	if err := c.WriteMessage("hi"); !errors.Is(err, ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}
}

func TestHighFor(t *testing.T) {
	c, pack, clock := newTestClient(t)

	c.HighFor(3 * time.Second)
	want := []string{"break-", "dtr-", "break+", "dtr+"}
	if !slices.Equal(pack.lines, want) {
		t.Fatalf("line changes = %v, want %v", pack.lines, want)
	}
	if !slices.Equal(clock.slept, []time.Duration{3 * time.Second}) {
		t.Fatalf("sleeps = %v", clock.slept)
	}
}

func TestCloseIdlesLine(t *testing.T) {
	c, pack, _ := newTestClient(t)
	c.High()
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !pack.closed || !pack.idle() {
		t.Fatalf("closed=%v idle=%v", pack.closed, pack.idle())
	}
}
