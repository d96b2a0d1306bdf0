package commands

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/protocol"
	"github.com/vitaminmoo/m18-tool/internal/registers"
	"github.com/vitaminmoo/m18-tool/internal/render"
	"github.com/vitaminmoo/m18-tool/internal/store"
)

// scriptedLine echoes the sync byte and answers every other command with
// the next canned reply.
type scriptedLine struct {
	echo    bool
	replies [][]byte
	rx      bytes.Buffer
	sent    [][]byte
}

func (l *scriptedLine) Read(b []byte) (int, error) {
	if l.rx.Len() == 0 {
		return 0, nil
	}
	return l.rx.Read(b)
}

func (l *scriptedLine) Write(b []byte) (int, error) {
	logical := protocol.Reverse(b)
	l.sent = append(l.sent, logical)
	if len(logical) == 1 {
		if l.echo {
			l.rx.Write(protocol.Reverse([]byte{protocol.SyncByte}))
		}
		return len(b), nil
	}
	if len(l.replies) > 0 {
		l.rx.Write(protocol.Reverse(l.replies[0]))
		l.replies = l.replies[1:]
	}
	return len(b), nil
}

func (l *scriptedLine) SetBreak(bool) error { return nil }
func (l *scriptedLine) SetDTR(bool) error   { return nil }
func (l *scriptedLine) ResetInput() error   { l.rx.Reset(); return nil }
func (l *scriptedLine) Close() error        { return nil }

func TestCalibrate(t *testing.T) {
	line := &scriptedLine{echo: true, replies: [][]byte{{0x55, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}}}
	c := m18.New(line)

	var out bytes.Buffer
	if err := Calibrate(c, &out); err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if got := out.String(); got != "Response: 55 01 02 03 04 05 06 07\n" {
		t.Fatalf("output = %q", got)
	}
	last := line.sent[len(line.sent)-1]
	if last[0] != protocol.CmdCalibrate || last[1] != protocol.InitialACC {
		t.Fatalf("calibrate frame = % X", last)
	}
}

func TestCalibrateNoResponse(t *testing.T) {
	c := m18.New(&scriptedLine{})
	if err := Calibrate(c, &bytes.Buffer{}); !errors.Is(err, m18.ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}
}

func TestCustom(t *testing.T) {
	reply := []byte{0x81, 0x04, 0x03, 0xAB, 0xCD, 0x00}
	line := &scriptedLine{echo: true, replies: [][]byte{reply}}
	c := m18.New(line)

	var out bytes.Buffer
	if err := Custom(c, &out, 0x01, 0x60, 0x10, 1); err != nil {
		t.Fatalf("Custom: %v", err)
	}
	if got := out.String(); got != "Response: 81 04 03 AB CD 00\n" {
		t.Fatalf("output = %q", got)
	}
	last := line.sent[len(line.sent)-1]
	if !bytes.Equal(last[:6], []byte{0x01, 0x04, 0x03, 0x60, 0x10, 0x01}) {
		t.Fatalf("command = % X", last)
	}
}

func TestNoteTooLong(t *testing.T) {
	line := &scriptedLine{echo: true}
	c := m18.New(line)
	err := Note(c, &bytes.Buffer{}, strings.Repeat("x", 21))
	var tooLong *m18.MessageTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected MessageTooLongError, got %v", err)
	}
	if len(line.sent) != 0 {
		t.Fatalf("sent %d frames for a rejected note", len(line.sent))
	}
}

func testImage() registers.Image {
	head := make([]byte, 0x13)
	copy(head[4:], []byte{0x00, 0x6A, 0x01, 0xE2, 0x40})
	copy(head[0x0D:], []byte{0x5E, 0x5A, 0xFB, 0x00})
	cells := []byte{0x0E, 0xA6, 0x0E, 0xA8, 0x0E, 0xAA, 0x0E, 0xAC, 0x0E, 0xAE}
	live := make([]byte, 0x18)
	copy(live, cells)
	return registers.Image{
		{Address: 0x0000, Data: head},
		{Address: 0x6000, Data: live},
	}
}

func TestSaveLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.bin")
	if err := SaveImage(path, testImage()); err != nil {
		t.Fatal(err)
	}
	img, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(img) != 2 || img[1].Address != 0x6000 || img.Size() != testImage().Size() {
		t.Fatalf("loaded %+v", img)
	}
}

func TestDecodeImage(t *testing.T) {
	var out bytes.Buffer
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := DecodeImage(&out, testImage(), registers.DefaultTables(), render.Label, now); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Type: 106, Serial: 123456", "1: 3750, 2: 3752", "Pack voltage: 18.77V", "DISCHARGE HISTOGRAM:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestDecodeImageWithoutIdentity(t *testing.T) {
	var out bytes.Buffer
	img := testImage()[1:]
	if err := DecodeImage(&out, img, registers.DefaultTables(), render.Raw, time.Now()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Pack voltage") {
		t.Fatal("health report printed without serial and manufacture date")
	}
}

func TestPrintImage(t *testing.T) {
	var out bytes.Buffer
	PrintImage(&out, registers.Image{{Address: 0x0023, Data: []byte("HELLO")}})
	if !strings.Contains(out.String(), "Region 0x0023 (5 bytes):") || !strings.Contains(out.String(), "0023  48 45 4c 4c 4f") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	PrintJSON(&out, []byte(`{"a":1}`))
	if out.String() != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("output = %q", out.String())
	}
	out.Reset()
	PrintJSON(&out, []byte("not json"))
	if out.String() != "Body: not json\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestArchive(t *testing.T) {
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tables := registers.DefaultTables()
	src := store.Source{Port: "/dev/ttyUSB0", Timestamp: time.Now(), Method: "health"}
	report := &m18.HealthReport{BatteryType: 106, ElectronicSerial: 123456}

	var out bytes.Buffer
	hash, err := Archive(st, &out, testImage(), tables, src, report)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "Saved dump "+store.ShortHash(hash)) {
		t.Fatalf("output = %q", out.String())
	}
	meta, err := st.GetMetadata(hash)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Report == nil || meta.Report.ElectronicSerial != 123456 {
		t.Fatalf("report not attached: %+v", meta.Report)
	}

	out.Reset()
	if _, err := Archive(st, &out, testImage(), tables, src, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "already stored") {
		t.Fatalf("output = %q", out.String())
	}
}
