package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/registers"
)

func testImage() registers.Image {
	head := make([]byte, 0x13)
	copy(head[4:], []byte{0x00, 0x6A, 0x01, 0xE2, 0x40}) // type 106, serial 123456
	copy(head[0x0D:], []byte{0x5E, 0x5A, 0xFB, 0x00})    // 2020-03-01
	note := []byte("HELLO---------------")
	block2 := make([]byte, 0x18)
	copy(block2[4:], note)
	return registers.Image{
		{Address: 0x0000, Data: head},
		{Address: 0x001F, Data: block2},
	}
}

func TestImportAndGet(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tables := registers.DefaultTables()
	img := testImage()

	hash, isNew, err := s.Import(img, tables, Source{Method: "dump", Port: "/dev/ttyUSB0"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !isNew {
		t.Fatalf("first import should be new")
	}

	got, err := s.Get(hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 || got[1].Address != 0x001F || string(got[1].Data) != string(img[1].Data) {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	meta, err := s.GetMetadata(hash)
	if err != nil {
		t.Fatal(err)
	}
	id := meta.Identity
	if id.BatteryType != 106 || id.Serial != 123456 || id.Description != "6Ah HO (5s2p 21700)" {
		t.Errorf("identity = %+v", id)
	}
	if id.ManufactureDate == nil || id.ManufactureDate.Year() != 2020 {
		t.Errorf("manufacture date = %v", id.ManufactureDate)
	}
	if id.Note != "HELLO" {
		t.Errorf("note = %q", id.Note)
	}
	if meta.Size != 0x13+0x18 || meta.Blocks != 2 {
		t.Errorf("size = %d blocks = %d", meta.Size, meta.Blocks)
	}
}

func TestImportDuplicateAddsSource(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tables := registers.DefaultTables()

	hash1, _, err := s.Import(testImage(), tables, Source{Method: "dump"})
	if err != nil {
		t.Fatal(err)
	}
	hash2, isNew, err := s.Import(testImage(), tables, Source{Method: "import", Filename: "a.bin"})
	if err != nil {
		t.Fatal(err)
	}
	if hash1 != hash2 || isNew {
		t.Fatalf("duplicate import: %s %s new=%v", hash1, hash2, isNew)
	}
	meta, _ := s.GetMetadata(hash1)
	if len(meta.Sources) != 2 || meta.Sources[1].Filename != "a.bin" {
		t.Fatalf("sources = %+v", meta.Sources)
	}
	if n, _ := s.Count(); n != 1 {
		t.Fatalf("count = %d", n)
	}
}

func TestImportEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Import(nil, registers.DefaultTables(), Source{}); err == nil {
		t.Fatal("expected error for empty dump")
	}
}

func TestResolveAndExport(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "store"))
	if err != nil {
		t.Fatal(err)
	}
	hash, _, err := s.Import(testImage(), registers.DefaultTables(), Source{Method: "dump"})
	if err != nil {
		t.Fatal(err)
	}

	for _, ref := range []string{hash, hash[7:], ShortHash(hash), hash[7:11]} {
		got, err := s.Resolve(ref)
		if err != nil || got != hash {
			t.Errorf("Resolve(%q) = %q, %v", ref, got, err)
		}
	}
	if _, err := s.Resolve("zzzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	out := filepath.Join(dir, "out.bin")
	if err := s.Export(hash, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var img registers.Image
	if err := img.UnmarshalBinary(data); err != nil {
		t.Fatalf("exported file does not parse: %v", err)
	}
	if img.Size() != testImage().Size() {
		t.Fatalf("exported size = %d", img.Size())
	}
}

func TestAttachReport(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	hash, _, err := s.Import(testImage(), registers.DefaultTables(), Source{Method: "health"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AttachReport(hash, &m18.HealthReport{BatteryType: 106, PackVoltage: 18.5}); err != nil {
		t.Fatal(err)
	}

	meta, err := s.GetMetadata(hash)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Report == nil || meta.Report.PackVoltage != 18.5 {
		t.Fatalf("report = %+v", meta.Report)
	}
	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].HasReport || list[0].Hash != hash {
		t.Fatalf("list = %+v", list)
	}
}

func TestShortHash(t *testing.T) {
	if got := ShortHash("sha256:0123456789abcdef0123"); got != "0123456789ab" {
		t.Fatalf("ShortHash = %q", got)
	}
	if got := ShortHash("abc"); got != "abc" {
		t.Fatalf("ShortHash = %q", got)
	}
}
