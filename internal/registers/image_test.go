package registers

import (
	"bytes"
	"testing"
)

func TestImageRoundTrip(t *testing.T) {
	img := Image{
		{Address: 0x0000, Data: []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x6A, 0x01, 0xE2, 0x40}},
		{Address: 0x6000, Data: []byte{0x0E, 0xA6, 0x0E, 0xA8, 0x0E, 0xAA, 0x0E, 0xAC, 0x0E, 0xAE}},
	}
	raw, err := img.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(raw) != img.Size()+6 {
		t.Fatalf("encoded %d bytes, want %d", len(raw), img.Size()+6)
	}

	var back Image
	if err := back.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if len(back) != 2 || back[1].Address != 0x6000 || !bytes.Equal(back[1].Data, img[1].Data) {
		t.Fatalf("round trip mismatch: %+v", back)
	}

	if err := back.UnmarshalBinary(raw[:len(raw)-1]); err == nil {
		t.Fatalf("truncated image should fail")
	}
}

func TestImageDecode(t *testing.T) {
	img := Image{
		{Address: 0x0000, Data: []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x6A, 0x01, 0xE2, 0x40}},
		{Address: 0x6000, Data: []byte{0x0E, 0xA6, 0x0E, 0xA8, 0x0E, 0xAA, 0x0E, 0xAC, 0x0E, 0xAE}},
	}
	readings := img.Decode(DefaultTables())

	byID := map[int]Value{}
	for _, r := range readings {
		byID[r.ID] = r.Value
	}
	if byID[0] != Uint(1) {
		t.Errorf("register 0 = %v", byID[0])
	}
	if byID[2] != (Serial{BatteryType: 106, Serial: 123456}) {
		t.Errorf("register 2 = %v", byID[2])
	}
	if byID[12] != (Cells{3750, 3752, 3754, 3756, 3758}) {
		t.Errorf("register 12 = %v", byID[12])
	}
	if _, ok := byID[4]; ok {
		t.Errorf("register 4 is outside the image")
	}
}
