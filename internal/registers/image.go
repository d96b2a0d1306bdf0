package registers

import (
	"encoding/binary"
	"fmt"
)

// Reading is one decoded register.
type Reading struct {
	ID         int
	Definition Definition
	Value      Value
}

// Block is a span of raw pack memory as returned by a memory read.
type Block struct {
	Address uint16
	Data    []byte
}

// Image is a set of blocks, typically one per region.
type Image []Block

// Bytes returns n bytes starting at addr if one block covers them.
func (img Image) Bytes(addr uint16, n int) ([]byte, bool) {
	for _, b := range img {
		start := int(addr) - int(b.Address)
		if start < 0 || start+n > len(b.Data) {
			continue
		}
		return b.Data[start : start+n], true
	}
	return nil, false
}

// Decode decodes every register in t that the image covers.
// Registers outside the image or failing to decode are skipped.
func (img Image) Decode(t *Tables) []Reading {
	var out []Reading
	for id, def := range t.Registers {
		data, ok := img.Bytes(def.Address, def.Length)
		if !ok {
			continue
		}
		v, err := Decode(def, data)
		if err != nil {
			continue
		}
		out = append(out, Reading{ID: id, Definition: def, Value: v})
	}
	return out
}

// Size returns the number of data bytes in the image.
func (img Image) Size() int {
	n := 0
	for _, b := range img {
		n += len(b.Data)
	}
	return n
}

// MarshalBinary encodes the image as a sequence of
//
//	[address hi][address lo][length][data ...]
//
// records. This is the on-disk dump format.
func (img Image) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, img.Size()+3*len(img))
	for _, b := range img {
		if len(b.Data) > 0xFF {
			return nil, fmt.Errorf("block at %#06x is %d bytes, max 255", b.Address, len(b.Data))
		}
		out = binary.BigEndian.AppendUint16(out, b.Address)
		out = append(out, byte(len(b.Data)))
		out = append(out, b.Data...)
	}
	return out, nil
}

// UnmarshalBinary parses the format written by MarshalBinary.
func (img *Image) UnmarshalBinary(data []byte) error {
	var out Image
	for len(data) > 0 {
		if len(data) < 3 {
			return parseErrorf("truncated block header after %d blocks", len(out))
		}
		addr := binary.BigEndian.Uint16(data)
		n := int(data[2])
		data = data[3:]
		if len(data) < n {
			return parseErrorf("block at %#06x wants %d bytes, %d left", addr, n, len(data))
		}
		out = append(out, Block{Address: addr, Data: append([]byte(nil), data[:n]...)})
		data = data[n:]
	}
	*img = out
	return nil
}
