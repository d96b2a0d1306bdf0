package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
)

// Frame layout on the wire:
//
//	[command bytes ...][checksum hi][checksum lo]
//
// The checksum is the 16-bit wrapping sum of the command bytes. Every byte,
// checksum included, is sent with its bit order reversed (the pack shifts
// LSB first where a UART expects MSB first). Replies carry no framing of
// their own: the caller knows how many bytes to expect, except that a first
// byte of ReplyShort means exactly one more byte follows.

// ReverseBits mirrors the bit order of a byte.
func ReverseBits(b byte) byte {
	return bits.Reverse8(b)
}

// Reverse returns a copy of p with every byte bit-reversed.
func Reverse(p []byte) []byte {
	out := make([]byte, len(p))
	for i, b := range p {
		out[i] = ReverseBits(b)
	}
	return out
}

// Checksum is the wrapping 16-bit sum of p.
func Checksum(p []byte) uint16 {
	var sum uint16
	for _, b := range p {
		sum += uint16(b)
	}
	return sum
}

// AppendChecksum returns cmd followed by its big-endian checksum.
func AppendChecksum(cmd []byte) []byte {
	out := make([]byte, len(cmd), len(cmd)+2)
	copy(out, cmd)
	return binary.BigEndian.AppendUint16(out, Checksum(cmd))
}

// Encode turns a logical command into wire bytes.
func Encode(cmd []byte) []byte {
	return Reverse(AppendChecksum(cmd))
}

// ReadFrame reads one reply of expected bytes from r and returns it in
// logical bit order. A reply starting with ReplyShort is two bytes long
// regardless of expected.
func ReadFrame(r io.Reader, expected int) ([]byte, error) {
	if expected < 1 {
		expected = 1
	}

	first := make([]byte, 1)
	if err := readFull(r, first); err != nil {
		return nil, err
	}

	rest := expected - 1
	if ReverseBits(first[0]) == ReplyShort {
		rest = 1
	}

	frame := make([]byte, 1+rest)
	frame[0] = first[0]
	if rest > 0 {
		if err := readFull(r, frame[1:]); err != nil {
			return nil, fmt.Errorf("failed to read reply body: %w", err)
		}
	}

	for i, b := range frame {
		frame[i] = ReverseBits(b)
	}
	return frame, nil
}

// VerifyChecksum checks the trailing checksum of a logical reply.
// Replies shorter than three bytes carry no checksum.
func VerifyChecksum(frame []byte) error {
	if len(frame) < 3 {
		return nil
	}
	n := len(frame) - 2
	want := binary.BigEndian.Uint16(frame[n:])
	if got := Checksum(frame[:n]); got != want {
		return fmt.Errorf("%w: computed %04x, trailer %04x", ErrChecksumMismatch, got, want)
	}
	return nil
}

// readFull fills p. A read that returns no bytes and no error is the serial
// driver's way of reporting that the read timeout expired.
func readFull(r io.Reader, p []byte) error {
	got := 0
	for got < len(p) {
		n, err := r.Read(p[got:])
		got += n
		if n > 0 && err == nil {
			continue
		}
		switch {
		case errors.Is(err, io.EOF) && got == 0:
			return ErrEmptyResponse
		case errors.Is(err, io.EOF):
			if got == len(p) {
				return nil
			}
			return fmt.Errorf("got %d of %d bytes: %w", got, len(p), io.ErrUnexpectedEOF)
		case err != nil:
			return err
		case n == 0 && got == 0:
			return ErrTimeout
		case n == 0:
			return fmt.Errorf("got %d of %d bytes: %w", got, len(p), ErrTimeout)
		}
	}
	return nil
}
