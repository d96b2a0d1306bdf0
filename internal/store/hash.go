package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/vitaminmoo/m18-tool/internal/registers"
)

// ContentHash computes the content address of a memory dump. The hash
// covers the serialized image, so two dumps only match if every block
// address and byte is identical.
func ContentHash(img registers.Image) (string, error) {
	if img.Size() == 0 {
		return "", errors.New("empty dump")
	}
	data, err := img.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize dump: %w", err)
	}
	hash := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(hash[:]), nil
}

// ShortHash returns a shortened version of the hash for display purposes.
func ShortHash(fullHash string) string {
	// Remove "sha256:" prefix and take first 12 chars
	if len(fullHash) > 19 {
		return fullHash[7:19]
	}
	return fullHash
}
