package store

import (
	"strings"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/registers"
)

// Register IDs the identity is read from.
const (
	regSerial          = 2
	regManufactureDate = 4
	regNote            = 7
)

// Metadata contains parsed information about a stored dump.
type Metadata struct {
	ContentHash string            `json:"content_hash"`
	Size        int               `json:"size"`
	Blocks      int               `json:"blocks"`
	Identity    Identity          `json:"identity"`
	Report      *m18.HealthReport `json:"report,omitempty"`
	Sources     []Source          `json:"sources"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Identity is what the dump says about the pack it came from.
type Identity struct {
	BatteryType     uint16     `json:"battery_type"`
	Description     string     `json:"description"`
	Serial          uint32     `json:"serial"`
	ManufactureDate *time.Time `json:"manufacture_date,omitempty"`
	Note            string     `json:"note,omitempty"`
}

// Source records where a dump was obtained from.
type Source struct {
	Port      string    `json:"port,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"` // "dump", "health", "import"
	Filename  string    `json:"filename,omitempty"`
}

// ExtractMetadata decodes the identity registers covered by img.
func ExtractMetadata(img registers.Image, tables *registers.Tables, hash string) *Metadata {
	now := time.Now()
	meta := &Metadata{
		ContentHash: hash,
		Size:        img.Size(),
		Blocks:      len(img),
		Identity:    Identity{Description: registers.UnknownBattery.Description},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, r := range img.Decode(tables) {
		switch {
		case r.ID == regSerial && r.Definition.Encoding == registers.SerialNumberPair:
			sn := r.Value.(registers.Serial)
			meta.Identity.BatteryType = sn.BatteryType
			meta.Identity.Serial = sn.Serial
			meta.Identity.Description = tables.Battery(sn.BatteryType).Description
		case r.ID == regManufactureDate && r.Definition.Encoding == registers.Timestamp:
			t := r.Value.(registers.Date).Time
			meta.Identity.ManufactureDate = &t
		case r.ID == regNote && r.Definition.Encoding == registers.AsciiText:
			meta.Identity.Note = strings.TrimRight(strings.Trim(r.Value.String(), `"`), "-\x00 ")
		}
	}

	return meta
}
