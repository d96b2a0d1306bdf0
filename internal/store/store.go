package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/registers"
)

// Store manages a content-addressable collection of pack memory dumps.
type Store struct {
	baseDir     string
	dumpsDir    string
	metadataDir string
	indexPath   string
}

// Index contains quick lookup information for all dumps.
type Index struct {
	Dumps     map[string]IndexEntry `json:"dumps"` // hash -> entry
	UpdatedAt time.Time             `json:"updated_at"`
}

// IndexEntry contains summary info for quick listing.
type IndexEntry struct {
	BatteryType uint16    `json:"battery_type"`
	Description string    `json:"description"`
	Serial      uint32    `json:"serial"`
	HasReport   bool      `json:"has_report,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Listing is an index entry together with its hash.
type Listing struct {
	Hash string
	IndexEntry
}

// ErrNotFound is returned when no stored dump matches a hash.
var ErrNotFound = errors.New("dump not found")

// DefaultPath returns the default store path (~/.m18/store).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".m18", "store"), nil
}

// Open opens or creates a store at the given path.
func Open(path string) (*Store, error) {
	s := &Store{
		baseDir:     path,
		dumpsDir:    filepath.Join(path, "dumps"),
		metadataDir: filepath.Join(path, "metadata"),
		indexPath:   filepath.Join(path, "index.json"),
	}

	if err := os.MkdirAll(s.dumpsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create dumps dir: %w", err)
	}
	if err := os.MkdirAll(s.metadataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create metadata dir: %w", err)
	}

	return s, nil
}

// OpenDefault opens the store at dir, or at the default path when dir is empty.
func OpenDefault(dir string) (*Store, error) {
	if dir != "" {
		return Open(dir)
	}
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Dir returns the directory the store lives in.
func (s *Store) Dir() string {
	return s.baseDir
}

// Import adds a dump to the store.
// If the dump already exists (same hash), it appends the source.
// Returns the hash and whether it was a new dump.
func (s *Store) Import(img registers.Image, tables *registers.Tables, source Source) (string, bool, error) {
	hash, err := ContentHash(img)
	if err != nil {
		return "", false, err
	}

	meta, err := s.GetMetadata(hash)
	isNew := errors.Is(err, os.ErrNotExist)
	switch {
	case isNew:
		data, err := img.MarshalBinary()
		if err != nil {
			return "", false, err
		}
		if err := os.WriteFile(s.dumpPath(hash), data, 0o644); err != nil {
			return "", false, fmt.Errorf("failed to write dump: %w", err)
		}
		meta = ExtractMetadata(img, tables, hash)
		meta.Sources = []Source{source}
	case err != nil:
		return "", false, fmt.Errorf("failed to read metadata: %w", err)
	default:
		meta.Sources = append(meta.Sources, source)
		meta.UpdatedAt = time.Now()
	}

	if err := s.writeMetadata(meta); err != nil {
		return "", false, err
	}
	return hash, isNew, nil
}

// AttachReport stores a health report alongside an existing dump.
func (s *Store) AttachReport(hash string, report *m18.HealthReport) error {
	meta, err := s.GetMetadata(hash)
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	meta.Report = report
	meta.UpdatedAt = time.Now()
	return s.writeMetadata(meta)
}

// Get retrieves a dump by hash.
func (s *Store) Get(hash string) (registers.Image, error) {
	data, err := os.ReadFile(s.dumpPath(hash))
	if err != nil {
		return nil, err
	}
	var img registers.Image
	if err := img.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("failed to parse dump %s: %w", ShortHash(hash), err)
	}
	return img, nil
}

// GetMetadata retrieves dump metadata by hash.
func (s *Store) GetMetadata(hash string) (*Metadata, error) {
	data, err := os.ReadFile(s.metadataPath(hash))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List returns all dumps in the store, newest first.
func (s *Store) List() ([]Listing, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	entries := make([]Listing, 0, len(index.Dumps))
	for hash, entry := range index.Dumps {
		entries = append(entries, Listing{Hash: hash, IndexEntry: entry})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}

// ListWithHashes returns all dumps keyed by hash.
func (s *Store) ListWithHashes() (map[string]IndexEntry, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	return index.Dumps, nil
}

// Resolve expands a full hash, a bare hex digest or a prefix of one to
// the full hash of a stored dump.
func (s *Store) Resolve(ref string) (string, error) {
	dumps, err := s.ListWithHashes()
	if err != nil {
		return "", err
	}
	ref = strings.TrimPrefix(ref, "sha256:")
	if ref == "" {
		return "", ErrNotFound
	}

	var match string
	for hash := range dumps {
		if strings.HasPrefix(hashToFilename(hash), ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous hash %q", ref)
			}
			match = hash
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}

// Export writes a dump to a file in the on-disk dump format.
func (s *Store) Export(hash, destPath string) error {
	data, err := os.ReadFile(s.dumpPath(hash))
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, data, 0o644)
}

// Count returns the number of dumps in the store.
func (s *Store) Count() (int, error) {
	index, err := s.loadIndex()
	if err != nil {
		return 0, err
	}
	return len(index.Dumps), nil
}

func (s *Store) writeMetadata(meta *Metadata) error {
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.metadataPath(meta.ContentHash), metaJSON, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	if err := s.updateIndex(meta); err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}
	return nil
}

func (s *Store) loadIndex() (*Index, error) {
	data, err := os.ReadFile(s.indexPath)
	if errors.Is(err, os.ErrNotExist) {
		return &Index{Dumps: make(map[string]IndexEntry)}, nil
	}
	if err != nil {
		return nil, err
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	if index.Dumps == nil {
		index.Dumps = make(map[string]IndexEntry)
	}
	return &index, nil
}

func (s *Store) updateIndex(meta *Metadata) error {
	index, err := s.loadIndex()
	if err != nil {
		return err
	}

	index.Dumps[meta.ContentHash] = IndexEntry{
		BatteryType: meta.Identity.BatteryType,
		Description: meta.Identity.Description,
		Serial:      meta.Identity.Serial,
		HasReport:   meta.Report != nil,
		CreatedAt:   meta.CreatedAt,
	}
	index.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.indexPath, data, 0o644)
}

func (s *Store) dumpPath(hash string) string {
	return filepath.Join(s.dumpsDir, hashToFilename(hash)+".bin")
}

func (s *Store) metadataPath(hash string) string {
	return filepath.Join(s.metadataDir, hashToFilename(hash)+".json")
}

// hashToFilename converts a full hash to a safe filename.
func hashToFilename(hash string) string {
	return strings.TrimPrefix(hash, "sha256:")
}
