package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/commands"
	"github.com/vitaminmoo/m18-tool/internal/config"
	"github.com/vitaminmoo/m18-tool/internal/render"
	"github.com/vitaminmoo/m18-tool/internal/store"
)

// --- Store Commands ---

type StoreCmd struct {
	List   StoreListCmd   `cmd:"" help:"List all stored dumps"`
	Show   StoreShowCmd   `cmd:"" help:"Show details of a stored dump"`
	Import StoreImportCmd `cmd:"" help:"Import a dump file into the store"`
	Export StoreExportCmd `cmd:"" help:"Export a dump to a file"`
}

func openStore(globals *CLI) (*store.Store, config.File, error) {
	cfg, err := globals.settings()
	if err != nil {
		return nil, cfg, err
	}
	s, err := store.OpenDefault(cfg.StoreDir)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to open store: %w", err)
	}
	return s, cfg, nil
}

type StoreListCmd struct{}

func (c *StoreListCmd) Run(globals *CLI) error {
	s, _, err := openStore(globals)
	if err != nil {
		return err
	}

	entries, err := s.List()
	if err != nil {
		return fmt.Errorf("failed to list dumps: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No dumps in store.")
		fmt.Println("Add one with: m18 dump, m18 health --save or m18 store import <dump.bin>")
		return nil
	}

	fmt.Printf("Found %d dump(s):\n\n", len(entries))
	return render.StoreListing(os.Stdout, entries, time.Now())
}

type StoreShowCmd struct {
	Hash string `arg:"" help:"Dump hash (full or prefix)"`
}

func (c *StoreShowCmd) Run(globals *CLI) error {
	s, _, err := openStore(globals)
	if err != nil {
		return err
	}

	hash, err := s.Resolve(c.Hash)
	if err != nil {
		return err
	}
	meta, err := s.GetMetadata(hash)
	if err != nil {
		return fmt.Errorf("failed to get metadata: %w", err)
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	commands.PrintJSON(os.Stdout, data)
	return nil
}

type StoreImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Dump file to import"`
}

func (c *StoreImportCmd) Run(globals *CLI) error {
	s, cfg, err := openStore(globals)
	if err != nil {
		return err
	}
	tables, err := loadTables(cfg)
	if err != nil {
		return err
	}
	img, err := commands.LoadImage(c.File)
	if err != nil {
		return err
	}

	source := store.Source{
		Timestamp: time.Now(),
		Method:    "import",
		Filename:  c.File,
	}
	_, err = commands.Archive(s, os.Stdout, img, tables, source, nil)
	return err
}

type StoreExportCmd struct {
	Hash   string `arg:"" help:"Dump hash (full or prefix)"`
	Output string `arg:"" type:"path" help:"Output file path"`
}

func (c *StoreExportCmd) Run(globals *CLI) error {
	s, _, err := openStore(globals)
	if err != nil {
		return err
	}

	hash, err := s.Resolve(c.Hash)
	if err != nil {
		return err
	}
	if err := s.Export(hash, c.Output); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	fmt.Printf("Exported %s to %s\n", store.ShortHash(hash), c.Output)
	return nil
}
