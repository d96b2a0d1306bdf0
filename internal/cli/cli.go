package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/commands"
	"github.com/vitaminmoo/m18-tool/internal/config"
	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/publish"
	"github.com/vitaminmoo/m18-tool/internal/registers"
	"github.com/vitaminmoo/m18-tool/internal/render"
	"github.com/vitaminmoo/m18-tool/internal/store"
	"github.com/vitaminmoo/m18-tool/internal/tui"
	"github.com/vitaminmoo/m18-tool/internal/uart"
)

// WiringHelp is printed when a command fails in a way that suggests the
// adapter is not connected to the pack.
const WiringHelp = `Check the wiring between the serial adapter and the battery:
  UART-TX  → M18-J2
  UART-RX  → M18-J1
  UART-GND → M18-GND`

// CLI is the root command structure for m18.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable verbose debug output"`
	Config  string `type:"path" help:"Config file (default: $XDG_CONFIG_HOME/m18/config.yaml)"`
	Port    string `short:"p" help:"Serial port of the UART adapter"`
	DebugTX bool   `name:"debug-tx" help:"Log every frame sent"`
	DebugRX bool   `name:"debug-rx" help:"Log every frame received"`
	Strict  bool   `help:"Reject replies whose checksum does not match"`

	// Default command - TUI
	Tui TuiCmd `cmd:"" default:"withargs" help:"Launch interactive TUI (default)"`

	Ports     PortsCmd     `cmd:"" help:"List serial ports"`
	Health    HealthCmd    `cmd:"" help:"Print the battery health report"`
	Read      ReadCmd      `cmd:"" help:"Read registers"`
	Dump      DumpCmd      `cmd:"" help:"Dump all memory regions"`
	Decode    DecodeCmd    `cmd:"" help:"Decode a saved dump file"`
	Registers RegistersCmd `cmd:"" help:"Register map"`
	Simulate  SimulateCmd  `cmd:"" help:"Simulate a charger"`
	Note      NoteCmd      `cmd:"" help:"Write a note of up to 20 characters to the battery"`
	Idle      IdleCmd      `cmd:"" help:"Pull J2 low"`
	High      HighCmd      `cmd:"" help:"Drive J2 high"`
	Calibrate CalibrateCmd `cmd:"" help:"Send the calibrate command and print the reply"`
	Cmd       CustomCmd    `cmd:"" name:"cmd" help:"Send a raw memory command"`
	Submit    SubmitCmd    `cmd:"" help:"Submit diagnostics to the research form"`
	Store     StoreCmd     `cmd:"" help:"Local dump store"`
}

// settings loads the config file and applies flag overrides on top.
func (g *CLI) settings() (config.File, error) {
	config.Setup(g.Verbose || g.DebugTX || g.DebugRX)

	path := g.Config
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Debug().Err(err).Msg("No config dir, using defaults")
			return g.override(config.Defaults()), nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.File{}, err
	}
	return g.override(cfg), nil
}

func (g *CLI) override(cfg config.File) config.File {
	if g.Port != "" {
		cfg.Port = g.Port
	}
	cfg.Debug.TX = cfg.Debug.TX || g.DebugTX
	cfg.Debug.RX = cfg.Debug.RX || g.DebugRX
	cfg.StrictChecksum = cfg.StrictChecksum || g.Strict
	return cfg
}

func loadTables(cfg config.File) (*registers.Tables, error) {
	tables := registers.DefaultTables()
	if cfg.RegistersFile == "" {
		return tables, nil
	}
	defs, err := registers.LoadDefinitionsFile(cfg.RegistersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load register map: %w", err)
	}
	log.Debug().Str("file", cfg.RegistersFile).Int("registers", len(defs)).Msg("Loaded register map")
	return tables.WithRegisters(defs), nil
}

func clientOptions(cfg config.File) ([]m18.Option, error) {
	tables, err := loadTables(cfg)
	if err != nil {
		return nil, err
	}
	return []m18.Option{
		m18.WithTables(tables),
		m18.WithDebugPrint(cfg.Debug.TX, cfg.Debug.RX),
		m18.WithStrictChecksum(cfg.StrictChecksum),
	}, nil
}

// resolvePort picks the port from flags or config, falling back to the
// interactive picker on a terminal.
func resolvePort(cfg config.File) (string, error) {
	if cfg.Port != "" {
		return cfg.Port, nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", errors.New("no port given; use --port or set port in the config file")
	}
	port, err := tui.PickPort()
	if err != nil {
		return "", err
	}
	if port == "" {
		return "", errors.New("no port selected")
	}
	return port, nil
}

// connect loads settings and opens the pack.
func (g *CLI) connect() (*m18.Client, config.File, error) {
	cfg, err := g.settings()
	if err != nil {
		return nil, cfg, err
	}
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, cfg, err
	}
	port, err := resolvePort(cfg)
	if err != nil {
		return nil, cfg, err
	}
	cfg.Port = port
	c, err := m18.Open(port, opts...)
	if err != nil {
		return nil, cfg, err
	}
	return c, cfg, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q: want 0-255 or 0x00-0xFF", s)
	}
	return byte(v), nil
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: want 0-65535 or 0x0000-0xFFFF", s)
	}
	return uint16(v), nil
}

// --- TUI Command ---

type TuiCmd struct{}

func (c *TuiCmd) Run(globals *CLI) error {
	cfg, err := globals.settings()
	if err != nil {
		return err
	}
	opts, err := clientOptions(cfg)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Port:             cfg.Port,
		ClientOptions:    opts,
		StoreDir:         cfg.StoreDir,
		SimulateDuration: cfg.Simulate.Duration,
	})
}

// --- Pack Commands ---

type PortsCmd struct{}

func (c *PortsCmd) Run(globals *CLI) error {
	config.Setup(globals.Verbose)
	ports, err := uart.ListPorts()
	if err != nil {
		return err
	}
	return render.Ports(os.Stdout, ports)
}

type HealthCmd struct {
	JSON    bool `help:"Print the report as JSON"`
	Save    bool `help:"Dump memory and save it with the report to the store"`
	Publish bool `help:"Publish the report to Redis"`
}

func (c *HealthCmd) Run(globals *CLI) error {
	client, cfg, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	report, err := commands.Health(client, os.Stdout, c.JSON)
	if err != nil {
		return err
	}

	// Keep stdout pure JSON when --json is set.
	var status io.Writer = os.Stdout
	if c.JSON {
		status = os.Stderr
	}

	if c.Save {
		img, err := client.ReadAllRaw()
		if err != nil {
			return fmt.Errorf("failed to dump memory: %w", err)
		}
		st, err := store.OpenDefault(cfg.StoreDir)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		src := store.Source{Port: cfg.Port, Timestamp: time.Now(), Method: "health"}
		if _, err := commands.Archive(st, status, img, client.Tables(), src, report); err != nil {
			return err
		}
	}

	if c.Publish {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pub, err := publish.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer pub.Close()
		changed, err := pub.Publish(ctx, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(status, "Published %d changed field(s) to %s\n", len(changed), publish.Key(cfg.Redis.Key, report.ElectronicSerial))
	}
	return nil
}

type ReadCmd struct {
	IDs     []int  `arg:"" optional:"" name:"id" help:"Register IDs to read (default: all)"`
	Format  string `short:"f" enum:"label,raw,array,form" default:"label" help:"Output format (label, raw, array, form)"`
	Refresh bool   `default:"true" negatable:"" help:"Re-read the snapshot before reading"`
	Address string `short:"a" help:"Read the single register starting at this address instead"`
}

func (c *ReadCmd) Run(globals *CLI) error {
	f, err := render.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	var addr uint16
	if c.Address != "" {
		if addr, err = parseAddress(c.Address); err != nil {
			return err
		}
	}

	client, _, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	if c.Address != "" {
		return commands.ReadAddress(client, os.Stdout, addr)
	}
	return commands.ReadRegisters(client, os.Stdout, c.IDs, f, c.Refresh)
}

type DumpCmd struct {
	Output string `arg:"" optional:"" type:"path" help:"Also write the dump to this file"`
	NoSave bool   `name:"no-save" help:"Do not save the dump to the store"`
}

func (c *DumpCmd) Run(globals *CLI) error {
	client, cfg, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	img, err := commands.Dump(client, os.Stdout)
	if err != nil {
		return err
	}
	if c.Output != "" {
		if err := commands.SaveImage(c.Output, img); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", c.Output)
	}
	if c.NoSave {
		return nil
	}
	st, err := store.OpenDefault(cfg.StoreDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	src := store.Source{Port: cfg.Port, Timestamp: time.Now(), Method: "dump", Filename: c.Output}
	_, err = commands.Archive(st, os.Stdout, img, client.Tables(), src, nil)
	return err
}

type DecodeCmd struct {
	File   string `arg:"" type:"existingfile" help:"Dump file to decode"`
	Format string `short:"f" enum:"label,raw,array,form" default:"label" help:"Output format (label, raw, array, form)"`
}

func (c *DecodeCmd) Run(globals *CLI) error {
	cfg, err := globals.settings()
	if err != nil {
		return err
	}
	f, err := render.ParseFormat(c.Format)
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
	return commands.DecodeImage(os.Stdout, img, tables, f, time.Now())
}

type RegistersCmd struct {
	Export RegistersExportCmd `cmd:"" help:"Write the register map as YAML, for use as registers_file"`
}

type RegistersExportCmd struct {
	Output string `arg:"" optional:"" type:"path" help:"Output file (default: stdout)"`
}

func (c *RegistersExportCmd) Run(globals *CLI) error {
	cfg, err := globals.settings()
	if err != nil {
		return err
	}
	tables, err := loadTables(cfg)
	if err != nil {
		return err
	}
	if c.Output == "" {
		return registers.WriteDefinitions(os.Stdout, tables.Registers)
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	if err := registers.WriteDefinitions(f, tables.Registers); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type SimulateCmd struct {
	Duration time.Duration `arg:"" optional:"" help:"How long to simulate (default: simulate.duration from config)"`
}

func (c *SimulateCmd) Run(globals *CLI) error {
	client, cfg, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	d := c.Duration
	if d == 0 {
		d = cfg.Simulate.Duration
	}
	ctx, cancel := interruptContext()
	defer cancel()
	fmt.Printf("Simulating charger for %s, Ctrl-C to stop\n", d)
	return commands.Simulate(ctx, client, os.Stdout, d)
}

type NoteCmd struct {
	Message string `arg:"" help:"Note text, at most 20 characters"`
}

func (c *NoteCmd) Run(globals *CLI) error {
	client, _, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()
	return commands.Note(client, os.Stdout, c.Message)
}

type IdleCmd struct{}

func (c *IdleCmd) Run(globals *CLI) error {
	client, _, err := globals.connect()
	if err != nil {
		return err
	}
	client.Idle()
	fmt.Println("J2 pulled low")
	return client.Close()
}

type HighCmd struct {
	For time.Duration `help:"Return to idle after this long (default: until Ctrl-C)"`
}

func (c *HighCmd) Run(globals *CLI) error {
	client, _, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := interruptContext()
	defer cancel()
	if c.For == 0 {
		fmt.Println("J2 high, Ctrl-C to release")
	}
	commands.High(ctx, client, c.For)
	return nil
}

// --- Debug Commands ---

type CalibrateCmd struct{}

func (c *CalibrateCmd) Run(globals *CLI) error {
	client, _, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()
	return commands.Calibrate(client, os.Stdout)
}

type CustomCmd struct {
	Opcode   string `arg:"" help:"Command byte"`
	AddrHigh string `arg:"" name:"addr-high" help:"Address high byte"`
	AddrLow  string `arg:"" name:"addr-low" help:"Address low byte"`
	Length   string `arg:"" help:"Number of bytes to read"`
}

func (c *CustomCmd) Run(globals *CLI) error {
	var b [4]byte
	for i, s := range []string{c.Opcode, c.AddrHigh, c.AddrLow, c.Length} {
		v, err := parseByte(s)
		if err != nil {
			return err
		}
		b[i] = v
	}

	client, _, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()
	return commands.Custom(client, os.Stdout, b[0], b[1], b[2], b[3])
}

// --- Support Commands ---

type SubmitCmd struct {
	URL string `help:"Form endpoint (default: form.url from config)"`
}

func (c *SubmitCmd) Run(globals *CLI) error {
	client, cfg, err := globals.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	formURL := c.URL
	if formURL == "" {
		formURL = cfg.Form.URL
	}
	ctx, cancel := interruptContext()
	defer cancel()
	err = commands.Submit(ctx, client, os.Stdout, formURL)
	if errors.Is(err, commands.ErrDeclined) {
		fmt.Println("Not submitted.")
		return nil
	}
	return err
}
