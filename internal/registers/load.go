package registers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// fileDefinition is the YAML form of a Definition.
type fileDefinition struct {
	Address hexAddress `yaml:"address"`
	Length  int        `yaml:"length"`
	Type    string     `yaml:"type"`
	Label   string     `yaml:"label"`
}

// hexAddress reads decimal or 0x-prefixed addresses and writes hex.
type hexAddress uint16

func (a *hexAddress) UnmarshalYAML(node *yaml.Node) error {
	v, err := strconv.ParseUint(node.Value, 0, 16)
	if err != nil {
		return fmt.Errorf("line %d: invalid address %q", node.Line, node.Value)
	}
	*a = hexAddress(v)
	return nil
}

func (a hexAddress) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("0x%04X", uint16(a))}, nil
}

// LoadDefinitions reads a YAML list of register definitions. List order
// gives the register IDs.
func LoadDefinitions(r io.Reader) ([]Definition, error) {
	var raw []fileDefinition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, parseErrorf("register file is empty")
		}
		return nil, fmt.Errorf("failed to parse register definitions: %w", err)
	}

	defs := make([]Definition, 0, len(raw))
	for i, d := range raw {
		enc, err := ParseEncoding(d.Type)
		if err != nil {
			return nil, fmt.Errorf("register %d: %w", i, err)
		}
		if d.Length <= 0 || d.Length > 0xFF {
			return nil, parseErrorf("register %d: invalid length %d", i, d.Length)
		}
		defs = append(defs, Definition{
			Address:  uint16(d.Address),
			Length:   d.Length,
			Encoding: enc,
			Label:    d.Label,
		})
	}
	return defs, nil
}

// LoadDefinitionsFile reads register definitions from a YAML file.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDefinitions(f)
}

// WriteDefinitions writes defs in the format LoadDefinitions reads.
func WriteDefinitions(w io.Writer, defs []Definition) error {
	raw := make([]fileDefinition, len(defs))
	for i, d := range defs {
		raw[i] = fileDefinition{
			Address: hexAddress(d.Address),
			Length:  d.Length,
			Type:    d.Encoding.String(),
			Label:   d.Label,
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return err
	}
	return enc.Close()
}
