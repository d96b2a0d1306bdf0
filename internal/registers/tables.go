package registers

// Tables bundles the static lookup data a connection decodes against.
type Tables struct {
	Registers []Definition
	Regions   []Region
	Batteries map[uint16]BatteryType
}

// DefaultTables returns the built-in register map, region list and battery table.
// The slices are shared; callers must not modify them.
func DefaultTables() *Tables {
	return &Tables{
		Registers: definitions,
		Regions:   regions,
		Batteries: batteryTypes,
	}
}

// Register returns the definition with the given ID.
func (t *Tables) Register(id int) (Definition, bool) {
	if id < 0 || id >= len(t.Registers) {
		return Definition{}, false
	}
	return t.Registers[id], true
}

// Lookup finds the register starting at addr.
func (t *Tables) Lookup(addr uint16) (int, bool) {
	for id, def := range t.Registers {
		if def.Address == addr {
			return id, true
		}
	}
	return 0, false
}

// Battery resolves a battery type code. Unknown codes yield UnknownBattery.
func (t *Tables) Battery(code uint16) BatteryType {
	if bt, ok := t.Batteries[code]; ok {
		return bt
	}
	return UnknownBattery
}

// WithRegisters returns a copy of t using defs as the register map.
func (t *Tables) WithRegisters(defs []Definition) *Tables {
	out := *t
	out.Registers = defs
	return &out
}
