package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/registers"
	"github.com/vitaminmoo/m18-tool/internal/store"
	"github.com/vitaminmoo/m18-tool/internal/uart"
)

var now = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

func readings() []registers.Reading {
	defs := registers.DefaultTables().Registers
	return []registers.Reading{
		{ID: 2, Definition: defs[2], Value: registers.Serial{BatteryType: 106, Serial: 123456}},
		{ID: 12, Definition: defs[12], Value: registers.Cells{3750, 3752, 3754, 3756, 3758}},
		{ID: 18, Definition: defs[18], Value: registers.Float(24.5)},
		{ID: 31, Definition: defs[31], Value: registers.Uint(42)},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{Label, Raw, Array, Form} {
		got, err := ParseFormat(strings.ToUpper(f.String()))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f, got, err)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestValue(t *testing.T) {
	cells := registers.Cells{3750, 3752, 3754, 3756, 3758}
	sn := registers.Serial{BatteryType: 36, Serial: 99}
	cases := []struct {
		v    registers.Value
		f    Format
		want string
	}{
		{registers.Float(24.5), Label, "24.50"},
		{registers.Uint(7), Raw, "7"},
		{cells, Label, "1: 3750, 2: 3752, 3: 3754, 4: 3756, 5: 3758"},
		{cells, Raw, "3750\n3752\n3754\n3756\n3758"},
		{cells, Form, "[3750, 3752, 3754, 3756, 3758]"},
		{sn, Label, "Type:  36, Serial: 99"},
		{sn, Raw, "36\n99"},
		{registers.Duration("01:02:03"), Form, "01:02:03"},
	}
	for _, c := range cases {
		if got := Value(c.v, c.f); got != c.want {
			t.Errorf("Value(%v, %s) = %q, want %q", c.v, c.f, got, c.want)
		}
	}
}

func TestRegistersLabel(t *testing.T) {
	var buf bytes.Buffer
	if err := Registers(&buf, readings(), Label, now); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "2024-06-01 12:30:00" {
		t.Errorf("timestamp line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ID  ADDR") {
		t.Errorf("header = %q", lines[1])
	}
	want := "  2 0x0004  5     sn   Capacity & serial number                Type: 106, Serial: 123456"
	if lines[2] != want {
		t.Errorf("row =\n%q\nwant\n%q", lines[2], want)
	}
	if !strings.HasSuffix(lines[4], " 24.50") {
		t.Errorf("float row = %q", lines[4])
	}
}

func TestRegistersRaw(t *testing.T) {
	var buf bytes.Buffer
	if err := Registers(&buf, readings(), Raw, now); err != nil {
		t.Fatal(err)
	}
	want := "2024-06-01 12:30:00\n106\n123456\n3750\n3752\n3754\n3756\n3758\n24.50\n42\n"
	if buf.String() != want {
		t.Fatalf("raw output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestRegistersArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Registers(&buf, readings()[2:], Array, now); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "Results as array: [(18, 24.50), (31, 42)]\n" {
		t.Fatalf("array output = %q", got)
	}
}

func TestFormBlob(t *testing.T) {
	got := FormBlob(readings(), now)
	want := "2024-06-01 12:30:00\nType: 106, Serial: 123456\n[3750, 3752, 3754, 3756, 3758]\n24.50\n42\n"
	if got != want {
		t.Fatalf("form blob =\n%q\nwant\n%q", got, want)
	}
}

func testReport() *m18.HealthReport {
	temp := 24.5
	hist := make([]m18.DischargeHistogramEntry, 20)
	for i := range hist {
		hist[i] = m18.DischargeHistogramEntry{CurrentRange: "x", Duration: "00:00:00"}
	}
	hist[0] = m18.DischargeHistogramEntry{CurrentRange: "10-20A", Duration: "01:00:00", Percentage: 75}
	hist[19] = m18.DischargeHistogramEntry{CurrentRange: "> 200A", Duration: "00:20:00", Percentage: 25}
	return &m18.HealthReport{
		BatteryType:        106,
		BatteryDescription: "6Ah HO (5s2p 21700)",
		ElectronicSerial:   123456,
		ManufactureDate:    time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
		PackVoltage:        18.77,
		CellVoltages:       registers.Cells{3750, 3752, 3754, 3756, 3758},
		CellImbalance:      8,
		Temperature:        &temp,
		ChargingStats: m18.ChargingStats{
			RedlinkChargeCount: 40, DumbChargeCount: 2, TotalChargeCount: 42,
			TotalChargeTime: "30:00:00", TimeIdlingOnCharger: "00:00:00",
		},
		UsageStats: m18.UsageStats{
			TotalDischargeAh: 60, TotalDischargeCycles: 10, TotalTimeOnTool: "01:20:00",
		},
		DischargeHistogram: hist,
	}
}

func TestHealthReport(t *testing.T) {
	var buf bytes.Buffer
	if err := HealthReport(&buf, testReport()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Type: 106 [6Ah HO (5s2p 21700)]\n",
		"E-serial: 123456 (does NOT match case serial)\n\n",
		"Manufacture date: 2020-03-01\n",
		"Pack voltage: 18.77V\n",
		"Cell Voltages (mV): [3750, 3752, 3754, 3756, 3758]\n",
		"Cell Imbalance (mV): 8\n",
		"Temperature (deg C): 24.50\n",
		"Charge count [Redlink, dumb, (total)]: 40, 2, (42)\n",
		"Total discharge (Ah): 60.00\n",
		"Total discharge cycles: 10.00\n",
		"Total time on tool (>10A): 01:20:00\n",
		"Time @   10-20A: 01:00:00 75% " + strings.Repeat("X", 75) + "\n",
		"Time @   > 200A: 00:20:00 25% " + strings.Repeat("X", 25) + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHealthReportWithoutTemperature(t *testing.T) {
	r := testReport()
	r.Temperature = nil
	var buf bytes.Buffer
	if err := HealthReport(&buf, r); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Temperature") {
		t.Fatal("temperature line printed for a report without one")
	}
}

func TestHealthJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := HealthJSON(&buf, testReport()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"pack_voltage": 18.77`, `"battery_description": "6Ah HO (5s2p 21700)"`, `"temperature": 24.5`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("JSON missing %s", want)
		}
	}
}

func TestPorts(t *testing.T) {
	var buf bytes.Buffer
	ports := []uart.PortInfo{
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001", Product: "FT232R"},
		{Name: "/dev/ttyS0"},
	}
	if err := Ports(&buf, ports); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"/dev/ttyUSB0", "USB 0403:6001", "FT232R", "/dev/ttyS0"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	Ports(&buf, nil)
	if !strings.Contains(buf.String(), "No serial ports") {
		t.Errorf("empty listing = %q", buf.String())
	}
}

func TestStoreListing(t *testing.T) {
	var buf bytes.Buffer
	entries := []store.Listing{{
		Hash: "sha256:0123456789abcdef",
		IndexEntry: store.IndexEntry{
			BatteryType: 106, Serial: 123456, Description: "6Ah HO (5s2p 21700)",
			HasReport: true, CreatedAt: now.Add(-3 * time.Hour),
		},
	}}
	if err := StoreListing(&buf, entries, now); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"0123456789ab", "123456", "6Ah HO", "yes", "3 hours ago"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}
}
