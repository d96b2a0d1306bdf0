package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vitaminmoo/m18-tool/internal/m18"
)

// HealthReport prints a plain-text report with one X per percent in the
// discharge histogram.
func HealthReport(w io.Writer, r *m18.HealthReport) error {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	heading := func(s string) {
		b.WriteByte('\n')
		b.WriteString(styles.Heading.Render(s))
		b.WriteByte('\n')
	}

	line("Type: %d [%s]", r.BatteryType, r.BatteryDescription)
	line("E-serial: %d (does NOT match case serial)", r.ElectronicSerial)
	line("")
	line("Manufacture date: %s", r.ManufactureDate.UTC().Format("2006-01-02"))
	line("Days since 1st charge: %d", r.DaysSinceFirstCharge)
	line("Days since last tool use: %d", r.DaysSinceLastToolUse)
	line("Days since last charge: %d", r.DaysSinceLastCharge)
	line("Pack voltage: %.2fV", r.PackVoltage)
	line("Cell Voltages (mV): %s", cellList(r.CellVoltages))
	line("Cell Imbalance (mV): %d", r.CellImbalance)
	if r.Temperature != nil {
		line("Temperature (deg C): %.2f", *r.Temperature)
	}

	cs := r.ChargingStats
	heading("CHARGING STATS:")
	line("Charge count [Redlink, dumb, (total)]: %d, %d, (%d)", cs.RedlinkChargeCount, cs.DumbChargeCount, cs.TotalChargeCount)
	line("Total charge time: %s", cs.TotalChargeTime)
	line("Time idling on charger: %s", cs.TimeIdlingOnCharger)
	line("Low-voltage charges (any cell <2.5V): %d", cs.LowVoltageCharges)

	us := r.UsageStats
	heading("TOOL USE STATS:")
	line("Total discharge (Ah): %.2f", us.TotalDischargeAh)
	line("Total discharge cycles: %.2f", us.TotalDischargeCycles)
	line("Times discharged to empty: %d", us.TimesDischargedToEmpty)
	line("Times overheated: %d", us.TimesOverheated)
	line("Overcurrent events: %d", us.OvercurrentEvents)
	line("Low-voltage events: %d", us.LowVoltageEvents)
	line("Low-voltage bounce/stutter: %d", us.LowVoltageBounce)
	line("Total time on tool (>10A): %s", us.TotalTimeOnTool)

	heading("DISCHARGE HISTOGRAM:")
	for _, e := range r.DischargeHistogram {
		bar := styles.Bar.Render(strings.Repeat("X", int(e.Percentage)))
		line("Time @ %8s: %s %2d%% %s", e.CurrentRange, e.Duration, e.Percentage, bar)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// HealthJSON writes the report as indented JSON.
func HealthJSON(w io.Writer, r *m18.HealthReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
