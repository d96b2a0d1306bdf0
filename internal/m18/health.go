package m18

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/registers"
)

// Register IDs the health report is built from.
const (
	regSerial          = 2
	regManufactureDate = 4
	regSystemDate      = 8
	regCells           = 12
	regTempADC         = 13
	regTempDecimal     = 18
	regLastToolUse     = 25
	regLastCharge      = 26
	regDaysFirstCharge = 28
	regDischargeAmpSec = 29
	regTotalCharges    = 31
	regDumbCharges     = 32
	regRedlinkCharges  = 33
	regChargeTime      = 35
	regIdleOnCharger   = 36
	regLowVoltCharges  = 38
	regDischargedEmpty = 39
	regOverheat        = 40
	regOvercurrent     = 41
	regLowVoltEvents   = 42
	regLowVoltBounce   = 43
	regHistogramFirst  = 44
	regHistogramLast   = 63
)

// HealthRegisterIDs lists every register a health report reads.
func HealthRegisterIDs() []int {
	ids := []int{
		regManufactureDate, regDaysFirstCharge, regLastToolUse, regLastCharge,
		regCells, regTempADC, regTempDecimal, regDischargeAmpSec,
		regDischargedEmpty, regOverheat, regOvercurrent, regLowVoltEvents, regLowVoltBounce,
		regRedlinkCharges, regDumbCharges, regTotalCharges,
		regChargeTime, regIdleOnCharger, regLowVoltCharges,
		regSystemDate, regSerial,
	}
	for id := regHistogramFirst; id <= regHistogramLast; id++ {
		ids = append(ids, id)
	}
	return ids
}

// HealthReport summarises a pack's identity, state and history.
type HealthReport struct {
	Timestamp            time.Time                 `json:"timestamp"`
	BatteryType          uint16                    `json:"battery_type"`
	BatteryDescription   string                    `json:"battery_description"`
	ElectronicSerial     uint32                    `json:"electronic_serial"`
	ManufactureDate      time.Time                 `json:"manufacture_date"`
	DaysSinceFirstCharge uint16                    `json:"days_since_first_charge"`
	DaysSinceLastToolUse int64                     `json:"days_since_last_tool_use"`
	DaysSinceLastCharge  int64                     `json:"days_since_last_charge"`
	PackVoltage          float64                   `json:"pack_voltage"`
	CellVoltages         registers.Cells           `json:"cell_voltages"`
	CellImbalance        uint16                    `json:"cell_imbalance"`
	Temperature          *float64                  `json:"temperature"`
	ChargingStats        ChargingStats             `json:"charging_stats"`
	UsageStats           UsageStats                `json:"usage_stats"`
	DischargeHistogram   []DischargeHistogramEntry `json:"discharge_histogram"`
}

type ChargingStats struct {
	RedlinkChargeCount  uint16 `json:"redlink_charge_count"`
	DumbChargeCount     uint16 `json:"dumb_charge_count"`
	TotalChargeCount    uint16 `json:"total_charge_count"`
	TotalChargeTime     string `json:"total_charge_time"`
	TimeIdlingOnCharger string `json:"time_idling_on_charger"`
	LowVoltageCharges   uint16 `json:"low_voltage_charges"`
}

type UsageStats struct {
	TotalDischargeAh       float64 `json:"total_discharge_ah"`
	TotalDischargeCycles   float64 `json:"total_discharge_cycles"`
	TimesDischargedToEmpty uint16  `json:"times_discharged_to_empty"`
	TimesOverheated        uint16  `json:"times_overheated"`
	OvercurrentEvents      uint16  `json:"overcurrent_events"`
	LowVoltageEvents       uint16  `json:"low_voltage_events"`
	LowVoltageBounce       uint16  `json:"low_voltage_bounce"`
	TotalTimeOnTool        string  `json:"total_time_on_tool"`
}

// DischargeHistogramEntry is the time spent in one discharge current band.
type DischargeHistogramEntry struct {
	CurrentRange string `json:"current_range"`
	Duration     string `json:"duration"`
	Percentage   uint8  `json:"percentage"`
}

// HealthReport reads the health registers with a forced refresh and
// builds a report from them.
func (c *Client) HealthReport() (*HealthReport, error) {
	log.Info().Msg("Reading battery. This will take 5-10sec")
	readings, err := c.ReadRegisters(HealthRegisterIDs(), true)
	if err != nil {
		return nil, err
	}
	return BuildHealthReport(readings, c.tables, c.now())
}

// BuildHealthReport derives a report from decoded registers. Serial info,
// manufacture date and cell voltages are required; everything else falls
// back to a default when missing.
func BuildHealthReport(readings []registers.Reading, tables *registers.Tables, now time.Time) (*HealthReport, error) {
	values := make(map[int]registers.Value, len(readings))
	for _, r := range readings {
		values[r.ID] = r.Value
	}

	serial, ok := values[regSerial].(registers.Serial)
	if !ok {
		return nil, &registers.ParseError{Msg: "could not read battery serial info"}
	}
	manufactured, ok := values[regManufactureDate].(registers.Date)
	if !ok {
		return nil, &registers.ParseError{Msg: "could not read manufacture date"}
	}
	cells, ok := values[regCells].(registers.Cells)
	if !ok {
		return nil, &registers.ParseError{Msg: "could not read cell voltages"}
	}

	systemDate := now.UTC()
	if d, ok := values[regSystemDate].(registers.Date); ok {
		systemDate = d.Time
	}
	dateOr := func(id int) time.Time {
		if d, ok := values[id].(registers.Date); ok {
			return d.Time
		}
		return systemDate
	}
	uintOf := func(id int) uint64 {
		if v, ok := values[id].(registers.Uint); ok {
			return uint64(v)
		}
		return 0
	}
	durationOf := func(id int) string {
		if v, ok := values[id].(registers.Duration); ok {
			return string(v)
		}
		return "00:00:00"
	}

	battery := tables.Battery(serial.BatteryType)

	report := &HealthReport{
		Timestamp:            now.UTC(),
		BatteryType:          serial.BatteryType,
		BatteryDescription:   battery.Description,
		ElectronicSerial:     serial.Serial,
		ManufactureDate:      manufactured.Time,
		DaysSinceFirstCharge: uint16(uintOf(regDaysFirstCharge)),
		DaysSinceLastToolUse: daysBetween(dateOr(regLastToolUse), systemDate),
		DaysSinceLastCharge:  daysBetween(dateOr(regLastCharge), systemDate),
		PackVoltage:          float64(cells.Sum()) / 1000,
		CellVoltages:         cells,
		CellImbalance:        cells.Spread(),
		ChargingStats: ChargingStats{
			RedlinkChargeCount:  uint16(uintOf(regRedlinkCharges)),
			DumbChargeCount:     uint16(uintOf(regDumbCharges)),
			TotalChargeCount:    uint16(uintOf(regTotalCharges)),
			TotalChargeTime:     durationOf(regChargeTime),
			TimeIdlingOnCharger: durationOf(regIdleOnCharger),
			LowVoltageCharges:   uint16(uintOf(regLowVoltCharges)),
		},
	}

	if t, ok := values[regTempADC].(registers.Float); ok {
		report.Temperature = ptr(float64(t))
	} else if t, ok := values[regTempDecimal].(registers.Float); ok {
		report.Temperature = ptr(float64(t))
	}

	ah := float64(uintOf(regDischargeAmpSec)) / 3600
	cycles := 0.0
	if battery.CapacityAh > 0 {
		cycles = ah / float64(battery.CapacityAh)
	}

	var seconds [regHistogramLast - regHistogramFirst + 1]uint64
	var total uint64
	for i := range seconds {
		seconds[i] = uintOf(regHistogramFirst + i)
		total += seconds[i]
	}

	report.UsageStats = UsageStats{
		TotalDischargeAh:       ah,
		TotalDischargeCycles:   cycles,
		TimesDischargedToEmpty: uint16(uintOf(regDischargedEmpty)),
		TimesOverheated:        uint16(uintOf(regOverheat)),
		OvercurrentEvents:      uint16(uintOf(regOvercurrent)),
		LowVoltageEvents:       uint16(uintOf(regLowVoltEvents)),
		LowVoltageBounce:       uint16(uintOf(regLowVoltBounce)),
		TotalTimeOnTool:        registers.FormatDuration(total),
	}

	report.DischargeHistogram = make([]DischargeHistogramEntry, len(seconds))
	for i, s := range seconds {
		var pct uint8
		if total > 0 {
			pct = uint8(math.Round(float64(s) / float64(total) * 100))
		}
		report.DischargeHistogram[i] = DischargeHistogramEntry{
			CurrentRange: currentRange(i),
			Duration:     registers.FormatDuration(s),
			Percentage:   pct,
		}
	}

	return report, nil
}

// currentRange labels histogram band i (0 = 10-20A, 19 = above 200A).
func currentRange(i int) string {
	if i == regHistogramLast-regHistogramFirst {
		return "> 200A"
	}
	return fmt.Sprintf("%d-%dA", (i+1)*10, (i+2)*10)
}

// daysBetween counts whole days from then to now, truncating toward zero.
func daysBetween(then, now time.Time) int64 {
	return int64(now.Sub(then) / (24 * time.Hour))
}

func ptr[T any](v T) *T {
	return &v
}
