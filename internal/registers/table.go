package registers

// Definition describes one register in the pack's memory map.
type Definition struct {
	Address  uint16
	Length   int
	Encoding Encoding
	Label    string
}

// Region is a span of memory read in one command when priming the pack.
type Region struct {
	AddressHigh byte
	AddressLow  byte
	Length      byte
}

// Address returns the region's start address.
func (r Region) Address() uint16 {
	return uint16(r.AddressHigh)<<8 | uint16(r.AddressLow)
}

// definitions is indexed by register ID. IDs are referenced by the health
// report, so entries are only ever appended.
var definitions = []Definition{
	/* 0 */ {0x0000, 2, UnsignedInt, "Cell type"},
	/* 1 */ {0x0002, 2, UnsignedInt, "Unknown (always 0)"},
	/* 2 */ {0x0004, 5, SerialNumberPair, "Capacity & serial number"},
	/* 3 */ {0x0009, 4, UnsignedInt, "Unknown (4th code?)"},
	/* 4 */ {0x000D, 4, Timestamp, "Manufacture date"},
	/* 5 */ {0x0011, 2, UnsignedInt, "Unknown (always 0)"},
	/* 6 */ {0x001F, 4, UnsignedInt, "Unknown (factory code?)"},
	/* 7 */ {0x0023, 20, AsciiText, "Note (ascii string)"},
	/* 8 */ {0x4000, 4, Timestamp, "System date"},
	/* 9 */ {0x4004, 1, UnsignedInt, "Unknown (always 0)"},
	/* 10 */ {0x4005, 2, UnsignedInt, "Unknown"},
	/* 11 */ {0x4007, 1, UnsignedInt, "Unknown"},
	/* 12 */ {0x6000, 10, CellVoltageArray, "Cell voltages (mV)"},
	/* 13 */ {0x600A, 2, AdcTemperature, "Temperature (C) (non-Forge)"},
	/* 14 */ {0x600C, 2, UnsignedInt, "Unknown (ADC)"},
	/* 15 */ {0x600E, 2, UnsignedInt, "Unknown (ADC)"},
	/* 16 */ {0x6010, 1, UnsignedInt, "Unknown (flags)"},
	/* 17 */ {0x6011, 1, UnsignedInt, "Unknown (flags)"},
	/* 18 */ {0x6012, 2, DecimalTemperature, "Temperature (C) (Forge)"},
	/* 19 */ {0x6014, 2, UnsignedInt, "Unknown"},
	/* 20 */ {0x6016, 2, UnsignedInt, "Unknown"},
	/* 21 */ {0x9000, 4, Timestamp, "Date of first charge"},
	/* 22 */ {0x9004, 4, Timestamp, "Unknown date"},
	/* 23 */ {0x9008, 4, Timestamp, "Unknown date"},
	/* 24 */ {0x900C, 4, Timestamp, "Unknown date"},
	/* 25 */ {0x9010, 4, Timestamp, "Date of last tool use"},
	/* 26 */ {0x9014, 4, Timestamp, "Date of last charge"},
	/* 27 */ {0x9018, 4, Timestamp, "Unknown date"},
	/* 28 */ {0x901C, 2, UnsignedInt, "Days since first charge"},
	/* 29 */ {0x901E, 4, UnsignedInt, "Total discharge (amp-sec)"},
	/* 30 */ {0x9022, 4, UnsignedInt, "Total discharge (watt-sec?)"},
	/* 31 */ {0x9026, 2, UnsignedInt, "Total charge count"},
	/* 32 */ {0x9028, 2, UnsignedInt, "Dumb charge count (voltage only)"},
	/* 33 */ {0x902A, 2, UnsignedInt, "Redlink charge count (UART)"},
	/* 34 */ {0x902C, 2, UnsignedInt, "Completed charge count (?)"},
	/* 35 */ {0x902E, 4, DurationSeconds, "Total charging time"},
	/* 36 */ {0x9032, 4, DurationSeconds, "Time idling on charger"},
	/* 37 */ {0x9036, 2, UnsignedInt, "Unknown"},
	/* 38 */ {0x9038, 2, UnsignedInt, "Low-voltage charges (any cell <2.5V)"},
	/* 39 */ {0x903A, 2, UnsignedInt, "Discharged to empty (count)"},
	/* 40 */ {0x903C, 2, UnsignedInt, "Overheat events"},
	/* 41 */ {0x903E, 2, UnsignedInt, "Overcurrent events"},
	/* 42 */ {0x9040, 2, UnsignedInt, "Low-voltage events"},
	/* 43 */ {0x9042, 2, UnsignedInt, "Low-voltage bounce (4 flashing LEDs)"},
	/* 44 */ {0x9044, 4, UnsignedInt, "Discharge @ 10-20A (seconds)"},
	/* 45 */ {0x9048, 4, UnsignedInt, "Discharge @ 20-30A (seconds)"},
	/* 46 */ {0x904C, 4, UnsignedInt, "Discharge @ 30-40A (seconds)"},
	/* 47 */ {0x9050, 4, UnsignedInt, "Discharge @ 40-50A (seconds)"},
	/* 48 */ {0x9054, 4, UnsignedInt, "Discharge @ 50-60A (seconds)"},
	/* 49 */ {0x9058, 4, UnsignedInt, "Discharge @ 60-70A (seconds)"},
	/* 50 */ {0x905C, 4, UnsignedInt, "Discharge @ 70-80A (seconds)"},
	/* 51 */ {0x9060, 4, UnsignedInt, "Discharge @ 80-90A (seconds)"},
	/* 52 */ {0x9064, 4, UnsignedInt, "Discharge @ 90-100A (seconds)"},
	/* 53 */ {0x9068, 4, UnsignedInt, "Discharge @ 100-110A (seconds)"},
	/* 54 */ {0x906C, 4, UnsignedInt, "Discharge @ 110-120A (seconds)"},
	/* 55 */ {0x9070, 4, UnsignedInt, "Discharge @ 120-130A (seconds)"},
	/* 56 */ {0x9074, 4, UnsignedInt, "Discharge @ 130-140A (seconds)"},
	/* 57 */ {0x9078, 4, UnsignedInt, "Discharge @ 140-150A (seconds)"},
	/* 58 */ {0x907C, 4, UnsignedInt, "Discharge @ 150-160A (seconds)"},
	/* 59 */ {0x9080, 4, UnsignedInt, "Discharge @ 160-170A (seconds)"},
	/* 60 */ {0x9084, 4, UnsignedInt, "Discharge @ 170-180A (seconds)"},
	/* 61 */ {0x9088, 4, UnsignedInt, "Discharge @ 180-190A (seconds)"},
	/* 62 */ {0x908C, 4, UnsignedInt, "Discharge @ 190-200A (seconds)"},
	/* 63 */ {0x9090, 4, UnsignedInt, "Discharge @ > 200A (seconds)"},
	/* 64 */ {0x9094, 4, UnsignedInt, "Time on tool @ < 0C (seconds)"},
	/* 65 */ {0x9098, 4, UnsignedInt, "Time on tool @ 0-10C (seconds)"},
	/* 66 */ {0x909C, 4, UnsignedInt, "Time on tool @ 10-20C (seconds)"},
	/* 67 */ {0x90A0, 4, UnsignedInt, "Time on tool @ 20-30C (seconds)"},
	/* 68 */ {0x90A4, 4, UnsignedInt, "Time on tool @ 30-40C (seconds)"},
	/* 69 */ {0x90A8, 4, UnsignedInt, "Time on tool @ 40-50C (seconds)"},
	/* 70 */ {0x90AC, 4, UnsignedInt, "Time on tool @ 50-60C (seconds)"},
	/* 71 */ {0x90B0, 4, UnsignedInt, "Time on tool @ > 60C (seconds)"},
	/* 72 */ {0x90B4, 4, UnsignedInt, "Time charging @ < 0C (seconds)"},
	/* 73 */ {0x90B8, 4, UnsignedInt, "Time charging @ 0-10C (seconds)"},
	/* 74 */ {0x90BC, 4, UnsignedInt, "Time charging @ 10-20C (seconds)"},
	/* 75 */ {0x90C0, 4, UnsignedInt, "Time charging @ 20-30C (seconds)"},
	/* 76 */ {0x90C4, 4, UnsignedInt, "Time charging @ 30-40C (seconds)"},
	/* 77 */ {0x90C8, 4, UnsignedInt, "Time charging @ 40-50C (seconds)"},
	/* 78 */ {0x90CC, 4, UnsignedInt, "Time charging @ 50-60C (seconds)"},
	/* 79 */ {0x90D0, 4, UnsignedInt, "Time charging @ > 60C (seconds)"},
	/* 80 */ {0x90D4, 4, UnsignedInt, "Time idle @ < 0C (seconds)"},
	/* 81 */ {0x90D8, 4, UnsignedInt, "Time idle @ 0-10C (seconds)"},
	/* 82 */ {0x90DC, 4, UnsignedInt, "Time idle @ 10-20C (seconds)"},
	/* 83 */ {0x90E0, 4, UnsignedInt, "Time idle @ 20-30C (seconds)"},
	/* 84 */ {0x90E4, 4, UnsignedInt, "Time idle @ 30-40C (seconds)"},
	/* 85 */ {0x90E8, 4, UnsignedInt, "Time idle @ 40-50C (seconds)"},
	/* 86 */ {0x90EC, 4, UnsignedInt, "Time idle @ 50-60C (seconds)"},
	/* 87 */ {0x90F0, 4, UnsignedInt, "Time idle @ > 60C (seconds)"},
	/* 88 */ {0x90F4, 2, UnsignedInt, "Cell 1 lowest voltage (mV)"},
	/* 89 */ {0x90F6, 2, UnsignedInt, "Cell 1 highest voltage (mV)"},
	/* 90 */ {0x90F8, 2, UnsignedInt, "Cell 2 lowest voltage (mV)"},
	/* 91 */ {0x90FA, 2, UnsignedInt, "Cell 2 highest voltage (mV)"},
	/* 92 */ {0x90FC, 2, UnsignedInt, "Cell 3 lowest voltage (mV)"},
	/* 93 */ {0x90FE, 2, UnsignedInt, "Cell 3 highest voltage (mV)"},
	/* 94 */ {0x9100, 2, UnsignedInt, "Cell 4 lowest voltage (mV)"},
	/* 95 */ {0x9102, 2, UnsignedInt, "Cell 4 highest voltage (mV)"},
	/* 96 */ {0x9104, 2, UnsignedInt, "Cell 5 lowest voltage (mV)"},
	/* 97 */ {0x9106, 2, UnsignedInt, "Cell 5 highest voltage (mV)"},
	/* 98 */ {0x9108, 2, DecimalTemperature, "Highest temperature on tool (C)"},
	/* 99 */ {0x910A, 2, DecimalTemperature, "Highest temperature charging (C)"},
	/* 100 */ {0x910C, 2, DecimalTemperature, "Lowest temperature (C)"},
	/* 101 */ {0x910E, 4, Timestamp, "Date of last overheat"},
	/* 102 */ {0x9112, 4, Timestamp, "Date of last overcurrent"},
	/* 103 */ {0x9116, 4, Timestamp, "Date of last low-voltage event"},
	/* 104 */ {0x911A, 4, DurationSeconds, "Total time on tool"},
	/* 105 */ {0x911E, 4, DurationSeconds, "Total time idle"},
	/* 106 */ {0xA000, 4, UnsignedInt, "Charge @ 0.0-0.5A (seconds)"},
	/* 107 */ {0xA004, 4, UnsignedInt, "Charge @ 0.5-1.0A (seconds)"},
	/* 108 */ {0xA008, 4, UnsignedInt, "Charge @ 1.0-1.5A (seconds)"},
	/* 109 */ {0xA00C, 4, UnsignedInt, "Charge @ 1.5-2.0A (seconds)"},
	/* 110 */ {0xA010, 4, UnsignedInt, "Charge @ 2.0-2.5A (seconds)"},
	/* 111 */ {0xA014, 4, UnsignedInt, "Charge @ 2.5-3.0A (seconds)"},
	/* 112 */ {0xA018, 4, UnsignedInt, "Charge @ 3.0-3.5A (seconds)"},
	/* 113 */ {0xA01C, 4, UnsignedInt, "Charge @ 3.5-4.0A (seconds)"},
	/* 114 */ {0xA020, 4, UnsignedInt, "Charge @ 4.0-4.5A (seconds)"},
	/* 115 */ {0xA024, 4, UnsignedInt, "Charge @ 4.5-5.0A (seconds)"},
	/* 116 */ {0xA028, 4, UnsignedInt, "Charge @ 5.0-5.5A (seconds)"},
	/* 117 */ {0xA02C, 4, UnsignedInt, "Charge @ 5.5-6.0A (seconds)"},
	/* 118 */ {0xA100, 2, UnsignedInt, "Unknown"},
	/* 119 */ {0xA102, 2, UnsignedInt, "Unknown"},
	/* 120 */ {0xA104, 4, UnsignedInt, "Unknown"},
	/* 121 */ {0xA108, 2, UnsignedInt, "Unknown"},
	/* 122 */ {0xA10A, 2, UnsignedInt, "Unknown"},
	/* 123 */ {0xA10C, 4, UnsignedInt, "Unknown"},
	/* 124 */ {0xA110, 2, UnsignedInt, "Unknown"},
	/* 125 */ {0xA112, 2, UnsignedInt, "Unknown"},
	/* 126 */ {0xA114, 4, UnsignedInt, "Unknown"},
	/* 127 */ {0xA118, 2, UnsignedInt, "Unknown"},
	/* 128 */ {0xA11A, 2, UnsignedInt, "Unknown"},
	/* 129 */ {0xA11C, 4, UnsignedInt, "Unknown"},
	/* 130 */ {0xA120, 2, UnsignedInt, "Unknown"},
	/* 131 */ {0xA122, 2, UnsignedInt, "Unknown"},
	/* 132 */ {0xA124, 4, UnsignedInt, "Unknown"},
	/* 133 */ {0xA128, 2, UnsignedInt, "Unknown"},
	/* 134 */ {0xA12A, 2, UnsignedInt, "Unknown"},
	/* 135 */ {0xA12C, 4, UnsignedInt, "Unknown"},
	/* 136 */ {0xA130, 2, UnsignedInt, "Unknown"},
	/* 137 */ {0xA132, 2, UnsignedInt, "Unknown"},
	/* 138 */ {0xA134, 4, UnsignedInt, "Unknown"},
	/* 139 */ {0xA138, 2, UnsignedInt, "Unknown"},
	/* 140 */ {0xA13A, 2, UnsignedInt, "Unknown"},
	/* 141 */ {0xA13C, 4, UnsignedInt, "Unknown"},
	/* 142 */ {0xA140, 2, UnsignedInt, "Unknown"},
	/* 143 */ {0xA142, 2, UnsignedInt, "Unknown"},
	/* 144 */ {0xA144, 4, UnsignedInt, "Unknown"},
	/* 145 */ {0xA148, 2, UnsignedInt, "Unknown"},
	/* 146 */ {0xA14A, 2, UnsignedInt, "Unknown"},
	/* 147 */ {0xA14C, 4, UnsignedInt, "Unknown"},
	/* 148 */ {0xA150, 2, UnsignedInt, "Unknown"},
	/* 149 */ {0xA152, 2, UnsignedInt, "Unknown"},
	/* 150 */ {0xA154, 4, UnsignedInt, "Unknown"},
	/* 151 */ {0xA158, 2, UnsignedInt, "Unknown"},
	/* 152 */ {0xA15A, 2, UnsignedInt, "Unknown"},
	/* 153 */ {0xA15C, 4, UnsignedInt, "Unknown"},
	/* 154 */ {0xA160, 2, UnsignedInt, "Unknown"},
	/* 155 */ {0xA162, 2, UnsignedInt, "Unknown"},
	/* 156 */ {0xA164, 4, UnsignedInt, "Unknown"},
	/* 157 */ {0xA168, 2, UnsignedInt, "Unknown"},
	/* 158 */ {0xA16A, 2, UnsignedInt, "Unknown"},
	/* 159 */ {0xA16C, 4, UnsignedInt, "Unknown"},
	/* 160 */ {0xA170, 2, UnsignedInt, "Unknown"},
	/* 161 */ {0xA172, 2, UnsignedInt, "Unknown"},
	/* 162 */ {0xA174, 4, UnsignedInt, "Unknown"},
	/* 163 */ {0xA178, 2, UnsignedInt, "Unknown"},
	/* 164 */ {0xA17A, 2, UnsignedInt, "Unknown"},
	/* 165 */ {0xA17C, 4, UnsignedInt, "Unknown"},
	/* 166 */ {0xA180, 2, UnsignedInt, "Unknown"},
	/* 167 */ {0xA182, 2, UnsignedInt, "Unknown"},
	/* 168 */ {0xA184, 4, UnsignedInt, "Unknown"},
	/* 169 */ {0xA188, 2, UnsignedInt, "Unknown"},
	/* 170 */ {0xA18A, 2, UnsignedInt, "Unknown"},
	/* 171 */ {0xA18C, 4, UnsignedInt, "Unknown"},
	/* 172 */ {0xA190, 2, UnsignedInt, "Unknown"},
	/* 173 */ {0xA192, 2, UnsignedInt, "Unknown"},
	/* 174 */ {0xA194, 4, UnsignedInt, "Unknown"},
	/* 175 */ {0xA198, 2, UnsignedInt, "Unknown"},
	/* 176 */ {0xA19A, 2, UnsignedInt, "Unknown"},
	/* 177 */ {0xA19C, 4, UnsignedInt, "Unknown"},
	/* 178 */ {0xA1A0, 2, UnsignedInt, "Unknown"},
	/* 179 */ {0xA1A2, 2, UnsignedInt, "Unknown"},
	/* 180 */ {0xA1A4, 4, UnsignedInt, "Unknown"},
	/* 181 */ {0xA1A8, 2, UnsignedInt, "Unknown"},
	/* 182 */ {0xA1AA, 2, UnsignedInt, "Unknown"},
	/* 183 */ {0xA1AC, 4, UnsignedInt, "Unknown"},
}

// regions cover every register above. Reads are capped at 0x3C bytes.
var regions = []Region{
	{0x00, 0x00, 0x13},
	{0x00, 0x1F, 0x18},
	{0x40, 0x00, 0x08},
	{0x60, 0x00, 0x18},
	{0x90, 0x00, 0x3C},
	{0x90, 0x3C, 0x3C},
	{0x90, 0x78, 0x3C},
	{0x90, 0xB4, 0x3C},
	{0x90, 0xF0, 0x32},
	{0xA0, 0x00, 0x30},
	{0xA1, 0x00, 0x3C},
	{0xA1, 0x3C, 0x3C},
	{0xA1, 0x78, 0x38},
}
