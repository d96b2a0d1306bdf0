package registers

// BatteryType is the capacity and marketing name behind a battery type code.
type BatteryType struct {
	CapacityAh  int
	Description string
}

// UnknownBattery is returned for type codes missing from the table.
var UnknownBattery = BatteryType{CapacityAh: 0, Description: "Unknown"}

var batteryTypes = map[uint16]BatteryType{
	36:  {1, "1.5Ah CP (5s1p 18650)"},
	37:  {2, "2Ah CP (5s1p 18650)"},
	38:  {3, "3Ah XC (5s2p 18650)"},
	39:  {4, "4Ah XC (5s2p 18650)"},
	40:  {5, "5Ah XC (5s2p 18650) (<= Dec 2018)"},
	165: {5, "5Ah XC (5s2p 18650) (Aug 2019 - Jun 2021)"},
	306: {5, "5Ah XC (5s2p 18650) (Feb 2021 - Jul 2023)"},
	424: {5, "5Ah XC (5s2p 18650) (>= Sep 2023)"},
	46:  {6, "6Ah XC (5s2p 18650)"},
	47:  {9, "9Ah HD (5s3p 18650)"},
	104: {3, "3Ah HO (5s1p 21700)"},
	150: {6, "5.5Ah HO (5s2p 21700) (EU only)"},
	106: {6, "6Ah HO (5s2p 21700)"},
	107: {8, "8Ah HO (5s2p 21700)"},
	108: {12, "12Ah HO (5s3p 21700)"},
	383: {8, "8Ah Forge (5s2p 21700 tabless)"},
	384: {12, "12Ah Forge (5s3p 21700 tabless)"},
}
