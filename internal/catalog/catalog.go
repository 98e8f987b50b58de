// Package catalog carries the static reference lists the intake forms use
// to constrain part subtypes. The lists are advisory: the storage layer
// accepts any subtype string.
package catalog

import "repair-workshop-backend/internal/model"

var subtypes = map[model.PartType][]string{
	model.PartCapacitor:  {"electrolytic", "ceramic", "film", "tantalum", "polymer"},
	model.PartResistor:   {"fixed", "potentiometer", "thermistor", "varistor"},
	model.PartDiode:      {"rectifier", "schottky", "zener", "bridge"},
	model.PartTransistor: {"bipolar", "mosfet", "igbt", "darlington"},
	model.PartLED:        {"indicator", "smd", "high_power", "strip"},
	model.PartChip:       {"controller", "memory", "power_management", "driver", "amplifier"},
	model.PartConnector:  {"board_to_board", "wire_to_board", "usb", "power", "terminal"},
	model.PartSwitch:     {"tactile", "toggle", "slide", "micro"},
	model.PartFuse:       {"glass", "ceramic", "thermal", "resettable"},
	model.PartModule:     {"power_supply", "display", "sensor", "radio"},
	model.PartOther:      nil,
}

// Subtypes returns the suggested subtype list for a part type. Unknown
// types yield an empty list.
func Subtypes(t model.PartType) []string {
	return subtypes[t]
}

// All returns the full type-to-subtypes reference table.
func All() map[model.PartType][]string {
	out := make(map[model.PartType][]string, len(subtypes))
	for t, list := range subtypes {
		out[t] = append([]string(nil), list...)
	}
	return out
}
