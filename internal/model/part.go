package model

import "fmt"

// PartType is the component category of an inventory line.
type PartType string

const (
	PartCapacitor  PartType = "capacitor"
	PartResistor   PartType = "resistor"
	PartDiode      PartType = "diode"
	PartTransistor PartType = "transistor"
	PartLED        PartType = "led"
	PartChip       PartType = "chip"
	PartConnector  PartType = "connector"
	PartSwitch     PartType = "switch"
	PartFuse       PartType = "fuse"
	PartModule     PartType = "module"
	PartOther      PartType = "other"
)

// PartTypes lists every recognized component category in display order.
var PartTypes = []PartType{
	PartCapacitor, PartResistor, PartDiode, PartTransistor, PartLED,
	PartChip, PartConnector, PartSwitch, PartFuse, PartModule, PartOther,
}

// Valid reports whether t is one of the recognized categories.
func (t PartType) Valid() bool {
	for _, known := range PartTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SparePart represents one inventory line: a kind of component, not a
// serialized unit. Subtype is constrained to the catalog lists in the UI
// only; the stores accept any value.
type SparePart struct {
	ID       string   `gorm:"primaryKey;size:36" json:"id"`
	Name     string   `gorm:"size:256;not null" json:"name"`
	Type     PartType `gorm:"size:32;not null" json:"type"`
	Subtype  string   `gorm:"size:128" json:"subtype"`
	Quantity int      `gorm:"not null" json:"quantity"`
	InStock  bool     `json:"inStock"`
}

// Validate checks the fields a part must carry before it may be persisted.
func (p *SparePart) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: part name is required", ErrInvalid)
	}
	if p.Type != "" && !p.Type.Valid() {
		return fmt.Errorf("%w: unknown part type %q", ErrInvalid, p.Type)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalid)
	}
	return nil
}
