package enums

import (
	"fmt"
	"strings"
)

// ProductUnit defines how a product is counted for sale.
type ProductUnit string

const (
	ProductUnitPiece ProductUnit = "piece"
	ProductUnitPack  ProductUnit = "pack"
	ProductUnitSet   ProductUnit = "set"
)

var validProductUnits = []ProductUnit{
	ProductUnitPiece,
	ProductUnitPack,
	ProductUnitSet,
}

// unitSynonyms maps the loosely-typed spreadsheet spellings onto canonical units.
var unitSynonyms = map[string]ProductUnit{
	"pc":     ProductUnitPiece,
	"pc.":    ProductUnitPiece,
	"pcs":    ProductUnitPiece,
	"pcs.":   ProductUnitPiece,
	"piece":  ProductUnitPiece,
	"pieces": ProductUnitPiece,
	"pack":   ProductUnitPack,
	"pack.":  ProductUnitPack,
	"pk":     ProductUnitPack,
	"set":    ProductUnitSet,
}

// String implements fmt.Stringer.
func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}

// NormalizeProductUnit maps a free-form cell value onto a canonical unit,
// defaulting to piece for anything it does not recognize.
func NormalizeProductUnit(value string) ProductUnit {
	key := strings.ToLower(strings.TrimSpace(value))
	if unit, ok := unitSynonyms[key]; ok {
		return unit
	}
	return ProductUnitPiece
}
