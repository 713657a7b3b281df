package metal

import "strings"

// GramsPerTroyOunce is the conversion factor used for every weight and price conversion.
const GramsPerTroyOunce = 31.1035

type Unit string

const (
	Gram        Unit = "g"
	TroyOunce   Unit = "oz"
	UnknownUnit Unit = ""
)

type Metal string

const (
	Gold   Metal = "gold"
	Silver Metal = "silver"
)

// ParseUnit accepts the short codes and the long spellings the clients send.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "gram", "grams":
		return Gram, true
	case "oz", "ounce", "ounces", "troy_ounce", "troy_ounces":
		return TroyOunce, true
	}
	return UnknownUnit, false
}

func ParseMetal(s string) (Metal, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gold", "xau":
		return Gold, true
	case "silver", "xag":
		return Silver, true
	}
	return "", false
}

// Valid reports whether m is one of the traded metals.
func (m Metal) Valid() bool {
	return m == Gold || m == Silver
}

// DisplayName is the capitalised metal name used in plan names.
func (m Metal) DisplayName() string {
	switch m {
	case Gold:
		return "Gold"
	case Silver:
		return "Silver"
	}
	return string(m)
}

// Convert converts a weight between grams and troy ounces.
// Identical or unrecognised unit pairs return the weight unchanged.
func Convert(weight float64, from, to Unit) float64 {
	if from == to {
		return weight
	}
	switch {
	case from == Gram && to == TroyOunce:
		return weight / GramsPerTroyOunce
	case from == TroyOunce && to == Gram:
		return weight * GramsPerTroyOunce
	}
	return weight
}

// ConvertPricePerUnit converts a price quoted per `from` unit into a price per `to` unit.
func ConvertPricePerUnit(price float64, from, to Unit) float64 {
	if from == to {
		return price
	}
	switch {
	case from == Gram && to == TroyOunce:
		return price * GramsPerTroyOunce
	case from == TroyOunce && to == Gram:
		return price / GramsPerTroyOunce
	}
	return price
}
