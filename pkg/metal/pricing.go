package metal

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	gramPremium  = 1.26
	ouncePremium = 1.15
)

// SpotPrice is a market price quoted per Unit, in USD.
type SpotPrice struct {
	PerUnit float64
	Unit    Unit
}

// Projection is the derived view of a subscription's goal.
type Projection struct {
	TradeUnit         Unit
	TargetWeight      float64
	AccumulatedWeight float64
	TargetValueUSD    float64
	Progress          float64
}

// TradeUnit returns the unit a metal is accumulated and priced in.
func TradeUnit(m Metal) Unit {
	if m == Silver {
		return TroyOunce
	}
	return Gram
}

// Premium is the multiplier applied on top of spot for the given trade unit.
func Premium(u Unit) float64 {
	if u == TroyOunce {
		return ouncePremium
	}
	return gramPremium
}

// ProjectedTarget returns the USD value needed to reach targetWeight, rounded to cents.
// A missing spot price yields 0 rather than an error.
func ProjectedTarget(m Metal, spot SpotPrice, targetWeight float64, targetUnit Unit) float64 {
	if spot.PerUnit <= 0 || targetWeight <= 0 {
		return 0
	}

	tradeUnit := TradeUnit(m)
	weight := Convert(targetWeight, targetUnit, tradeUnit)
	priceUnit := spot.Unit
	if priceUnit == UnknownUnit {
		priceUnit = TroyOunce
	}
	price := ConvertPricePerUnit(spot.PerUnit, priceUnit, tradeUnit)

	value := decimal.NewFromFloat(weight).
		Mul(decimal.NewFromFloat(price)).
		Mul(decimal.NewFromFloat(Premium(tradeUnit))).
		Round(2)

	f, _ := value.Float64()
	return f
}

// Progress is accumulated/target as a percentage clamped to [0, 100].
func Progress(accumulatedValue, targetValueUSD float64) float64 {
	if targetValueUSD <= 0 || math.IsNaN(accumulatedValue) || math.IsNaN(targetValueUSD) {
		return 0
	}
	p := accumulatedValue / targetValueUSD * 100
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Project computes the goal view for a subscription.
// Accumulated weight is stored in the subscription's target unit.
func Project(m Metal, spot SpotPrice, targetWeight float64, targetUnit Unit, accumulatedWeight, accumulatedValue float64) Projection {
	tradeUnit := TradeUnit(m)
	target := ProjectedTarget(m, spot, targetWeight, targetUnit)
	return Projection{
		TradeUnit:         tradeUnit,
		TargetWeight:      Convert(targetWeight, targetUnit, tradeUnit),
		AccumulatedWeight: Convert(accumulatedWeight, targetUnit, tradeUnit),
		TargetValueUSD:    target,
		Progress:          Progress(accumulatedValue, target),
	}
}

// EstimateValue prices a weight at spot without premium, rounded to cents.
func EstimateValue(spot SpotPrice, weight float64, unit Unit) float64 {
	if spot.PerUnit <= 0 || weight <= 0 {
		return 0
	}
	priceUnit := spot.Unit
	if priceUnit == UnknownUnit {
		priceUnit = TroyOunce
	}
	price := ConvertPricePerUnit(spot.PerUnit, priceUnit, unit)
	f, _ := decimal.NewFromFloat(weight).Mul(decimal.NewFromFloat(price)).Round(2).Float64()
	return f
}
