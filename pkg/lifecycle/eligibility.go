package lifecycle

import "pharaohvault-be/pkg/metal"

// Minimum accumulated weight, in the metal's trade unit, before a physical withdrawal is allowed.
var withdrawalMinimums = map[metal.Metal]float64{
	metal.Gold:   1,
	metal.Silver: 3.5,
}

// InvestmentBounds is the allowed monthly investment range in whole USD.
type InvestmentBounds struct {
	Min float64
	Max float64
}

func (b InvestmentBounds) Contains(amount float64) bool {
	return amount >= b.Min && amount <= b.Max
}

// Snapshot is the subscription state eligibility is derived from.
type Snapshot struct {
	Status            Status
	Metal             metal.Metal
	TargetUnit        metal.Unit
	TargetWeight      float64
	AccumulatedWeight float64
	OpenCancellation  bool
	OpenWithdrawal    bool
}

type Eligibility struct {
	Cancel   bool
	Modify   bool
	Withdraw bool
}

// CanCancel is true only for subscriptions that are currently billing.
func CanCancel(s Status) bool {
	return s == StatusActive || s == StatusTrialing
}

// CanModify reports whether the monthly investment may be changed.
func CanModify(snap Snapshot) bool {
	return CanCancel(snap.Status) && !snap.OpenCancellation && !snap.OpenWithdrawal
}

// CanWithdraw reports whether a physical delivery may be requested.
func CanWithdraw(snap Snapshot) bool {
	if !CanCancel(snap.Status) || snap.OpenCancellation {
		return false
	}
	if snap.AccumulatedWeight <= 0 {
		return false
	}
	if snap.TargetWeight > 0 && snap.AccumulatedWeight >= snap.TargetWeight {
		return true
	}

	tradeUnit := metal.TradeUnit(snap.Metal)
	accumulated := metal.Convert(snap.AccumulatedWeight, snap.TargetUnit, tradeUnit)
	return accumulated >= withdrawalMinimums[snap.Metal]
}

// WithdrawalMinimum returns the minimum withdrawable weight for m in its trade unit.
func WithdrawalMinimum(m metal.Metal) (float64, metal.Unit) {
	return withdrawalMinimums[m], metal.TradeUnit(m)
}

func Evaluate(snap Snapshot) Eligibility {
	return Eligibility{
		Cancel:   CanCancel(snap.Status) && !snap.OpenCancellation && !snap.OpenWithdrawal,
		Modify:   CanModify(snap),
		Withdraw: CanWithdraw(snap) && !snap.OpenWithdrawal,
	}
}
