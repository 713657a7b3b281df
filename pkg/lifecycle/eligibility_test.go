package lifecycle

import (
	"testing"

	"pharaohvault-be/pkg/metal"

	"github.com/stretchr/testify/assert"
)

func TestCanCancel(t *testing.T) {
	for _, s := range Statuses {
		want := s == StatusActive || s == StatusTrialing
		if got := CanCancel(s); got != want {
			t.Errorf("CanCancel(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestCanWithdraw(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{
			name: "gold below minimum and target",
			snap: Snapshot{Status: StatusActive, Metal: metal.Gold, TargetUnit: metal.Gram, TargetWeight: 2, AccumulatedWeight: 0.5},
			want: false,
		},
		{
			name: "gold above minimum",
			snap: Snapshot{Status: StatusActive, Metal: metal.Gold, TargetUnit: metal.Gram, TargetWeight: 2, AccumulatedWeight: 1.2},
			want: true,
		},
		{
			name: "small target reached below minimum",
			snap: Snapshot{Status: StatusTrialing, Metal: metal.Gold, TargetUnit: metal.Gram, TargetWeight: 0.5, AccumulatedWeight: 0.5},
			want: true,
		},
		{
			name: "silver stored in grams is compared in ounces",
			snap: Snapshot{Status: StatusActive, Metal: metal.Silver, TargetUnit: metal.Gram, TargetWeight: 1000, AccumulatedWeight: 100},
			want: false,
		},
		{
			name: "silver above minimum",
			snap: Snapshot{Status: StatusActive, Metal: metal.Silver, TargetUnit: metal.TroyOunce, TargetWeight: 50, AccumulatedWeight: 3.5},
			want: true,
		},
		{
			name: "open cancellation blocks",
			snap: Snapshot{Status: StatusActive, Metal: metal.Gold, TargetUnit: metal.Gram, TargetWeight: 2, AccumulatedWeight: 5, OpenCancellation: true},
			want: false,
		},
		{
			name: "canceling subscription",
			snap: Snapshot{Status: StatusCanceling, Metal: metal.Gold, TargetUnit: metal.Gram, TargetWeight: 2, AccumulatedWeight: 5},
			want: false,
		},
		{
			name: "nothing accumulated",
			snap: Snapshot{Status: StatusActive, Metal: metal.Gold, TargetUnit: metal.Gram, TargetWeight: 0, AccumulatedWeight: 0},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanWithdraw(tt.snap))
		})
	}
}

func TestEvaluate(t *testing.T) {
	base := Snapshot{Status: StatusActive, Metal: metal.Gold, TargetUnit: metal.Gram, TargetWeight: 10, AccumulatedWeight: 2}

	e := Evaluate(base)
	assert.Equal(t, Eligibility{Cancel: true, Modify: true, Withdraw: true}, e)

	withWithdrawal := base
	withWithdrawal.OpenWithdrawal = true
	e = Evaluate(withWithdrawal)
	assert.Equal(t, Eligibility{Cancel: false, Modify: false, Withdraw: false}, e)

	withCancellation := base
	withCancellation.OpenCancellation = true
	e = Evaluate(withCancellation)
	assert.Equal(t, Eligibility{Cancel: false, Modify: false, Withdraw: false}, e)

	pending := base
	pending.Status = StatusPendingPayment
	assert.Equal(t, Eligibility{}, Evaluate(pending))
}

func TestInvestmentBounds(t *testing.T) {
	b := InvestmentBounds{Min: 10, Max: 1000}
	assert.True(t, b.Contains(10))
	assert.True(t, b.Contains(1000))
	assert.False(t, b.Contains(9.99))
	assert.False(t, b.Contains(1001))
}
