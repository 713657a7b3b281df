package metal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectedTarget(t *testing.T) {
	tests := []struct {
		name   string
		metal  Metal
		spot   SpotPrice
		weight float64
		unit   Unit
		want   float64
	}{
		{
			name:   "gold priced per gram",
			metal:  Gold,
			spot:   SpotPrice{PerUnit: 70, Unit: Gram},
			weight: 10,
			unit:   Gram,
			want:   882.00,
		},
		{
			name:   "gold target in ounces is normalised to grams",
			metal:  Gold,
			spot:   SpotPrice{PerUnit: 70, Unit: Gram},
			weight: 1,
			unit:   TroyOunce,
			want:   2743.33,
		},
		{
			name:   "silver priced per ounce",
			metal:  Silver,
			spot:   SpotPrice{PerUnit: 30, Unit: TroyOunce},
			weight: 10,
			unit:   TroyOunce,
			want:   345.00,
		},
		{
			name:   "missing price",
			metal:  Gold,
			spot:   SpotPrice{PerUnit: 0, Unit: Gram},
			weight: 10,
			unit:   Gram,
			want:   0,
		},
		{
			name:   "negative price",
			metal:  Silver,
			spot:   SpotPrice{PerUnit: -4, Unit: TroyOunce},
			weight: 10,
			unit:   TroyOunce,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProjectedTarget(tt.metal, tt.spot, tt.weight, tt.unit), 0.005)
		})
	}
}

func TestProjectedTargetMonotonic(t *testing.T) {
	spots := map[Metal]SpotPrice{
		Gold:   {PerUnit: 2400, Unit: TroyOunce},
		Silver: {PerUnit: 29.5, Unit: TroyOunce},
	}

	for m, spot := range spots {
		prev := 0.0
		for w := 1.0; w <= 200; w += 7 {
			got := ProjectedTarget(m, spot, w, TradeUnit(m))
			if got < prev {
				t.Errorf("%s: target for %v (%v) is below target for a smaller weight (%v)", m, w, got, prev)
			}
			prev = got
		}
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(100, 0))
	assert.Equal(t, 0.0, Progress(100, -5))
	assert.Equal(t, 100.0, Progress(500, 100))
	assert.Equal(t, 0.0, Progress(-10, 100))
	assert.InDelta(t, 25.0, Progress(25, 100), 1e-9)

	got := Progress(math.Inf(1), 100)
	assert.False(t, math.IsNaN(got))
	assert.Equal(t, 100.0, got)
}

func TestProject(t *testing.T) {
	p := Project(Silver, SpotPrice{PerUnit: 1, Unit: Gram}, 311.035, Gram, 31.1035, 17.25)

	assert.Equal(t, TroyOunce, p.TradeUnit)
	assert.InDelta(t, 10, p.TargetWeight, 1e-9)
	assert.InDelta(t, 1, p.AccumulatedWeight, 1e-9)
	assert.InDelta(t, 357.69, p.TargetValueUSD, 0.005)
	assert.InDelta(t, 17.25/357.69*100, p.Progress, 0.01)
}

func TestEstimateValue(t *testing.T) {
	assert.InDelta(t, 700.0, EstimateValue(SpotPrice{PerUnit: 70, Unit: Gram}, 10, Gram), 0.001)
	assert.InDelta(t, 70*31.1035, EstimateValue(SpotPrice{PerUnit: 70, Unit: Gram}, 1, TroyOunce), 0.01)
	assert.Equal(t, 0.0, EstimateValue(SpotPrice{}, 10, Gram))
}
