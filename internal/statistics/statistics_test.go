package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Error(t, stats.Validate())
}

func TestStatisticsSingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.5, Seed: 12345, Position: 3, Showdown: true, PotBB: 10})

	assert.Equal(t, 1, stats.Hands)
	assert.Equal(t, 2.5, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 2.5, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Zero(t, stats.NonShowdownWins)
	assert.True(t, stats.IsLedgerBalanced())
	assert.NoError(t, stats.Validate())
}

func TestStatisticsMultipleValues(t *testing.T) {
	stats := &Statistics{}
	for _, r := range []HandResult{
		{NetBB: 1.0, Position: 1, Showdown: false},
		{NetBB: -2.0, Position: 2, Showdown: true},
		{NetBB: 3.0, Position: 3, Showdown: true},
		{NetBB: 0.0, Position: 1, Showdown: false},
		{NetBB: -1.0, Position: 2, Showdown: false},
	} {
		stats.Add(r)
	}

	assert.InDelta(t, 0.2, stats.Mean(), 1e-9)
	assert.Equal(t, 5, stats.Hands)
	assert.Equal(t, 0.0, stats.Median(), "sorted values: -2, -1, 0, 1, 3")
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 1, stats.NonShowdownWins)
	assert.Equal(t, 2, stats.PositionResults[1].Hands)
	assert.Equal(t, 2, stats.PositionResults[2].Hands)
	assert.Equal(t, 1, stats.PositionResults[3].Hands)
	assert.True(t, stats.IsLedgerBalanced())
}

func TestStatisticsPercentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{0.875, 4.5},
		{1.0, 5.0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.expected, stats.Percentile(tc.percentile), 1e-9, "percentile %.3f", tc.percentile)
	}

	stats.Add(HandResult{NetBB: 6})
	assert.InDelta(t, 3.5, stats.Median(), 1e-9)
}

func TestStatisticsConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9)
	assert.Greater(t, high-low, 0.0)
}

func TestStatisticsPositionAnalysis(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.0, Position: 1})
	stats.Add(HandResult{NetBB: 3.0, Position: 1})
	stats.Add(HandResult{NetBB: -1.0, Position: 2})
	stats.Add(HandResult{NetBB: 1.0, Position: 2})

	assert.InDelta(t, 2.5, stats.PositionMean(1), 1e-9)
	assert.InDelta(t, 0.0, stats.PositionMean(2), 1e-9)
	assert.Zero(t, stats.PositionMean(0), "no hands on the button")
	assert.Zero(t, stats.PositionMean(-1))
	assert.Zero(t, stats.PositionMean(MaxPositions))
}

func TestStatisticsPotSizeTracking(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.0, PotBB: 10})
	stats.Add(HandResult{NetBB: 5.0, PotBB: 100})
	stats.Add(HandResult{NetBB: -1.0, PotBB: 2})

	assert.InDelta(t, 100.0, stats.MaxPotBB, 1e-9)
	assert.Equal(t, 1, stats.BigPots)
	assert.InDelta(t, 5.0, stats.BigPotsBB, 1e-9)
}

func TestStatisticsVariance(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 3, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	assert.InDelta(t, 4.0, stats.Variance(), 1e-9)
	assert.InDelta(t, 2.0, stats.StdDev(), 1e-9)
}

func TestStatisticsMerge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HandResult{
		{NetBB: 1.5, Position: 0, Showdown: true, PotBB: 60},
		{NetBB: -0.5, Position: 1},
		{NetBB: 2.0, Position: 2, PotBB: 4},
		{NetBB: -1.0, Position: 0, Showdown: true, PotBB: 8},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	require.NoError(t, a.Validate())
	assert.Equal(t, all.Hands, a.Hands)
	assert.InDelta(t, all.Mean(), a.Mean(), 1e-9)
	assert.InDelta(t, all.Variance(), a.Variance(), 1e-9)
	assert.Equal(t, all.ShowdownWins, a.ShowdownWins)
	assert.Equal(t, all.NonShowdownWins, a.NonShowdownWins)
	assert.Equal(t, all.PositionResults, a.PositionResults)
	assert.Equal(t, all.MaxPotBB, a.MaxPotBB)
	assert.Equal(t, all.BigPots, a.BigPots)
}

func TestStatisticsValidate(t *testing.T) {
	tests := []struct {
		name      string
		stats     Statistics
		positions int // hands recorded for position 1
		wantErr   string
	}{
		{
			name: "ledger mismatch",
			stats: Statistics{
				Hands: 1, SumBB: 1, Values: []float64{1},
				AllBB: 1, ShowdownBB: 0.5, NonShowdownBB: 0.6,
			},
			positions: 1,
			wantErr:   "ledger mismatch",
		},
		{
			name:    "invalid hands count",
			stats:   Statistics{},
			wantErr: "invalid hands count",
		},
		{
			name: "values mismatch",
			stats: Statistics{
				Hands: 2, Values: []float64{1},
				AllBB: 1, NonShowdownBB: 1,
			},
			wantErr: "values array length",
		},
		{
			name: "too many wins",
			stats: Statistics{
				Hands: 2, Values: []float64{1, 1},
				AllBB: 2, ShowdownBB: 1, NonShowdownBB: 1,
				ShowdownWins: 2, NonShowdownWins: 2,
			},
			positions: 2,
			wantErr:   "exceeds total hands",
		},
		{
			name: "position mismatch",
			stats: Statistics{
				Hands: 2, Values: []float64{1, 1},
				AllBB: 2, ShowdownBB: 1, NonShowdownBB: 1,
			},
			wantErr: "position hands total",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.stats.PositionResults[1].Hands = tc.positions
			err := tc.stats.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
