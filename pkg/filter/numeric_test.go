package filter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencost/filterkit/pkg/filter"
	"github.com/opencost/filterkit/pkg/util/formatutil"
)

func Test_RoundFilter(t *testing.T) {
	require.Equal(t, 3.0, filter.RoundFilter(0)(2.5))
	require.Equal(t, -3.0, filter.RoundFilter(0)(-2.5))
	require.InDelta(t, 3.14, filter.RoundFilter(2)(3.14159), 1e-9)
	require.InDelta(t, 1200.0, filter.RoundFilter(-2)(1234.5), 1e-9)
}

func Test_RoundFilter_Idempotent(t *testing.T) {
	for _, precision := range []int{2, 0, -1, 400} {
		round := filter.RoundFilter(precision)

		for _, x := range []float64{0, 0.005, 1.005, 2.675, -19.999, 1e6 / 3, 42} {
			once := round(x)
			require.False(t, math.IsNaN(once), "round(%g) at precision %d", x, precision)
			require.Equal(t, once, round(once), "round(round(%g)) at precision %d", x, precision)
		}
	}
}

func Test_SplitRangeFilter(t *testing.T) {
	split := filter.SplitRangeFilter(nil, nil)
	require.Equal(t, "40-50", split(42))

	doubled := filter.SplitRangeFilter(&formatutil.RangeOptions{Step: 100}, func(f float64) float64 { return f * 2 })
	require.Equal(t, "100-200", doubled(60))
}

func Test_RoundSplit(t *testing.T) {
	opts := &formatutil.RangeOptions{Step: 10}

	// 19.6 rounds to 20 before bucketing
	require.Equal(t, "20-30", filter.RoundSplit(0, opts)(19.6))
	require.Equal(t, "10-20", filter.RoundSplit(0, opts)(19.4))

	// equivalent to composing the two filters by hand
	manual := filter.SplitRangeFilter(opts, filter.RoundFilter(1))
	for _, x := range []float64{-4.44, 0, 9.96, 55.55} {
		require.Equal(t, manual(x), filter.RoundSplit(1, opts)(x))
	}
}
