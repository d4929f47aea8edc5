package filter

import (
	"github.com/opencost/filterkit/pkg/util/formatutil"
	"github.com/opencost/filterkit/pkg/util/mathutil"
)

// RoundFilter rounds its argument to precision fractional digits, half away from zero. A
// precision of zero rounds to the nearest integer.
func RoundFilter(precision int) Filter[float64, float64] {
	return func(that float64) float64 {
		return mathutil.Round(that, precision)
	}
}

// SplitRangeFilter maps its argument to a bucket label as configured by opts (nil uses the
// formatutil defaults). When valueProcessor is not nil, it is applied to the argument
// before bucketing.
func SplitRangeFilter(opts *formatutil.RangeOptions, valueProcessor Filter[float64, float64]) Filter[float64, string] {
	return func(that float64) string {
		if valueProcessor != nil {
			that = valueProcessor(that)
		}
		return formatutil.RangeLabel(that, opts)
	}
}

// RoundSplit rounds to precision and then labels the rounded value.
func RoundSplit(precision int, opts *formatutil.RangeOptions) Filter[float64, string] {
	return SplitRangeFilter(opts, RoundFilter(precision))
}
