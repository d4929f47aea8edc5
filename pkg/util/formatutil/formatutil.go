package formatutil

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/opencost/filterkit/pkg/util/mathutil"
)

const (
	// DefaultRangeStep is the bucket width used when RangeOptions does not provide one
	DefaultRangeStep = 10.0

	// DefaultRangeSeparator joins the lower and upper bounds of a bucket label
	DefaultRangeSeparator = "-"
)

// RangeOptions configures how a number is mapped to a bucket label by RangeLabel.
type RangeOptions struct {
	// Step is the width of each bucket. Non-positive values use DefaultRangeStep.
	Step float64 `json:"step" yaml:"step"`

	// Min is both the origin of the buckets and the lower cut-off. Values below Min are
	// collapsed into a single "<Min" label. When nil, buckets are aligned to zero.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`

	// Max is the upper cut-off: values greater than or equal to Max are collapsed into a
	// single "Max+" label.
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Separator joins the lower and upper bounds. Empty uses DefaultRangeSeparator.
	Separator string `json:"separator" yaml:"separator"`

	// Precision is the number of fractional digits rendered for each bound.
	Precision int `json:"precision" yaml:"precision"`

	// Grouping renders bounds with thousands separators, e.g. 1,000-2,000.
	Grouping bool `json:"grouping" yaml:"grouping"`
}

// PadZero renders n left padded with zeros to width digits.
func PadZero(n int, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// RangeLabel maps x to the label of the bucket containing it. A nil opts uses buckets of
// DefaultRangeStep aligned to zero, so RangeLabel(42, nil) is "40-50". NaN has no bucket
// and is labelled "NaN".
func RangeLabel(x float64, opts *RangeOptions) string {
	if opts == nil {
		opts = &RangeOptions{}
	}

	if math.IsNaN(x) {
		return "NaN"
	}

	step := opts.Step
	if step <= 0 {
		step = DefaultRangeStep
	}

	sep := opts.Separator
	if sep == "" {
		sep = DefaultRangeSeparator
	}

	if opts.Min != nil && x < *opts.Min {
		return "<" + formatBound(*opts.Min, opts)
	}
	if opts.Max != nil && x >= *opts.Max {
		return formatBound(*opts.Max, opts) + "+"
	}

	origin := 0.0
	if opts.Min != nil {
		origin = *opts.Min
	}

	lower := origin + math.Floor((x-origin)/step)*step
	upper := lower + step
	if opts.Max != nil && upper > *opts.Max {
		upper = *opts.Max
	}

	return formatBound(lower, opts) + sep + formatBound(upper, opts)
}

func formatBound(f float64, opts *RangeOptions) string {
	precision := opts.Precision
	if precision < 0 {
		precision = 0
	}

	// clear accumulated float error from the step arithmetic before rendering
	f = mathutil.Round(f, precision)
	if f == 0 {
		f = 0
	}

	if opts.Grouping {
		p := message.NewPrinter(language.English)
		return p.Sprint(number.Decimal(f, number.Scale(precision)))
	}

	return strconv.FormatFloat(f, 'f', precision, 64)
}
