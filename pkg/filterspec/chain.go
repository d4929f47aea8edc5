package filterspec

import (
	"github.com/opencost/filterkit/pkg/filter"
	"github.com/opencost/filterkit/pkg/metrics"
	"github.com/opencost/filterkit/pkg/util/maputil"
	"github.com/opencost/filterkit/pkg/util/typeutil"
)

type transform struct {
	kind  string
	field maputil.Path
	into  maputil.Path
	apply func(any) (any, bool)
}

// Chain is a compiled filter chain. It is immutable once compiled and safe for concurrent
// use.
type Chain struct {
	match      filter.Predicate[any]
	transforms []transform
	recorder   *metrics.Recorder
}

// WithRecorder returns a copy of the chain reporting results and skipped transforms to r.
func (c *Chain) WithRecorder(r *metrics.Recorder) *Chain {
	clone := *c
	clone.recorder = r
	return &clone
}

// Apply evaluates the chain predicates against record and, when they pass, applies the
// transforms in order. The returned record is a copy; record itself is never modified. A
// transform whose input is absent or unusable is skipped and the field is left as is.
func (c *Chain) Apply(record map[string]any) (map[string]any, bool) {
	matched := c.match(record)
	if c.recorder != nil {
		c.recorder.RecordResult(matched)
	}
	if !matched {
		return nil, false
	}

	result := maputil.Map(record, func(v any) any { return v })
	for _, t := range c.transforms {
		value := maputil.Get(result, t.field)
		if typeutil.IsUndefined(value) {
			c.skipped(t.kind)
			continue
		}

		out, ok := t.apply(value)
		if !ok {
			c.skipped(t.kind)
			continue
		}

		updated, ok := maputil.Set(result, t.into, out)
		if !ok {
			c.skipped(t.kind)
			continue
		}
		result = updated
	}

	return result, true
}

func (c *Chain) skipped(kind string) {
	if c.recorder != nil {
		c.recorder.RecordSkippedTransform(kind)
	}
}
