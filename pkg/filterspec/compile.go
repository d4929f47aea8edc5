package filterspec

import (
	"fmt"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/opencost/filterkit/pkg/filter"
	"github.com/opencost/filterkit/pkg/log"
	"github.com/opencost/filterkit/pkg/util/maputil"
	"github.com/opencost/filterkit/pkg/util/typeutil"
)

// Compile builds a Chain from spec. Every invalid predicate or transform is reported in the
// returned error, not only the first.
func Compile(spec *ChainSpec) (*Chain, error) {
	if spec == nil {
		return nil, errors.New("nil chain spec")
	}

	var result *multierror.Error

	predicates := make([]filter.Predicate[any], 0, len(spec.Predicates))
	for i, ps := range spec.Predicates {
		p, err := compilePredicate(ps)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "predicates[%d]", i))
			continue
		}
		predicates = append(predicates, p)
	}

	var match filter.Predicate[any]
	switch spec.Match {
	case MatchAll, "":
		match = filter.And(predicates...)
	case MatchAny:
		match = filter.Or(predicates...)
	default:
		result = multierror.Append(result, fmt.Errorf("match: unknown mode %q", spec.Match))
	}

	transforms := make([]transform, 0, len(spec.Transforms))
	for i, ts := range spec.Transforms {
		t, err := compileTransform(ts)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "transforms[%d]", i))
			continue
		}
		transforms = append(transforms, t)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	log.Debugf("Compiled chain with %d predicates and %d transforms", len(predicates), len(transforms))
	maputil.ForEach(countKinds(spec), func(kind string, n int) {
		log.Tracef("  %s: %d", kind, n)
	})

	return &Chain{
		match:      match,
		transforms: transforms,
	}, nil
}

func compilePredicate(ps PredicateSpec) (filter.Predicate[any], error) {
	var p filter.Predicate[any]

	switch ps.Kind {
	case KindContains:
		p = filter.Contains(ps.Value)
	case KindContainsDeep:
		p = filter.ContainsDeep(ps.Value)
	case KindNotContains:
		p = filter.NotContains(ps.Value)
	case KindNotContainsDeep:
		p = filter.NotContainsDeep(ps.Value)
	case KindEqual:
		p = filter.Equal(ps.Value, ps.Loose)
	case KindNotEqual:
		p = filter.NotEqual(ps.Value, ps.Loose)
	case KindEmpty:
		p = filter.Empty(ps.Empty)
	case KindNotEmpty:
		p = filter.Not(filter.Empty(ps.Empty))
	case "":
		return nil, errors.New("missing kind")
	default:
		return nil, fmt.Errorf("unknown predicate kind %q", ps.Kind)
	}

	path := maputil.ParsePath(ps.Field)
	if len(path) == 0 {
		return p, nil
	}

	return func(record any) bool {
		return p(maputil.Get(record, path))
	}, nil
}

func compileTransform(ts TransformSpec) (transform, error) {
	t := transform{kind: ts.Kind}

	if ts.Field == "" {
		return t, errors.New("missing field")
	}
	t.field = maputil.ParsePath(ts.Field)

	t.into = t.field
	if ts.Into != "" {
		t.into = maputil.ParsePath(ts.Into)
	}

	switch ts.Kind {
	case KindDate:
		if ts.Pattern == "" {
			return t, errors.New("date transform requires a pattern")
		}

		processor, err := dateProcessor(ts.Source)
		if err != nil {
			return t, err
		}

		date := filter.Date(ts.Pattern, processor)
		t.apply = func(v any) (any, bool) {
			return date(v), true
		}

	case KindRound:
		round := filter.RoundFilter(ts.Precision)
		t.apply = numeric(func(f float64) any { return round(f) })

	case KindSplitRange:
		split := filter.SplitRangeFilter(ts.Range, nil)
		t.apply = numeric(func(f float64) any { return split(f) })

	case KindRoundSplit:
		roundSplit := filter.RoundSplit(ts.Precision, ts.Range)
		t.apply = numeric(func(f float64) any { return roundSplit(f) })

	case "":
		return t, errors.New("missing kind")

	default:
		return t, fmt.Errorf("unknown transform kind %q", ts.Kind)
	}

	return t, nil
}

// numeric adapts a float64 formatter to record values. Non-numeric values are rejected.
func numeric(f func(float64) any) func(any) (any, bool) {
	return func(v any) (any, bool) {
		n, ok := typeutil.ToFloat64(v)
		if !ok {
			return nil, false
		}
		return f(n), true
	}
}

func dateProcessor(source string) (filter.Processor[any], error) {
	switch source {
	case "", SourceEpochMillis:
		return nil, nil
	case SourceRFC3339:
		return parseRFC3339, nil
	}
	return nil, fmt.Errorf("unknown date source %q", source)
}

// parseRFC3339 converts RFC 3339 strings to time.Time. Anything else is passed through and
// renders as an invalid date unless it is already a time.
func parseRFC3339(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return v
	}
	return t
}

func countKinds(spec *ChainSpec) map[string]int {
	kinds := map[string]int{}
	for _, ps := range spec.Predicates {
		kinds[ps.Kind]++
	}
	for _, ts := range spec.Transforms {
		kinds[ts.Kind]++
	}
	return kinds
}
