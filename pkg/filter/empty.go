package filter

import "github.com/opencost/filterkit/pkg/util/typeutil"

// EmptyOptions enables additional checks which make Empty report a value as empty even
// when it is truthy.
type EmptyOptions struct {
	SkipNumber    bool `json:"skipNumber" yaml:"skipNumber"`
	SkipString    bool `json:"skipString" yaml:"skipString"`
	SkipNotEmpty  bool `json:"skipNotEmpty" yaml:"skipNotEmpty"`
	SkipNull      bool `json:"skipNull" yaml:"skipNull"`
	SkipUndefined bool `json:"skipUndefined" yaml:"skipUndefined"`
}

type emptyCheck struct {
	enabled func(*EmptyOptions) bool
	check   func(any) bool
}

// emptyChecks maps each option flag to the check it enables. Read only.
var emptyChecks = []emptyCheck{
	{enabled: func(o *EmptyOptions) bool { return o.SkipNumber }, check: typeutil.IsNumber},
	{enabled: func(o *EmptyOptions) bool { return o.SkipString }, check: typeutil.IsString},
	{enabled: func(o *EmptyOptions) bool { return o.SkipNotEmpty }, check: typeutil.IsNotEmpty},
	{enabled: func(o *EmptyOptions) bool { return o.SkipNull }, check: typeutil.IsNull},
	{enabled: func(o *EmptyOptions) bool { return o.SkipUndefined }, check: typeutil.IsUndefined},
}

// Empty returns a predicate which is true for falsy values. Each flag set in opts adds a
// check, and the predicate is also true whenever any enabled check passes. A nil opts, or
// one with no flags set, is the plain falsy test.
func Empty(opts *EmptyOptions) Predicate[any] {
	if opts == nil {
		return Not[any](nil)
	}

	var checks []func(any) bool
	for _, ec := range emptyChecks {
		if ec.enabled(opts) {
			checks = append(checks, ec.check)
		}
	}

	if len(checks) == 0 {
		return Not[any](nil)
	}

	return func(that any) bool {
		if !typeutil.IsTruthy(that) {
			return true
		}

		for _, check := range checks {
			if check(that) {
				return true
			}
		}
		return false
	}
}
