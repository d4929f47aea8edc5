// Package filter provides factories for small, composable predicate and transform
// functions. Each factory captures its arguments once and returns a pure closure which
// can be handed to any map/filter/reduce style pipeline.
//
// Closures returned from this package never mutate their argument, hold no mutable
// state and are safe for concurrent use.
package filter

// Filter is a pure, synchronous transformation of a value of type P into a value of
// type R.
type Filter[P any, R any] func(P) R

// Predicate is a Filter which reports whether a value of type T passes.
type Predicate[T any] func(T) bool

// Processor is a pre-transform applied to a raw value before a filter's main logic, e.g.
// extracting a timestamp from a larger record.
type Processor[T any] func(T) any
