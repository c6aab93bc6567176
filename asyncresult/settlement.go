package asyncresult

import "github.com/abevier/outcome/results"

type settlementKind uint8

const (
	malformedSettlement settlementKind = iota
	valueSettlement
	resultSettlement
	nestedSettlement
)

// Settlement is what a producer resolves to: a raw value, a Result or another AsyncResult.
// Build one with Value, Settled or Nested; the zero Settlement is malformed.
type Settlement[T any, E any] struct {
	kind   settlementKind
	value  T
	result results.Result[T, E]
	nested *AsyncResult[T, E]
}

// Value settles to Ok(v).
func Value[T any, E any](v T) Settlement[T, E] {
	return Settlement[T, E]{kind: valueSettlement, value: v}
}

// Settled adopts r unchanged.
func Settled[T any, E any](r results.Result[T, E]) Settlement[T, E] {
	return Settlement[T, E]{kind: resultSettlement, result: r}
}

// Nested adopts the eventual outcome of ar.
func Nested[T any, E any](ar *AsyncResult[T, E]) Settlement[T, E] {
	return Settlement[T, E]{kind: nestedSettlement, nested: ar}
}
