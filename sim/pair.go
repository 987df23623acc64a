package sim

// Pair is a two-slot tuple. Customer names are Pair[string, string]
// holding (first, last).
type Pair[A, B any] struct {
	First  A
	Second B
}

// NewPair creates a Pair.
func NewPair[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}
