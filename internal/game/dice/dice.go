// Package dice provides the randomness abstraction used by the combat engine.
//
// Every probabilistic rule (enchanted armor reflection, critical hits) draws
// from an injected Source so that tests can run against a seeded or fixed
// stream instead of a hidden global.
package dice

// Uniform draws uniformly distributed floats. Armor and calculators depend
// only on this half of Source.
type Uniform interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
}

// Source is the randomness provider for combat rolls and script dice.
//
// A single Source is not required to be safe for concurrent use unless the
// implementation says so.
type Source interface {
	Uniform
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Chance reports whether a single draw from src falls below p.
//
// Precondition: src must be non-nil.
// Postcondition: Returns false for p <= 0 and true for p >= 1 regardless of the draw.
func Chance(src Uniform, p float64) bool {
	return src.Float64() < p
}
