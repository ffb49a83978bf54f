package collage

import "math"

// FNV-1a 32-bit parameters, used to reduce a slug to a seed state.
const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// HashString reduces a string to a 32-bit FNV-1a hash. The same slug always
// hashes to the same value, which is what makes layouts reproducible.
func HashString(s string) uint32 {
	h := fnvOffsetBasis
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}

// next advances a 32-bit xorshift-multiply state and returns a float in
// [0, 1). It is a pure function: the same state always produces the same
// value and successor state.
func next(state uint32) (float64, uint32) {
	state ^= state >> 15
	state *= 0x2C9277B5
	state ^= state + state*0x3D
	state ^= state >> 14
	return float64(state) / 4294967296.0, state
}

// RNG is a deterministic random source for one composition. It carries a
// single 32-bit state and has no global or hidden mutable parts, so separate
// compositions running concurrently cannot interfere with each other.
//
// An RNG is passed explicitly to every drawing routine that needs
// randomness. It is not safe for concurrent use by multiple goroutines;
// construct one per composition instead.
type RNG struct {
	state uint32
}

// NewRNG creates an RNG seeded from a string identifier (typically a slug).
func NewRNG(seed string) *RNG {
	return &RNG{state: HashString(seed)}
}

// NewRNGFromState creates an RNG from a raw 32-bit state. Useful for forking
// a second stream from the same identifier, e.g. the grain noise field.
func NewRNGFromState(state uint32) *RNG {
	return &RNG{state: state}
}

// Float returns the next float in [0, 1) and advances the state.
func (r *RNG) Float() float64 {
	v, s := next(r.state)
	r.state = s
	return v
}

// Norm returns a standard normal variate via the Box-Muller transform,
// consuming two uniform draws.
func (r *RNG) Norm() float64 {
	u1 := r.Float()
	u2 := r.Float()
	if u1 <= 0 {
		u1 = math.SmallestNonzeroFloat64
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Pick returns a random element of items, consuming one draw from r.
// It panics on an empty slice, matching the contract of indexing.
func Pick[T any](items []T, r *RNG) T {
	return items[int(r.Float()*float64(len(items)))]
}
