package tile

import (
	"math"
	"unicode/utf16"
)

// Hash folds name into a 32-bit signed value with the h*31+c recurrence.
// It walks UTF-16 code units, so characters outside the BMP contribute
// both halves of their surrogate pair. Arithmetic wraps at every step.
func Hash(name string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(name)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// Stream is a seeded pseudo-random sequence addressed by offset.
// The same hash and offset always give the same value.
type Stream struct {
	seed float64
}

// NewStream seeds a stream from a name hash.
func NewStream(hash int32) Stream {
	return Stream{seed: float64(hash)}
}

// At returns frac(sin(seed+offset) * 10000), a value in [0, 1).
func (s Stream) At(offset int) float64 {
	// The explicit conversion forces rounding before the subtraction,
	// a fused multiply-add would change the low bits.
	x := float64(sin(s.seed+float64(offset)) * 10000)
	return x - math.Floor(x)
}

// pick maps a draw onto [0, n).
func (s Stream) pick(offset, n int) int {
	i := int(math.Floor(float64(s.At(offset) * float64(n))))
	if i >= n {
		// x - floor(x) rounds to 1 for tiny negative x
		i = n - 1
	}
	return i
}
