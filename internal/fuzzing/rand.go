// Package fuzzing builds seeded, reproducible display topologies for exercising the primary swap.
package fuzzing

import (
	"encoding/binary"
	"math/rand/v2"
)

// source is the seeded random stream owned by a single fuzzer.
type source struct {
	*rand.Rand
	chacha *rand.ChaCha8
}

// newSource returns a ChaCha8 stream keyed by seed.
func newSource(seed uint64) *source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	chacha := rand.NewChaCha8(key)
	return &source{Rand: rand.New(chacha), chacha: chacha}
}

// child draws one value from the stream and seeds an independent stream with it.
func (s *source) child() *source {
	return newSource(s.Uint64())
}

// Read fills p from the stream so it can back uuid generation.
func (s *source) Read(p []byte) (int, error) {
	return s.chacha.Read(p)
}

// between returns a uniform int in [lo, hi].
func (s *source) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}

// sample returns k distinct indexes of [0, n) in draw order.
func (s *source) sample(n, k int) []int {
	return s.Perm(n)[:k]
}

// drawUnique redraws until next yields a value absent from used and forbidden, then records it in used.
func drawUnique[T comparable](what string, used, forbidden map[T]struct{}, next func() T) T {
	for attempt := 0; attempt < maxDrawAttempts; attempt++ {
		v := next()
		if _, taken := used[v]; taken {
			continue
		}
		if _, banned := forbidden[v]; banned {
			continue
		}
		used[v] = struct{}{}
		return v
	}
	panic("fuzzing: cannot draw a unique " + what)
}

// maxDrawAttempts bounds redraws for a single value; every value domain here is far larger.
const maxDrawAttempts = 1 << 16

// setOf builds a lookup set.
func setOf[T comparable](values []T) map[T]struct{} {
	out := make(map[T]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
