package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
)

// SeedFromString returns a 64-bit seed from an arbitrary string using SHA256.
func SeedFromString(s string) uint64 {
	h := sha256.Sum256([]byte(s))
	return binary.LittleEndian.Uint64(h[:8])
}

// Derive returns a deterministic child seed based on a base seed and a label
// using HMAC-SHA256. Labels should be stable strings such as "day:12:draw".
func Derive(base uint64, label string) uint64 {
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, base)
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(label))
	sum := m.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// RunSeed encapsulates the canonical seed string for a run and exposes
// deterministic streams. Every random decision in a run draws from a stream
// derived from its root, so a seed text replays identically.
type RunSeed struct {
	Text string
	root uint64
}

// NewRunSeed creates a deterministic RunSeed from a textual seed. Empty text is rejected.
func NewRunSeed(seedText string) (RunSeed, error) {
	if seedText == "" {
		return RunSeed{}, fmt.Errorf("seed text must not be empty")
	}
	return RunSeed{Text: seedText, root: SeedFromString(seedText)}, nil
}

// WithRunContext returns a new RunSeed whose root is mixed with the run id,
// so two runs started from the same seed text still diverge once persisted.
func (r RunSeed) WithRunContext(runID string) RunSeed {
	if runID == "" {
		return r
	}
	return RunSeed{Text: r.Text, root: Derive(r.root, "run:"+runID)}
}

// Stream returns a new deterministic RNG stream derived from the run's root seed.
func (r RunSeed) Stream(label string) *Stream {
	return newStream(Derive(r.root, label))
}

// SplitMix64 PRNG implementation for deterministic streams.
type splitMix64 struct{ state uint64 }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Stream provides deterministic random numbers with support for labelled
// child streams.
type Stream struct {
	base uint64
	sm   *splitMix64
}

func newStream(seed uint64) *Stream {
	return &Stream{base: seed, sm: &splitMix64{state: seed}}
}

// NewStream exposes stream construction for callers that hold a raw seed.
func NewStream(seed uint64) *Stream { return newStream(seed) }

// Intn mirrors math/rand.Intn but is deterministic per stream.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.sm.next() % uint64(n))
}

// IntBetween returns a uniform value in [lo, hi] inclusive.
func (s *Stream) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Float64 returns a float in [0,1).
func (s *Stream) Float64() float64 {
	return float64(s.sm.next()>>11) / (1 << 53)
}

// Uint64 exposes the underlying 64-bit stream when coarse-grained randomness is needed.
func (s *Stream) Uint64() uint64 { return s.sm.next() }

// Child creates a stable sub-stream derived from this stream's base seed and label.
func (s *Stream) Child(label string) *Stream { return newStream(Derive(s.base, label)) }

// WeightedIndex draws an index by cumulative-weight roulette: sum the
// weights, pick a uniform point in [0,total), and walk until it lands.
// Zero and negative weights are never selected. Returns -1 when the total
// weight is zero.
func (s *Stream) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	point := s.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		point -= w
		if point < 0 {
			return i
		}
	}
	// float accumulation can leave a sliver; land on the last positive weight
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// SampleIndices returns k distinct indices drawn uniformly from [0,n).
// When k >= n every index is returned, in shuffled order.
func (s *Stream) SampleIndices(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	if k < n && k >= 0 {
		idx = idx[:k]
	}
	return idx
}

// childLabel builds a per-day stream label like "draw:12".
func childLabel(prefix string, day int) string {
	return prefix + ":" + strconv.Itoa(day)
}
