package ports

import (
	"math/rand"
	"sync"
	"time"
)

// RNGPort supplies the only non-determinism in the system: the cosmetic line
// hue and the random choice among sample datasets.
type RNGPort interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// LockedRand is a RNGPort safe for use from concurrent HTTP handlers
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRand returns a deterministic RNGPort
func NewSeededRand(seed int64) *LockedRand {
	return &LockedRand{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededRand returns a RNGPort seeded from the clock
func NewTimeSeededRand() *LockedRand {
	return NewSeededRand(time.Now().UnixNano())
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
