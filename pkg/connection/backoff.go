package connection

import (
	"math/rand"
	"sync"
	"time"
)

// Reattempt spacing defaults, used for zero BackoffConfig fields.
const (
	InitialBackoff    = 500 * time.Millisecond
	MaxBackoff        = 30 * time.Second
	BackoffMultiplier = 2.0
)

// BackoffConfig customizes reattempt spacing. Jitter is the largest extra
// delay as a fraction of the base; zero disables it.
type BackoffConfig struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64
}

// BackoffState is a snapshot of the reattempt spacing of a session.
type BackoffState struct {
	// Attempts counts delays handed out since the last address acquisition.
	Attempts int
	// Next is the base delay of the next reattempt, before jitter.
	Next time.Duration
}

// Backoff spaces reattempts within one session. It grows geometrically from
// Initial to Max and starts over when the controller acquires an address.
type Backoff struct {
	mu  sync.Mutex
	cfg BackoffConfig
	rng *rand.Rand

	base     time.Duration
	attempts int
}

// NewBackoffWithConfig creates a backoff. Zero durations and a multiplier of
// at most 1 fall back to the defaults; negative jitter is treated as none.
func NewBackoffWithConfig(cfg BackoffConfig) *Backoff {
	if cfg.Initial <= 0 {
		cfg.Initial = InitialBackoff
	}
	if cfg.Max <= 0 {
		cfg.Max = MaxBackoff
	}
	cfg.Max = max(cfg.Max, cfg.Initial)
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = BackoffMultiplier
	}
	cfg.Jitter = max(cfg.Jitter, 0)

	return &Backoff{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		base: cfg.Initial,
	}
}

// Next returns the delay for the coming reattempt and advances the base.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	delay := b.base
	if b.cfg.Jitter > 0 {
		delay += time.Duration(float64(b.base) * b.cfg.Jitter * b.rng.Float64())
	}

	b.attempts++
	b.base = min(time.Duration(float64(b.base)*b.cfg.Multiplier), b.cfg.Max)
	return delay
}

// Reset starts the spacing over.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.base = b.cfg.Initial
	b.attempts = 0
}

// State returns the current attempt count and next base delay.
func (b *Backoff) State() BackoffState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BackoffState{Attempts: b.attempts, Next: b.base}
}
