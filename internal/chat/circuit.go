package chat

import (
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned by Allow while the breaker is shedding load.
var ErrBreakerOpen = errors.New("model breaker open")

// BreakerConfig tunes how aggressively the model breaker sheds load.
type BreakerConfig struct {
	TripAfter int           // Consecutive failures before opening (default: 5)
	ProbeWins int           // Probe successes required to close again (default: 2)
	Cooldown  time.Duration // Open duration before the first probe (default: 30s)
}

// DefaultBreakerConfig returns defaults sized for a single LLM provider.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		TripAfter: 5,
		ProbeWins: 2,
		Cooldown:  30 * time.Second,
	}
}

type breakerState uint8

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerProbing
)

// Breaker stops the agent from hammering the model provider while it is
// failing. TripAfter consecutive failures open it; Allow rejects calls
// until Cooldown has passed, then lets probe requests through. ProbeWins
// consecutive probe successes close it, a single probe failure reopens it.
type Breaker struct {
	mu       sync.Mutex
	cfg      BreakerConfig
	state    breakerState
	fails    int
	wins     int
	openedAt time.Time
}

// NewBreaker creates a closed breaker. Zero or negative config fields
// fall back to the defaults.
func NewBreaker(cfg BreakerConfig) *Breaker {
	def := DefaultBreakerConfig()
	if cfg.TripAfter <= 0 {
		cfg.TripAfter = def.TripAfter
	}
	if cfg.ProbeWins <= 0 {
		cfg.ProbeWins = def.ProbeWins
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	return &Breaker{cfg: cfg}
}

// Allow reports whether a model call may proceed. While open it returns
// ErrBreakerOpen until the cooldown elapses, at which point the breaker
// moves to probing and the call is let through.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerOpen {
		if time.Since(b.openedAt) <= b.cfg.Cooldown {
			return ErrBreakerOpen
		}
		b.state = breakerProbing
		b.wins = 0
	}
	return nil
}

// RecordSuccess notes a successful model call.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		b.fails = 0
	case breakerProbing:
		b.wins++
		if b.wins >= b.cfg.ProbeWins {
			b.state = breakerClosed
			b.fails = 0
			b.wins = 0
		}
	case breakerOpen:
		// A call that started before the breaker opened; ignore.
	}
}

// RecordFailure notes a failed model call.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fails++
	b.openedAt = time.Now()

	switch b.state {
	case breakerClosed:
		if b.fails >= b.cfg.TripAfter {
			b.state = breakerOpen
		}
	case breakerProbing:
		b.state = breakerOpen
		b.wins = 0
	case breakerOpen:
	}
}

// State describes the breaker for logs: "closed", "open" or "probing".
func (b *Breaker) State() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerOpen:
		return "open"
	case breakerProbing:
		return "probing"
	default:
		return "closed"
	}
}

// Reset forces the breaker closed and clears all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = breakerClosed
	b.fails = 0
	b.wins = 0
	b.openedAt = time.Time{}
}
