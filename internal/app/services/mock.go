package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// MockOptions configures the in-memory Mock.
type MockOptions struct {
	Locations   []string
	TakenNames  []string
	MinLatency  time.Duration
	MaxLatency  time.Duration
	FailureRate float64 // probability in [0,1] that a call fails with ErrUnavailable
	Seed        uint64  // zero picks a random seed
}

// DefaultMockOptions returns the stock country list, one taken name and a
// latency spread wide enough for checks to finish out of order.
func DefaultMockOptions() MockOptions {
	return MockOptions{
		Locations:  []string{"Canada", "China", "USA", "Brazil"},
		TakenNames: []string{"invalid name"},
		MinLatency: 50 * time.Millisecond,
		MaxLatency: 800 * time.Millisecond,
	}
}

// Mock is an in-memory LocationProvider and NameValidator with random latency.
// Name lookups ignore case and surrounding whitespace.
type Mock struct {
	opts  MockOptions
	taken map[string]struct{}

	mu  sync.Mutex
	rng *rand.Rand
}

var (
	_ LocationProvider = (*Mock)(nil)
	_ NameValidator    = (*Mock)(nil)
)

// NewMock builds a Mock from opts.
func NewMock(opts MockOptions) (*Mock, error) {
	if opts.MinLatency < 0 || opts.MaxLatency < opts.MinLatency {
		return nil, fmt.Errorf("mock latency range invalid: min=%s max=%s", opts.MinLatency, opts.MaxLatency)
	}
	if opts.FailureRate < 0 || opts.FailureRate > 1 {
		return nil, fmt.Errorf("mock failure rate %v outside [0,1]", opts.FailureRate)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	taken := make(map[string]struct{}, len(opts.TakenNames))
	for _, name := range opts.TakenNames {
		taken[normalizeName(name)] = struct{}{}
	}

	return &Mock{
		opts:  opts,
		taken: taken,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Locations returns a copy of the configured list after a simulated delay.
func (m *Mock) Locations(ctx context.Context) ([]string, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, fmt.Errorf("locations: %w", err)
	}
	out := make([]string, len(m.opts.Locations))
	copy(out, m.opts.Locations)
	return out, nil
}

// IsNameValid reports whether name is absent from the taken set after a simulated delay.
func (m *Mock) IsNameValid(ctx context.Context, name string) (bool, error) {
	if err := m.simulate(ctx); err != nil {
		return false, fmt.Errorf("name check %q: %w", name, err)
	}
	_, taken := m.taken[normalizeName(name)]
	return !taken, nil
}

func (m *Mock) simulate(ctx context.Context) error {
	delay, fail := m.draw()
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	if fail {
		return ErrUnavailable
	}
	return nil
}

func (m *Mock) draw() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delay := m.opts.MinLatency
	if spread := m.opts.MaxLatency - m.opts.MinLatency; spread > 0 {
		delay += time.Duration(m.rng.Int64N(int64(spread) + 1))
	}
	fail := m.opts.FailureRate > 0 && m.rng.Float64() < m.opts.FailureRate
	return delay, fail
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
