package timing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrUnknownKey is the panic cause when reading a key that was never set.
var ErrUnknownKey = errors.New("timing: unknown key")

// maxDuration caps transition end times so huge durations do not wrap.
const maxDuration = time.Duration(math.MaxInt64)

// Clock reports elapsed time since an arbitrary, fixed epoch.
type Clock interface {
	Now() time.Duration
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Duration

// Now calls f.
func (f ClockFunc) Now() time.Duration { return f() }

// NewMonotonicClock returns a Clock measuring time since its creation.
func NewMonotonicClock() Clock {
	start := time.Now()
	return ClockFunc(func() time.Duration { return time.Since(start) })
}

type entry struct {
	previous     Value
	previousTime time.Duration
	future       *Value
	futureTime   time.Duration
}

// Store holds named values that either sit still or move linearly toward
// a target. All reads use the time captured by the last UpdateTime call.
// A Store is not safe for concurrent use.
type Store struct {
	clock Clock
	now   time.Duration
	items map[string]*entry
}

// NewStore creates a store reading time from clock.
func NewStore(clock Clock) *Store {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	return &Store{
		clock: clock,
		now:   clock.Now(),
		items: make(map[string]*entry),
	}
}

// UpdateTime captures the current clock reading. Call it once per frame
// before any Get so every read in the frame sees the same instant.
func (s *Store) UpdateTime() {
	s.now = s.clock.Now()
}

// Now returns the instant captured by the last UpdateTime.
func (s *Store) Now() time.Duration {
	return s.now
}

// Set schedules key to reach value after d. With d <= 0, or for a key seen
// for the first time, the value applies immediately. Otherwise the value
// currently observed becomes the starting point, so retargeting in the
// middle of a transition continues from where the animation is.
func (s *Store) Set(key string, value Value, d time.Duration) {
	item, ok := s.items[key]
	if !ok || d <= 0 {
		s.items[key] = &entry{previous: value}
		return
	}

	current := s.Get(key)
	if !current.SameShape(value) {
		s.items[key] = &entry{previous: value}
		return
	}

	target := value
	item.previous = current
	item.previousTime = s.now
	item.future = &target
	item.futureTime = s.now + d
	if d > maxDuration-s.now {
		item.futureTime = maxDuration
	}
}

// Get returns the value of key at the instant of the last UpdateTime.
// A finished transition collapses into a steady value as a side effect.
// Get panics with ErrUnknownKey if key was never set.
func (s *Store) Get(key string) Value {
	v, ok := s.Lookup(key)
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownKey, key))
	}
	return v
}

// Lookup is like Get but reports a missing key instead of panicking.
func (s *Store) Lookup(key string) (Value, bool) {
	item, ok := s.items[key]
	if !ok {
		return Value{}, false
	}
	if item.future == nil {
		return item.previous, true
	}
	if s.now >= item.futureTime {
		item.previous = *item.future
		item.future = nil
		return item.previous, true
	}

	t := float64(s.now-item.previousTime) / float64(item.futureTime-item.previousTime)
	return Lerp(item.previous, *item.future, t), true
}

// Float returns the scalar value of key.
func (s *Store) Float(key string) float64 {
	return s.Get(key).Float()
}

// RGBA returns the value of key as a color.
func (s *Store) RGBA(key string) [4]float32 {
	return s.Get(key).RGBA()
}

// Animating reports whether key has a pending target.
func (s *Store) Animating(key string) bool {
	item, ok := s.items[key]
	return ok && item.future != nil && s.now < item.futureTime
}

// Has reports whether key was ever set.
func (s *Store) Has(key string) bool {
	_, ok := s.items[key]
	return ok
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
