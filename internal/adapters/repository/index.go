package repository

import (
	"fmt"
	"iter"
	"slices"
)

// DurationIndex maps a destination city to the durations, in seconds, of
// every flight that arrived there. Lists are append-only.
type DurationIndex struct {
	m *Ordered[[]int64]
}

// NewDurationIndex creates an empty duration index.
func NewDurationIndex(opts ...Option) *DurationIndex {
	return &DurationIndex{m: NewOrdered[[]int64](opts...)}
}

// Append records one flight duration for city.
func (ix *DurationIndex) Append(city string, secs int64) error {
	return ix.m.Upsert(city, func(d *[]int64) {
		*d = append(*d, secs)
	})
}

// Durations returns a copy of the durations recorded for city.
func (ix *DurationIndex) Durations(city string) ([]int64, error) {
	d, ok := ix.m.Get(city)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, city)
	}
	return slices.Clone(d), nil
}

// Count returns how many durations city has; zero for unknown cities.
func (ix *DurationIndex) Count(city string) int {
	d, _ := ix.m.Get(city)
	return len(d)
}

// Len returns the number of distinct cities.
func (ix *DurationIndex) Len() int { return ix.m.Len() }

// Cities returns the cities in first-seen order.
func (ix *DurationIndex) Cities() []string { return ix.m.Keys() }

// Total returns the number of durations across all cities.
func (ix *DurationIndex) Total() int {
	n := 0
	for _, d := range ix.m.All() {
		n += len(d)
	}
	return n
}

// All iterates cities and their duration lists in first-seen order. The
// yielded slices must not be modified.
func (ix *DurationIndex) All() iter.Seq2[string, []int64] { return ix.m.All() }

// Snapshot copies the index into a plain map.
func (ix *DurationIndex) Snapshot() map[string][]int64 {
	out := make(map[string][]int64, ix.m.Len())
	for city, d := range ix.m.All() {
		out[city] = slices.Clone(d)
	}
	return out
}

// Freeze makes the index read-only.
func (ix *DurationIndex) Freeze() { ix.m.Freeze() }

// Frozen reports whether the index is read-only.
func (ix *DurationIndex) Frozen() bool { return ix.m.Frozen() }

// PassengerIndex maps a city to a running passenger total.
type PassengerIndex struct {
	m *Ordered[int64]
}

// NewPassengerIndex creates an empty passenger index.
func NewPassengerIndex(opts ...Option) *PassengerIndex {
	return &PassengerIndex{m: NewOrdered[int64](opts...)}
}

// Add adds n passengers to city's total.
func (ix *PassengerIndex) Add(city string, n int64) error {
	return ix.m.Upsert(city, func(total *int64) {
		*total += n
	})
}

// Total returns the passenger total for city.
func (ix *PassengerIndex) Total(city string) (int64, error) {
	n, ok := ix.m.Get(city)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, city)
	}
	return n, nil
}

// Len returns the number of distinct cities.
func (ix *PassengerIndex) Len() int { return ix.m.Len() }

// Cities returns the cities in first-seen order.
func (ix *PassengerIndex) Cities() []string { return ix.m.Keys() }

// All iterates cities and totals in first-seen order.
func (ix *PassengerIndex) All() iter.Seq2[string, int64] { return ix.m.All() }

// Snapshot copies the index into a plain map.
func (ix *PassengerIndex) Snapshot() map[string]int64 {
	out := make(map[string]int64, ix.m.Len())
	for city, n := range ix.m.All() {
		out[city] = n
	}
	return out
}

// Freeze makes the index read-only.
func (ix *PassengerIndex) Freeze() { ix.m.Freeze() }

// Frozen reports whether the index is read-only.
func (ix *PassengerIndex) Frozen() bool { return ix.m.Frozen() }
