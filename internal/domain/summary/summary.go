// Package summary ranks destinations and derives distribution statistics
// from the indices of a finished aggregation pass.
package summary

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/go-gota/gota/series"

	"github.com/okian/flightstats/internal/adapters/repository"
	"github.com/okian/flightstats/internal/domain/types"
)

// DefaultTopN is the size of the ranked destination list.
const DefaultTopN = 25

// Option applies a configuration option to Summarize.
type Option func(*options)

type options struct {
	topN int
}

// WithTopN sets how many destinations are ranked.
func WithTopN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topN = n
		}
	}
}

// Summary is the derived view of one pass.
type Summary struct {
	// Top holds up to N destinations by flight count, descending.
	Top        []types.DestinationStat
	MaxArrived types.CityTotal
	MaxLeft    types.CityTotal
}

// Averages returns mean duration per ranked destination.
func (s Summary) Averages() map[string]float64 {
	out := make(map[string]float64, len(s.Top))
	for _, d := range s.Top {
		out[d.City] = d.Mean
	}
	return out
}

// P95 returns the legacy "P95" figure per ranked destination. The value has
// always been the median duration, and consumers depend on it.
func (s Summary) P95() map[string]float64 {
	out := make(map[string]float64, len(s.Top))
	for _, d := range s.Top {
		out[d.City] = d.Median
	}
	return out
}

// Summarize computes the ranked destination list and the passenger extrema.
// It only reads the indices, so repeated calls return equal results.
func Summarize(durations *repository.DurationIndex, arrived, left *repository.PassengerIndex, opts ...Option) (Summary, error) {
	o := options{topN: DefaultTopN}
	for _, opt := range opts {
		opt(&o)
	}

	maxArrived, err := maxTotal(arrived)
	if err != nil {
		return Summary{}, fmt.Errorf("arrivals: %w", err)
	}
	maxLeft, err := maxTotal(left)
	if err != nil {
		return Summary{}, fmt.Errorf("departures: %w", err)
	}

	top := TopDestinations(durations, o.topN)
	stats := make([]types.DestinationStat, 0, len(top))
	for i, city := range top {
		d, err := durations.Durations(city)
		if err != nil {
			return Summary{}, err
		}
		stats = append(stats, describe(i+1, city, d))
	}

	return Summary{
		Top:        stats,
		MaxArrived: maxArrived,
		MaxLeft:    maxLeft,
	}, nil
}

// TopDestinations returns up to n cities ordered by flight count, descending.
// Equal counts keep first-seen order.
func TopDestinations(durations *repository.DurationIndex, n int) []string {
	if durations == nil || n <= 0 {
		return nil
	}
	cities := durations.Cities()
	slices.SortStableFunc(cities, func(a, b string) int {
		return cmp.Compare(durations.Count(b), durations.Count(a))
	})
	if len(cities) > n {
		cities = cities[:n]
	}
	return cities
}

func describe(rank int, city string, durations []int64) types.DestinationStat {
	values := make([]int, len(durations))
	for i, d := range durations {
		values[i] = int(d)
	}
	s := series.New(values, series.Int, city)

	return types.DestinationStat{
		Rank:    rank,
		City:    city,
		Flights: s.Len(),
		Mean:    s.Mean(),
		Median:  s.Median(),
		Min:     s.Min(),
		Max:     s.Max(),
	}
}

// maxTotal returns the largest total; ties go to the first city inserted.
func maxTotal(ix *repository.PassengerIndex) (types.CityTotal, error) {
	if ix == nil || ix.Len() == 0 {
		return types.CityTotal{}, ErrEmptyIndex
	}
	var best types.CityTotal
	first := true
	for city, n := range ix.All() {
		if first || n > best.Passengers {
			best = types.CityTotal{City: city, Passengers: n}
			first = false
		}
	}
	return best, nil
}
