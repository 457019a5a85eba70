// Package aggregate folds clean flight records into the per-city indices.
package aggregate

import (
	"fmt"

	"github.com/okian/flightstats/internal/adapters/repository"
	"github.com/okian/flightstats/internal/domain/model"
)

// Aggregator owns the three indices of one pass.
type Aggregator struct {
	durations *repository.DurationIndex
	arrived   *repository.PassengerIndex
	left      *repository.PassengerIndex
	folded    int
}

// New creates an Aggregator over empty indices.
func New(opts ...repository.Option) *Aggregator {
	return &Aggregator{
		durations: repository.NewDurationIndex(opts...),
		arrived:   repository.NewPassengerIndex(opts...),
		left:      repository.NewPassengerIndex(opts...),
	}
}

// Fold applies one clean record: its duration is appended under the
// destination, and its passengers are added to the destination's arrivals
// and the origin's departures.
func (a *Aggregator) Fold(r model.CleanRecord) error {
	if a.durations.Frozen() {
		return repository.ErrFrozen
	}
	if err := a.durations.Append(r.DestinationCity, r.FlightDurationSecs); err != nil {
		return fmt.Errorf("append duration: %w", err)
	}
	if err := a.arrived.Add(r.DestinationCity, r.PassengersOnBoard); err != nil {
		return fmt.Errorf("add arrivals: %w", err)
	}
	if err := a.left.Add(r.OriginCity, r.PassengersOnBoard); err != nil {
		return fmt.Errorf("add departures: %w", err)
	}
	a.folded++
	return nil
}

// Folded returns the number of records applied so far.
func (a *Aggregator) Folded() int { return a.folded }

// Close freezes the indices and returns them. Later Folds fail with
// repository.ErrFrozen.
func (a *Aggregator) Close() (*repository.DurationIndex, *repository.PassengerIndex, *repository.PassengerIndex) {
	a.durations.Freeze()
	a.arrived.Freeze()
	a.left.Freeze()
	return a.durations, a.arrived, a.left
}
