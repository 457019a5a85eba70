// Package validate classifies flight records as clean or dirty.
package validate

import (
	"errors"
	"strings"

	"github.com/okian/flightstats/internal/domain/model"
)

// ErrFieldMissing marks a record with at least one absent or null field.
var ErrFieldMissing = errors.New("record field missing")

// FieldMissingError names the fields that made a record dirty.
type FieldMissingError struct {
	Fields []string
}

func (e *FieldMissingError) Error() string {
	return ErrFieldMissing.Error() + ": " + strings.Join(e.Fields, ", ")
}

// Is lets errors.Is match ErrFieldMissing.
func (e *FieldMissingError) Is(target error) bool {
	return target == ErrFieldMissing
}

// Classify returns the clean form of r, or a *FieldMissingError when any of
// the five fields is nil. It has no side effects.
func Classify(r model.Record) (model.CleanRecord, error) {
	if missing := r.Missing(); len(missing) > 0 {
		return model.CleanRecord{}, &FieldMissingError{Fields: missing}
	}
	return model.CleanRecord{
		Date:               *r.Date,
		OriginCity:         *r.OriginCity,
		DestinationCity:    *r.DestinationCity,
		FlightDurationSecs: *r.FlightDurationSecs,
		PassengersOnBoard:  *r.PassengersOnBoard,
	}, nil
}

// IsClean reports whether r has every field present.
func IsClean(r model.Record) bool {
	_, err := Classify(r)
	return err == nil
}
