// Package model contains the flight records passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON field names of a flight record.
const (
	FieldDate              = "date"
	FieldOriginCity        = "origin_city"
	FieldDestinationCity   = "destination_city"
	FieldFlightDurationSec = "flight_duration_secs"
	FieldPassengersOnBoard = "passengers_on_board"
)

// Fields lists the record fields in their canonical order.
var Fields = []string{ //nolint:gochecknoglobals // read-only field catalogue
	FieldDate,
	FieldOriginCity,
	FieldDestinationCity,
	FieldFlightDurationSec,
	FieldPassengersOnBoard,
}

// Record is one flight observation as read from the corpus. A nil field was
// absent, JSON null, or held a value of the wrong JSON type.
type Record struct {
	Date               *string
	OriginCity         *string
	DestinationCity    *string
	FlightDurationSecs *int64
	PassengersOnBoard  *int64
}

// UnmarshalJSON decodes a record object leniently: bad field values leave the
// field nil instead of failing the whole file. Anything other than an object
// or null is a structural error.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flight record is not an object: %w", err)
	}

	*r = Record{
		Date:               decodeField[string](raw[FieldDate]),
		OriginCity:         decodeField[string](raw[FieldOriginCity]),
		DestinationCity:    decodeField[string](raw[FieldDestinationCity]),
		FlightDurationSecs: decodeField[int64](raw[FieldFlightDurationSec]),
		PassengersOnBoard:  decodeField[int64](raw[FieldPassengersOnBoard]),
	}
	return nil
}

// MarshalJSON writes nil fields as JSON null, matching the corpus format.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date               *string `json:"date"`
		OriginCity         *string `json:"origin_city"`
		DestinationCity    *string `json:"destination_city"`
		FlightDurationSecs *int64  `json:"flight_duration_secs"`
		PassengersOnBoard  *int64  `json:"passengers_on_board"`
	}{r.Date, r.OriginCity, r.DestinationCity, r.FlightDurationSecs, r.PassengersOnBoard})
}

// Missing returns the names of nil fields in canonical order.
func (r Record) Missing() []string {
	var missing []string
	present := [...]bool{
		r.Date != nil,
		r.OriginCity != nil,
		r.DestinationCity != nil,
		r.FlightDurationSecs != nil,
		r.PassengersOnBoard != nil,
	}
	for i, ok := range present {
		if !ok {
			missing = append(missing, Fields[i])
		}
	}
	return missing
}

var jsonNull = []byte("null") //nolint:gochecknoglobals // comparison literal

func decodeField[T any](raw json.RawMessage) *T {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// CleanRecord is a Record with every field present. Only the validator
// produces it, so the aggregator never sees absent values.
type CleanRecord struct {
	Date               string
	OriginCity         string
	DestinationCity    string
	FlightDurationSecs int64
	PassengersOnBoard  int64
}

// Batch is the decoded content of one corpus file.
type Batch struct {
	Path    string
	Month   int    // 0 when the file name does not follow the corpus convention
	City    string // origin city encoded in the file name, if any
	Records []Record
}

// Ptr returns a pointer to v. Used to build records by hand.
func Ptr[T any](v T) *T {
	return &v
}
