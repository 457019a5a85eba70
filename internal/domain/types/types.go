// Package types contains result types shared by the summarizer and the
// report renderers.
package types

// DestinationStat is one row of the ranked destination list.
type DestinationStat struct {
	Rank    int     `json:"rank"`
	City    string  `json:"city"`
	Flights int     `json:"flights"`
	Mean    float64 `json:"mean_secs"`
	// Median is the middle duration. Reports print it under the legacy
	// "P95" heading.
	Median float64 `json:"p95_secs"`
	Min    float64 `json:"min_secs"`
	Max    float64 `json:"max_secs"`
}

// CityTotal is a city paired with a passenger total.
type CityTotal struct {
	City       string `json:"city"`
	Passengers int64  `json:"passengers"`
}

// RunStats are the counters of one aggregation pass.
type RunStats struct {
	RunID        string         `json:"run_id"`
	Files        int            `json:"files"`
	TotalRecords int            `json:"total_records"`
	DirtyRecords int            `json:"dirty_records"`
	Missing      map[string]int `json:"missing_by_field,omitempty"`
	ElapsedSecs  float64        `json:"elapsed_secs"`
}
