package summary_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okian/flightstats/internal/adapters/repository"
	"github.com/okian/flightstats/internal/domain/aggregate"
	"github.com/okian/flightstats/internal/domain/model"
	"github.com/okian/flightstats/internal/domain/summary"
	"github.com/okian/flightstats/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

type fold struct {
	origin, dest string
	secs, pax    int64
}

func build(folds ...fold) (*repository.DurationIndex, *repository.PassengerIndex, *repository.PassengerIndex) {
	agg := aggregate.New()
	for _, f := range folds {
		if err := agg.Fold(model.CleanRecord{
			Date:               "1/01/YY",
			OriginCity:         f.origin,
			DestinationCity:    f.dest,
			FlightDurationSecs: f.secs,
			PassengersOnBoard:  f.pax,
		}); err != nil {
			panic(err)
		}
	}
	return agg.Close()
}

func TestSummarize(t *testing.T) {
	convey.Convey("Given two flights into CityX lasting 100 and 300 seconds", t, func() {
		durations, arrived, left := build(
			fold{"CityA", "CityX", 100, 5},
			fold{"CityB", "CityX", 300, 7},
		)

		s, err := summary.Summarize(durations, arrived, left)

		convey.Convey("Then mean and legacy P95 should both be 200", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Top, convey.ShouldHaveLength, 1)
			convey.So(s.Top[0], convey.ShouldResemble, types.DestinationStat{
				Rank: 1, City: "CityX", Flights: 2, Mean: 200, Median: 200, Min: 100, Max: 300,
			})
			convey.So(s.Averages(), convey.ShouldResemble, map[string]float64{"CityX": 200})
			convey.So(s.P95(), convey.ShouldResemble, map[string]float64{"CityX": 200})
		})

		convey.Convey("Then the passenger extrema should be reported", func() {
			convey.So(s.MaxArrived, convey.ShouldResemble, types.CityTotal{City: "CityX", Passengers: 12})
			convey.So(s.MaxLeft, convey.ShouldResemble, types.CityTotal{City: "CityB", Passengers: 7})
		})
	})

	convey.Convey("Given an odd number of unsorted durations", t, func() {
		durations, arrived, left := build(
			fold{"A", "Z", 7000, 1},
			fold{"A", "Z", 3600, 1},
			fold{"A", "Z", 5000, 1},
			fold{"A", "Z", 3700, 1},
			fold{"A", "Z", 6000, 1},
		)

		s, err := summary.Summarize(durations, arrived, left)

		convey.Convey("Then the median should be the middle of the sorted list", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Top[0].Median, convey.ShouldEqual, 5000.0)
			convey.So(s.Top[0].Mean, convey.ShouldEqual, 5060.0)
			convey.So(s.Top[0].Min, convey.ShouldEqual, 3600.0)
			convey.So(s.Top[0].Max, convey.ShouldEqual, 7000.0)
		})
	})

	convey.Convey("Given an even number of durations", t, func() {
		durations, arrived, left := build(
			fold{"A", "Z", 4, 1},
			fold{"A", "Z", 1, 1},
			fold{"A", "Z", 3, 1},
			fold{"A", "Z", 2, 1},
		)

		s, err := summary.Summarize(durations, arrived, left)

		convey.Convey("Then the median should average the two middle values", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Top[0].Median, convey.ShouldEqual, 2.5)
		})
	})

	convey.Convey("Given empty indices", t, func() {
		durations, arrived, left := build()

		_, err := summary.Summarize(durations, arrived, left)

		convey.Convey("Then an empty index error should be returned", func() {
			convey.So(errors.Is(err, summary.ErrEmptyIndex), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given nil indices", t, func() {
		_, err := summary.Summarize(nil, nil, nil)

		convey.Convey("Then an empty index error should be returned", func() {
			convey.So(errors.Is(err, summary.ErrEmptyIndex), convey.ShouldBeTrue)
		})
	})
}

func TestRanking(t *testing.T) {
	convey.Convey("Given destinations with tied flight counts", t, func() {
		durations, arrived, left := build(
			fold{"O", "CityC", 1, 1},
			fold{"O", "CityA", 1, 1},
			fold{"O", "CityB", 1, 1},
			fold{"O", "CityB", 1, 1},
			fold{"O", "CityD", 1, 1},
		)

		convey.Convey("Then ties should keep first-seen order", func() {
			convey.So(summary.TopDestinations(durations, 10), convey.ShouldResemble,
				[]string{"CityB", "CityC", "CityA", "CityD"})
		})

		convey.Convey("Then a smaller N should truncate", func() {
			convey.So(summary.TopDestinations(durations, 2), convey.ShouldResemble, []string{"CityB", "CityC"})
			convey.So(summary.TopDestinations(durations, 0), convey.ShouldBeEmpty)
		})

		convey.Convey("Then the ranked stats should carry ranks in order", func() {
			s, err := summary.Summarize(durations, arrived, left, summary.WithTopN(3))
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Top, convey.ShouldHaveLength, 3)
			for i, d := range s.Top {
				convey.So(d.Rank, convey.ShouldEqual, i+1)
			}
			convey.So(s.Top[0].City, convey.ShouldEqual, "CityB")
		})
	})

	convey.Convey("Given fewer destinations than the default N", t, func() {
		var folds []fold
		for i := 0; i < 7; i++ {
			folds = append(folds, fold{"O", fmt.Sprintf("City%d", i), 3600, 1})
		}
		durations, arrived, left := build(folds...)

		s, err := summary.Summarize(durations, arrived, left)

		convey.Convey("Then exactly that many should be ranked", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Top, convey.ShouldHaveLength, 7)
		})
	})

	convey.Convey("Given more destinations than the default N", t, func() {
		var folds []fold
		for i := 0; i < 40; i++ {
			for j := 0; j <= i; j++ {
				folds = append(folds, fold{"O", fmt.Sprintf("City%d", i), 3600, 1})
			}
		}
		durations, arrived, left := build(folds...)

		s, err := summary.Summarize(durations, arrived, left)

		convey.Convey("Then only the 25 busiest should be ranked", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Top, convey.ShouldHaveLength, summary.DefaultTopN)
			convey.So(s.Top[0].City, convey.ShouldEqual, "City39")
			convey.So(s.Top[0].Flights, convey.ShouldEqual, 40)
			convey.So(s.Top[24].City, convey.ShouldEqual, "City15")
		})
	})
}

func TestPassengerExtrema(t *testing.T) {
	convey.Convey("Given cities tied on passenger totals", t, func() {
		durations, arrived, left := build(
			fold{"CityP", "CityB", 1, 10},
			fold{"CityQ", "CityA", 1, 10},
			fold{"CityR", "CityC", 1, 3},
		)

		s, err := summary.Summarize(durations, arrived, left)

		convey.Convey("Then the first inserted city should win", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.MaxArrived, convey.ShouldResemble, types.CityTotal{City: "CityB", Passengers: 10})
			convey.So(s.MaxLeft, convey.ShouldResemble, types.CityTotal{City: "CityP", Passengers: 10})
		})
	})

	convey.Convey("Given only zero-passenger flights", t, func() {
		durations, arrived, left := build(fold{"CityA", "CityB", 1, 0})

		s, err := summary.Summarize(durations, arrived, left)

		convey.Convey("Then the zero totals should still be reported", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.MaxArrived, convey.ShouldResemble, types.CityTotal{City: "CityB", Passengers: 0})
			convey.So(s.MaxLeft, convey.ShouldResemble, types.CityTotal{City: "CityA", Passengers: 0})
		})
	})
}

func TestSummarizeIsIdempotent(t *testing.T) {
	convey.Convey("Given frozen indices", t, func() {
		durations, arrived, left := build(
			fold{"CityA", "CityB", 4000, 10},
			fold{"CityB", "CityC", 5000, 20},
			fold{"CityC", "CityB", 6000, 30},
		)

		first, err1 := summary.Summarize(durations, arrived, left)
		second, err2 := summary.Summarize(durations, arrived, left)

		convey.Convey("Then repeated calls should return identical results", func() {
			convey.So(err1, convey.ShouldBeNil)
			convey.So(err2, convey.ShouldBeNil)
			convey.So(second, convey.ShouldResemble, first)
			convey.So(durations.Snapshot(), convey.ShouldResemble, map[string][]int64{
				"CityB": {4000, 6000},
				"CityC": {5000},
			})
		})
	})
}
