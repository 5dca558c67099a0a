// Package seasonality builds calendar-month demand indexes.
package seasonality

import (
	"gonum.org/v1/gonum/stat"

	"github.com/HerbHall/pitstop/internal/insight/series"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

// Labels are the calendar-month names used in index entries, January first.
var Labels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// BuildIndex pools the series by calendar month across years and returns one
// entry per month, January to December. Empty months average 0. The index
// is the month average over the mean of all twelve averages, rounded to two
// places on its binary value, or 0 when that mean is 0.
func BuildIndex(s analytics.Series) ([]analytics.SeasonalIndexEntry, error) {
	var buckets [12][]float64
	for _, p := range s {
		t, err := series.ParseMonth(p.Month)
		if err != nil {
			return nil, err
		}
		m := int(t.Month()) - 1
		buckets[m] = append(buckets[m], p.Value)
	}

	averages := make([]float64, 12)
	for i, b := range buckets {
		if len(b) > 0 {
			averages[i] = stat.Mean(b, nil)
		}
	}
	overall := stat.Mean(averages, nil)

	out := make([]analytics.SeasonalIndexEntry, 12)
	for i, avg := range averages {
		e := analytics.SeasonalIndexEntry{Month: Labels[i], Average: avg}
		if overall != 0 {
			e.Index = series.Fixed(avg/overall, 2)
		}
		out[i] = e
	}
	return out, nil
}

// Peak returns the entry with the highest index, the earliest month winning
// ties. ok is false for an empty table.
func Peak(entries []analytics.SeasonalIndexEntry) (peak analytics.SeasonalIndexEntry, ok bool) {
	for i, e := range entries {
		if i == 0 || e.Index > peak.Index {
			peak = e
		}
	}
	return peak, len(entries) > 0
}
