// Package series turns raw dated records into monthly analytics.Series values.
package series

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HerbHall/pitstop/pkg/analytics"
)

// MonthLayout is the time layout of a month key.
const MonthLayout = "2006-01"

// exactExponent is small enough to hold any float64 in decimal without loss.
const exactExponent = -1100

var (
	// ErrMalformedMonth is returned for month keys that are not "YYYY-MM".
	ErrMalformedMonth = errors.New("malformed month key")
	// ErrDuplicateMonth is returned when a series repeats a month.
	ErrDuplicateMonth = errors.New("duplicate month key")
)

// Record is one validated raw row: a timestamp and a measure.
// Records with a zero At are ignored by the builders.
type Record struct {
	At    time.Time
	Value decimal.Decimal
}

// Count returns a Record that contributes 1 to its month.
func Count(at time.Time) Record {
	return Record{At: at, Value: decimal.NewFromInt(1)}
}

// Build groups records by UTC calendar month, sums each month and fills
// missing months between the first and last with zero-value points.
func Build(records []Record) analytics.Series {
	return FillGaps(BuildRaw(records))
}

// BuildRaw groups and sums records by UTC calendar month without filling gaps.
func BuildRaw(records []Record) analytics.Series {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.At.IsZero() {
			continue
		}
		key := FormatMonth(r.At)
		sums[key] = sums[key].Add(r.Value)
	}

	out := make(analytics.Series, 0, len(sums))
	for month, sum := range sums {
		out = append(out, analytics.TimePoint{Month: month, Value: sum.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// FillGaps returns a copy of a sorted series with a zero point inserted for
// every month missing between its first and last entry. Points with
// malformed keys are passed through unchanged.
func FillGaps(s analytics.Series) analytics.Series {
	if len(s) < 2 {
		return append(analytics.Series{}, s...)
	}
	out := make(analytics.Series, 0, len(s))
	out = append(out, s[0])
	for _, p := range s[1:] {
		prev, err := ParseMonth(out[len(out)-1].Month)
		cur, err2 := ParseMonth(p.Month)
		if err == nil && err2 == nil {
			for next := prev.AddDate(0, 1, 0); next.Before(cur); next = next.AddDate(0, 1, 0) {
				out = append(out, analytics.TimePoint{Month: FormatMonth(next)})
			}
		}
		out = append(out, p)
	}
	return out
}

// ParseMonth parses a "YYYY-MM" key into the first instant of that month, UTC.
func ParseMonth(key string) (time.Time, error) {
	if len(key) != len(MonthLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedMonth, key)
	}
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedMonth, key)
	}
	return t, nil
}

// FormatMonth returns the "YYYY-MM" key of t's UTC calendar month.
func FormatMonth(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// AddMonths adds offset calendar months to a month key.
func AddMonths(key string, offset int) (string, error) {
	t, err := ParseMonth(key)
	if err != nil {
		return "", err
	}
	return FormatMonth(t.AddDate(0, offset, 0)), nil
}

// Sorted returns a copy of s ordered ascending by month.
func Sorted(s analytics.Series) analytics.Series {
	out := append(analytics.Series{}, s...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Validate checks every month key and rejects duplicates.
func Validate(s analytics.Series) error {
	seen := make(map[string]struct{}, len(s))
	for _, p := range s {
		if _, err := ParseMonth(p.Month); err != nil {
			return err
		}
		if _, dup := seen[p.Month]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateMonth, p.Month)
		}
		seen[p.Month] = struct{}{}
	}
	return nil
}

// Prepare validates s and returns it sorted and gap-filled, ready for the
// forecasters.
func Prepare(s analytics.Series) (analytics.Series, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	return FillGaps(Sorted(s)), nil
}

// Exact returns the decimal expansion of x's binary value, so 1.005 is
// 1.00499999999999989341858963598497211933135986328125. x must be finite.
func Exact(x float64) decimal.Decimal {
	return decimal.NewFromFloatWithExponent(x, exactExponent)
}

// Fixed rounds the binary value of x to places decimals, halves away from
// zero. 1.005 gives 1.00 and 0.125 gives 0.13. Non-finite x is returned as is.
func Fixed(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return Exact(x).Round(places).InexactFloat64()
}
