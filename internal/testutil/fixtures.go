// Package testutil provides shared fixtures for Pitstop tests.
package testutil

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HerbHall/pitstop/internal/workshop"
)

// Month returns midday on the 15th of the given month in UTC.
func Month(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
}

// ServiceRows returns counts[i] orders in the i-th month after start, each
// costing cost and typed serviceType.
func ServiceRows(start time.Time, counts []int, serviceType string, cost int64) []workshop.ServiceRow {
	var rows []workshop.ServiceRow
	for i, n := range counts {
		at := start.AddDate(0, i, 0)
		for range n {
			rows = append(rows, workshop.ServiceRow{
				ScheduledAt: at,
				ServiceType: serviceType,
				TotalCost:   decimal.NewFromInt(cost),
			})
		}
	}
	return rows
}

// PartsRows returns one outgoing movement of qty[i] units in the i-th month
// after start.
func PartsRows(start time.Time, category string, qty []int64) []workshop.PartsRow {
	rows := make([]workshop.PartsRow, 0, len(qty))
	for i, q := range qty {
		rows = append(rows, workshop.PartsRow{
			At:       start.AddDate(0, i, 0),
			Category: category,
			Quantity: decimal.NewFromInt(q),
			Amount:   decimal.NewFromInt(q * 10_000),
		})
	}
	return rows
}

// FakeSource is an in-memory workshop data source. A non-nil Err is
// returned by every query.
type FakeSource struct {
	Services []workshop.ServiceRow
	Parts    []workshop.PartsRow
	Visits   []workshop.VisitRow
	Stats    []workshop.CustomerStats
	Vehicles []workshop.VehicleRow
	Err      error
}

func (f *FakeSource) ServiceRows(context.Context) ([]workshop.ServiceRow, error) {
	return f.Services, f.Err
}

func (f *FakeSource) PartsRows(context.Context) ([]workshop.PartsRow, error) {
	return f.Parts, f.Err
}

func (f *FakeSource) VisitRows(context.Context) ([]workshop.VisitRow, error) {
	return f.Visits, f.Err
}

func (f *FakeSource) CustomerStats(context.Context) ([]workshop.CustomerStats, error) {
	return f.Stats, f.Err
}

func (f *FakeSource) VehicleRows(context.Context) ([]workshop.VehicleRow, error) {
	return f.Vehicles, f.Err
}
