package seed

import (
	"context"
	"testing"
	"time"

	"github.com/HerbHall/pitstop/internal/testutil"
	"github.com/HerbHall/pitstop/internal/workshop"
)

func newWorkshop(t *testing.T) *workshop.Store {
	t.Helper()
	ws, err := workshop.NewStore(context.Background(), testutil.NewStore(t))
	if err != nil {
		t.Fatalf("workshop.NewStore: %v", err)
	}
	return ws
}

var fixedNow = time.Date(2025, 7, 20, 10, 0, 0, 0, time.UTC)

func TestWorkshop_Success(t *testing.T) {
	ctx := context.Background()
	ws := newWorkshop(t)

	res, err := Workshop(ctx, ws, Options{Months: 12, Seed: 7, Now: fixedNow})
	if err != nil {
		t.Fatalf("Workshop: %v", err)
	}
	if res.Skipped {
		t.Fatal("first run reported Skipped")
	}
	if res.Products != len(demoProducts) || res.Customers != len(demoCustomers) {
		t.Errorf("result = %+v", res)
	}
	if res.ServiceOrders == 0 || res.Movements == 0 {
		t.Fatalf("expected orders and movements, got %+v", res)
	}

	rows, err := ws.ServiceRows(ctx)
	if err != nil {
		t.Fatalf("ServiceRows: %v", err)
	}
	if len(rows) != res.ServiceOrders {
		t.Errorf("ServiceRows = %d, want %d", len(rows), res.ServiceOrders)
	}
	first := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for _, r := range rows {
		if r.ScheduledAt.Before(first) || !r.ScheduledAt.Before(end) {
			t.Fatalf("order at %v outside [%v, %v)", r.ScheduledAt, first, end)
		}
		if !r.TotalCost.IsPositive() {
			t.Fatalf("order without cost: %+v", r)
		}
	}

	counts, err := ws.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["suppliers"] == 0 || counts["inventory_facts"] != res.Movements {
		t.Errorf("counts = %v", counts)
	}
	if res.Vehicles != 15 || counts["vehicles"] != res.Vehicles {
		t.Errorf("vehicles = %d, counted %d, want 15", res.Vehicles, counts["vehicles"])
	}

	vehicles, err := ws.VehicleRows(ctx)
	if err != nil {
		t.Fatalf("VehicleRows: %v", err)
	}
	brands := make(map[string]int)
	for _, v := range vehicles {
		brands[v.Brand]++
	}
	if brands["Honda"] != 5 || brands["Yamaha"] != 4 {
		t.Errorf("brands = %v", brands)
	}
}

func TestWorkshop_CoversEveryMonth(t *testing.T) {
	ctx := context.Background()
	ws := newWorkshop(t)

	if _, err := Workshop(ctx, ws, Options{Months: 24, Seed: 1, Now: fixedNow}); err != nil {
		t.Fatalf("Workshop: %v", err)
	}
	rows, err := ws.ServiceRows(ctx)
	if err != nil {
		t.Fatalf("ServiceRows: %v", err)
	}
	months := make(map[string]bool)
	types := make(map[string]bool)
	for _, r := range rows {
		months[r.ScheduledAt.Format("2006-01")] = true
		types[r.ServiceType] = true
	}
	if len(months) != 24 {
		t.Errorf("distinct months = %d, want 24", len(months))
	}
	if len(types) < 3 {
		t.Errorf("service types = %v, want at least 3 normalised types", types)
	}

	parts, err := ws.PartsRows(ctx)
	if err != nil {
		t.Fatalf("PartsRows: %v", err)
	}
	if len(parts) == 0 {
		t.Fatal("expected outgoing parts")
	}
}

func TestWorkshop_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, b := newWorkshop(t), newWorkshop(t)
	opts := Options{Months: 6, Seed: 42, Now: fixedNow}

	if _, err := Workshop(ctx, a, opts); err != nil {
		t.Fatalf("Workshop(a): %v", err)
	}
	if _, err := Workshop(ctx, b, opts); err != nil {
		t.Fatalf("Workshop(b): %v", err)
	}

	ra, _ := a.ServiceRows(ctx)
	rb, _ := b.ServiceRows(ctx)
	if len(ra) != len(rb) {
		t.Fatalf("row counts differ: %d vs %d", len(ra), len(rb))
	}
	seen := make(map[string]int, len(ra))
	for _, r := range ra {
		seen[rowKey(r)]++
	}
	for _, r := range rb {
		seen[rowKey(r)]--
	}
	for k, n := range seen {
		if n != 0 {
			t.Errorf("row %s differs between runs (%+d)", k, n)
		}
	}
}

func rowKey(r workshop.ServiceRow) string {
	return r.ScheduledAt.UTC().Format(time.RFC3339) + "|" + r.ServiceType + "|" + r.TotalCost.String()
}

func TestWorkshop_Idempotent(t *testing.T) {
	ctx := context.Background()
	ws := newWorkshop(t)

	first, err := Workshop(ctx, ws, Options{Months: 3, Now: fixedNow})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Workshop(ctx, ws, Options{Months: 3, Now: fixedNow})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Skipped {
		t.Error("second run should be skipped")
	}

	counts, _ := ws.Counts(ctx)
	if counts["service_orders"] != first.ServiceOrders {
		t.Errorf("service_orders = %d after re-run, want %d", counts["service_orders"], first.ServiceOrders)
	}
}

func TestDemandFactor_PeaksMidYear(t *testing.T) {
	jan := demandFactor(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	jul := demandFactor(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 0)
	if jul <= jan {
		t.Errorf("July factor %v should exceed January %v", jul, jan)
	}
}
