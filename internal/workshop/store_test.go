package workshop

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/store"
	"github.com/HerbHall/pitstop/pkg/plugin"
	"github.com/HerbHall/pitstop/pkg/plugin/plugintest"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(context.Background(), db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func testDeps(t *testing.T, name string) plugin.Dependencies {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return plugin.Dependencies{Logger: zap.NewNop().Named(name), Store: db}
}

func TestContract(t *testing.T) {
	plugintest.TestPluginContract(t, func() plugin.Plugin { return New() }, testDeps)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func mustCustomer(t *testing.T, s *Store, name, ct string) *Customer {
	t.Helper()
	c, err := s.EnsureCustomer(context.Background(), name, ct)
	if err != nil {
		t.Fatalf("EnsureCustomer(%q) error = %v", name, err)
	}
	return c
}

func mustOrder(t *testing.T, s *Store, customerID, serviceType string, at time.Time, cost string) {
	t.Helper()
	o := &ServiceOrder{CustomerID: customerID, ServiceType: serviceType, ScheduledDate: at}
	if cost != "" {
		o.TotalCost = decimal.NewNullDecimal(decimal.RequireFromString(cost))
	}
	if err := s.CreateServiceOrder(context.Background(), o); err != nil {
		t.Fatalf("CreateServiceOrder() error = %v", err)
	}
}

func TestUpsertSupplier_Idempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a, err := s.UpsertSupplier(ctx, " Brembo ")
	if err != nil {
		t.Fatalf("UpsertSupplier() error = %v", err)
	}
	b, err := s.UpsertSupplier(ctx, "Brembo")
	if err != nil {
		t.Fatalf("UpsertSupplier() error = %v", err)
	}
	if a.ID != b.ID {
		t.Errorf("second upsert returned id %q, want %q", b.ID, a.ID)
	}
	if _, err := s.UpsertSupplier(ctx, "  "); err == nil {
		t.Error("expected error for blank supplier name")
	}
}

func TestUpsertProduct_UpdatesBySKU(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p := &Product{SKU: "BRK-01", Name: "Brake pad", Category: "Brakes", Price: decimal.RequireFromString("125000"), Stock: 4}
	if err := s.UpsertProduct(ctx, p); err != nil {
		t.Fatalf("UpsertProduct() error = %v", err)
	}
	firstID := p.ID

	again := &Product{SKU: "BRK-01", Name: "Brake pad (front)", Category: "Brakes", Price: decimal.RequireFromString("130000.50"), Stock: 9}
	if err := s.UpsertProduct(ctx, again); err != nil {
		t.Fatalf("UpsertProduct() error = %v", err)
	}
	if again.ID != firstID {
		t.Errorf("ID = %q, want existing %q", again.ID, firstID)
	}

	got, err := s.GetProductBySKU(ctx, "BRK-01")
	if err != nil {
		t.Fatalf("GetProductBySKU() error = %v", err)
	}
	if got.Name != "Brake pad (front)" || got.Stock != 9 {
		t.Errorf("got %+v, want updated name and stock", got)
	}
	if !got.Price.Equal(decimal.RequireFromString("130000.5")) {
		t.Errorf("Price = %s, want 130000.5", got.Price)
	}
}

func TestRecordMovement_AdjustsStock(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p := &Product{SKU: "OIL-1", Name: "Oil", Category: "Lubricants", Stock: 10}
	if err := s.UpsertProduct(ctx, p); err != nil {
		t.Fatalf("UpsertProduct() error = %v", err)
	}
	moves := []*InventoryFact{
		{ProductID: p.ID, Type: MovementOut, Quantity: 3, Amount: decimal.NewFromInt(150), TransactionDate: date(2025, 1, 4)},
		{ProductID: p.ID, Type: MovementIn, Quantity: 5, TransactionDate: date(2025, 1, 9)},
	}
	for _, f := range moves {
		if err := s.RecordMovement(ctx, f); err != nil {
			t.Fatalf("RecordMovement() error = %v", err)
		}
	}
	if err := s.RecordMovement(ctx, &InventoryFact{ProductID: p.ID, Type: "LOST", Quantity: 1}); err == nil {
		t.Error("expected error for invalid movement type")
	}

	got, err := s.GetProductBySKU(ctx, "OIL-1")
	if err != nil {
		t.Fatalf("GetProductBySKU() error = %v", err)
	}
	if got.Stock != 12 {
		t.Errorf("Stock = %d, want 12", got.Stock)
	}

	parts, err := s.PartsRows(ctx)
	if err != nil {
		t.Fatalf("PartsRows() error = %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("PartsRows() returned %d rows, want 1 (OUT only)", len(parts))
	}
	if parts[0].Category != "Lubricants" || !parts[0].Quantity.Equal(decimal.NewFromInt(3)) {
		t.Errorf("parts row = %+v", parts[0])
	}
	if !parts[0].At.Equal(date(2025, 1, 4)) {
		t.Errorf("At = %v, want %v", parts[0].At, date(2025, 1, 4))
	}
}

func TestServiceRows_NormalizesAndDefaultsCost(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	c := mustCustomer(t, s, "Budi", "individu")

	mustOrder(t, s, c.ID, "Full ENGINE overhaul", date(2025, 2, 1), "1500000.25")
	mustOrder(t, s, c.ID, "Dyno tuning", date(2025, 1, 15), "")
	// Unscheduled orders are not part of any month.
	if err := s.CreateServiceOrder(ctx, &ServiceOrder{CustomerID: c.ID, ServiceType: "wash"}); err != nil {
		t.Fatalf("CreateServiceOrder() error = %v", err)
	}

	rows, err := s.ServiceRows(ctx)
	if err != nil {
		t.Fatalf("ServiceRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ServiceRows() returned %d rows, want 2", len(rows))
	}
	if rows[0].ServiceType != ServiceTuning || !rows[0].TotalCost.IsZero() {
		t.Errorf("rows[0] = %+v, want tuning with zero cost", rows[0])
	}
	if rows[1].ServiceType != ServiceEngineRebuild || !rows[1].TotalCost.Equal(decimal.RequireFromString("1500000.25")) {
		t.Errorf("rows[1] = %+v, want engine_rebuild costing 1500000.25", rows[1])
	}
	if rows[1].Label != "Full ENGINE overhaul" {
		t.Errorf("rows[1].Label = %q, want the recorded text", rows[1].Label)
	}
}

func TestEnsureVehicle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	budi := mustCustomer(t, s, "Budi", "individu")
	team := mustCustomer(t, s, "Speed Team", "racing_team")

	first, err := s.EnsureVehicle(ctx, budi.ID, " Yamaha ")
	if err != nil {
		t.Fatalf("EnsureVehicle() error = %v", err)
	}
	again, err := s.EnsureVehicle(ctx, budi.ID, "Yamaha")
	if err != nil {
		t.Fatalf("EnsureVehicle() second call error = %v", err)
	}
	if first.ID != again.ID {
		t.Errorf("EnsureVehicle() created a duplicate: %q != %q", first.ID, again.ID)
	}
	if _, err := s.EnsureVehicle(ctx, team.ID, "Honda"); err != nil {
		t.Fatalf("EnsureVehicle(Honda) error = %v", err)
	}
	if _, err := s.EnsureVehicle(ctx, team.ID, "  "); err == nil {
		t.Error("EnsureVehicle() with a blank brand should fail")
	}

	rows, err := s.VehicleRows(ctx)
	if err != nil {
		t.Fatalf("VehicleRows() error = %v", err)
	}
	want := []VehicleRow{{CustomerID: team.ID, Brand: "Honda"}, {CustomerID: budi.ID, Brand: "Yamaha"}}
	if len(rows) != len(want) {
		t.Fatalf("VehicleRows() = %+v, want %+v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts["vehicles"] != 2 {
		t.Errorf("counts[vehicles] = %d, want 2", counts["vehicles"])
	}
}

func TestVisitRowsAndCustomerStats(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	team := mustCustomer(t, s, "Speed Team", "racing_team")
	walkIn := mustCustomer(t, s, "Walk-in", "")
	mustCustomer(t, s, "Idle", "KOMUNITAS")

	mustOrder(t, s, team.ID, "race prep", date(2025, 3, 1), "100")
	mustOrder(t, s, team.ID, "race prep", date(2025, 3, 20), "250.50")
	mustOrder(t, s, walkIn.ID, "oil change", date(2025, 4, 2), "")

	visits, err := s.VisitRows(ctx)
	if err != nil {
		t.Fatalf("VisitRows() error = %v", err)
	}
	if len(visits) != 3 {
		t.Fatalf("VisitRows() returned %d rows, want 3", len(visits))
	}
	if visits[0].CustomerType != CustomerRacingTeam {
		t.Errorf("visits[0].CustomerType = %q, want %q", visits[0].CustomerType, CustomerRacingTeam)
	}
	if visits[2].CustomerType != CustomerUnknown {
		t.Errorf("visits[2].CustomerType = %q, want %q", visits[2].CustomerType, CustomerUnknown)
	}

	stats, err := s.CustomerStats(ctx)
	if err != nil {
		t.Fatalf("CustomerStats() error = %v", err)
	}
	byID := make(map[string]CustomerStats, len(stats))
	for _, cs := range stats {
		byID[cs.CustomerID] = cs
	}
	if len(byID) != 3 {
		t.Fatalf("CustomerStats() returned %d customers, want 3", len(byID))
	}
	if got := byID[team.ID]; got.Orders != 2 || !got.Revenue.Equal(decimal.RequireFromString("350.5")) {
		t.Errorf("team stats = %+v, want 2 orders totalling 350.5", got)
	}
	if got := byID[walkIn.ID]; got.Orders != 1 || !got.Revenue.IsZero() {
		t.Errorf("walk-in stats = %+v, want 1 order and zero revenue", got)
	}
}

func TestCounts(t *testing.T) {
	s := testStore(t)
	mustCustomer(t, s, "A", "")
	counts, err := s.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts["customers"] != 1 || counts["service_orders"] != 0 {
		t.Errorf("Counts() = %v", counts)
	}
}
