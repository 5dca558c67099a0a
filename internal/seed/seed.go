// Package seed generates deterministic demo data for the workshop tables so
// the analytics endpoints have history to work with on a fresh install.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HerbHall/pitstop/internal/workshop"
)

// DefaultMonths is the history length generated when Options.Months is unset.
// Two full seasons let the Holt-Winters model engage.
const DefaultMonths = 24

// Options controls demo data generation.
type Options struct {
	Months int       // months of history ending with the month before Now
	Seed   uint64    // same seed, same data
	Now    time.Time // defaults to time.Now
}

// Result reports what a seeding run wrote.
type Result struct {
	Skipped       bool // data already present
	Customers     int
	Vehicles      int
	Products      int
	ServiceOrders int
	Movements     int
}

type demoProduct struct {
	sku, name, category, supplier string
	price                         int64
	monthlyOut                    int // mean outgoing units per month
}

type demoCustomer struct {
	name, customerType string
	weight             int // relative visit frequency
	brands             []string
}

type demoService struct {
	label    string // stored free text, normalised on read
	weight   int
	min, max int64 // cost range in rupiah
}

var demoProducts = []demoProduct{
	{"OIL-MTR-10W40", "Motul 7100 10W-40 1L", "oil", "Motul", 145_000, 40},
	{"OIL-SHL-AX7", "Shell Advance AX7 1L", "oil", "Shell", 78_000, 30},
	{"BRK-PAD-NSN", "Nissin brake pad set", "brakes", "Nissin", 185_000, 12},
	{"BRK-DSC-260", "Floating disc 260mm", "brakes", "Brembo", 1_250_000, 2},
	{"SPK-NGK-CR8E", "NGK CR8E spark plug", "ignition", "NGK", 42_000, 25},
	{"SPK-NGK-IRID", "NGK Iridium spark plug", "ignition", "NGK", 135_000, 10},
	{"CHN-DID-428", "DID 428 chain kit", "drivetrain", "DID", 420_000, 6},
	{"FLT-AIR-FERR", "Ferrox air filter", "filters", "Ferrox", 390_000, 4},
	{"FLT-OIL-HON", "Oil filter cartridge", "filters", "Honda", 35_000, 18},
	{"PST-KIT-62", "Forged piston kit 62mm", "engine", "Kitaco", 2_150_000, 1},
}

var demoCustomers = []demoCustomer{
	{"Budi Santoso", workshop.CustomerIndividual, 5, []string{"Yamaha"}},
	{"Rina Wijaya", workshop.CustomerIndividual, 3, []string{"Honda"}},
	{"Agus Pratama", workshop.CustomerIndividual, 2, []string{"Kawasaki"}},
	{"Dewi Lestari", workshop.CustomerIndividual, 2, []string{"Honda"}},
	{"Joko Susilo", workshop.CustomerIndividual, 1, []string{"Suzuki"}},
	{"Sari Handayani", workshop.CustomerIndividual, 1, []string{"Yamaha"}},
	{"Hendra Gunawan", workshop.CustomerIndividual, 1, []string{"Vespa"}},
	{"Klub Vespa Bandung", workshop.CustomerCommunity, 3, []string{"Vespa"}},
	{"Komunitas CB Jogja", workshop.CustomerCommunity, 2, []string{"Honda"}},
	{"Ninja Riders Surabaya", workshop.CustomerCommunity, 2, []string{"Kawasaki"}},
	{"Trail Adventure Bogor", workshop.CustomerCommunity, 1, []string{"Kawasaki", "Honda"}},
	{"Garuda Racing Team", workshop.CustomerRacingTeam, 3, []string{"Yamaha", "Honda"}},
	{"Sentul Speed Club", workshop.CustomerRacingTeam, 2, []string{"Yamaha"}},
	{"Walk-in", "", 2, nil},
}

var demoServices = []demoService{
	{"Tuning ECU", 5, 350_000, 900_000},
	{"Engine rebuild", 2, 2_500_000, 7_500_000},
	{"Race preparation", 1, 4_000_000, 12_000_000},
	{"Servis berkala", 6, 150_000, 400_000},
}

// Workshop populates the workshop tables with Months of history. It skips
// all writes when service orders already exist, so re-running is safe.
func Workshop(ctx context.Context, s *workshop.Store, opts Options) (Result, error) {
	if opts.Months <= 0 {
		opts.Months = DefaultMonths
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		return Result{}, err
	}
	if counts["service_orders"] > 0 {
		return Result{Skipped: true}, nil
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	var res Result

	productIDs := make([]string, len(demoProducts))
	for i, dp := range demoProducts {
		sup, err := s.UpsertSupplier(ctx, dp.supplier)
		if err != nil {
			return res, fmt.Errorf("seed supplier %s: %w", dp.supplier, err)
		}
		p := &workshop.Product{
			SKU:        dp.sku,
			Name:       dp.name,
			Category:   dp.category,
			SupplierID: sup.ID,
			Price:      decimal.NewFromInt(dp.price),
		}
		if err := s.UpsertProduct(ctx, p); err != nil {
			return res, fmt.Errorf("seed product %s: %w", dp.sku, err)
		}
		productIDs[i] = p.ID
		res.Products++
	}

	customerIDs := make([]string, len(demoCustomers))
	for i, dc := range demoCustomers {
		c, err := s.EnsureCustomer(ctx, dc.name, dc.customerType)
		if err != nil {
			return res, fmt.Errorf("seed customer %s: %w", dc.name, err)
		}
		customerIDs[i] = c.ID
		res.Customers++
		for _, brand := range dc.brands {
			if _, err := s.EnsureVehicle(ctx, c.ID, brand); err != nil {
				return res, fmt.Errorf("seed vehicle %s for %s: %w", brand, dc.name, err)
			}
			res.Vehicles++
		}
	}

	first := monthStart(opts.Now).AddDate(0, -opts.Months, 0)
	for m := range opts.Months {
		start := first.AddDate(0, m, 0)
		days := start.AddDate(0, 1, 0).Sub(start).Hours() / 24
		factor := demandFactor(start, m)

		orders := int(math.Round(18 * factor * (0.9 + 0.2*rng.Float64())))
		for range orders {
			ci := pickWeighted(rng, len(demoCustomers), func(i int) int { return demoCustomers[i].weight })
			si := pickWeighted(rng, len(demoServices), func(i int) int { return demoServices[i].weight })
			svc := demoServices[si]
			cost := svc.min + rng.Int64N(svc.max-svc.min+1)
			cost = cost / 5_000 * 5_000

			o := &workshop.ServiceOrder{
				CustomerID:    customerIDs[ci],
				ServiceType:   svc.label,
				ScheduledDate: start.Add(time.Duration(rng.Float64()*days*24) * time.Hour),
				TotalCost:     decimal.NewNullDecimal(decimal.NewFromInt(cost)),
			}
			if err := s.CreateServiceOrder(ctx, o); err != nil {
				return res, fmt.Errorf("seed service order: %w", err)
			}
			res.ServiceOrders++
		}

		for i, dp := range demoProducts {
			out := int64(math.Round(float64(dp.monthlyOut) * factor * (0.8 + 0.4*rng.Float64())))
			if out <= 0 {
				continue
			}
			restock := &workshop.InventoryFact{
				ProductID:       productIDs[i],
				Type:            workshop.MovementIn,
				Quantity:        out + 2,
				Amount:          decimal.NewFromInt(dp.price * (out + 2) * 7 / 10),
				TransactionDate: start.Add(8 * time.Hour),
			}
			sale := &workshop.InventoryFact{
				ProductID:       productIDs[i],
				Type:            workshop.MovementOut,
				Quantity:        out,
				Amount:          decimal.NewFromInt(dp.price * out),
				TransactionDate: start.Add(time.Duration(24+rng.Float64()*(days-2)*24) * time.Hour),
			}
			for _, f := range []*workshop.InventoryFact{restock, sale} {
				if err := s.RecordMovement(ctx, f); err != nil {
					return res, fmt.Errorf("seed movement %s: %w", dp.sku, err)
				}
				res.Movements++
			}
		}
	}
	return res, nil
}

// demandFactor is a yearly cycle peaking mid-year plus a slow upward trend.
func demandFactor(month time.Time, index int) float64 {
	phase := 2 * math.Pi * float64(month.Month()-1) / 12
	return (1 - 0.3*math.Cos(phase)) * (1 + 0.015*float64(index))
}

func pickWeighted(rng *rand.Rand, n int, weight func(int) int) int {
	total := 0
	for i := range n {
		total += weight(i)
	}
	r := rng.IntN(total)
	for i := range n {
		r -= weight(i)
		if r < 0 {
			return i
		}
	}
	return n - 1
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
