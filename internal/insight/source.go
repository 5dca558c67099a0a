package insight

import (
	"context"

	"github.com/HerbHall/pitstop/internal/workshop"
)

// DataSource supplies the raw workshop rows the analytics aggregate.
// *workshop.Store satisfies it.
type DataSource interface {
	ServiceRows(ctx context.Context) ([]workshop.ServiceRow, error)
	PartsRows(ctx context.Context) ([]workshop.PartsRow, error)
	VisitRows(ctx context.Context) ([]workshop.VisitRow, error)
	CustomerStats(ctx context.Context) ([]workshop.CustomerStats, error)
	VehicleRows(ctx context.Context) ([]workshop.VehicleRow, error)
}

var _ DataSource = (*workshop.Store)(nil)

// storeProvider is implemented by the workshop module.
type storeProvider interface {
	Store() *workshop.Store
}
