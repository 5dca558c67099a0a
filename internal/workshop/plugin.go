package workshop

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/pkg/plugin"
	"github.com/HerbHall/pitstop/pkg/roles"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin        = (*Module)(nil)
	_ plugin.HealthChecker = (*Module)(nil)
)

// Module owns the workshop tables and serves them to other modules.
type Module struct {
	logger *zap.Logger
	store  *Store
}

// New creates a new workshop module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "workshop",
		Version:     "0.1.0",
		Description: "Workshop transactional data: parts, customers, service orders",
		Roles:       []string{roles.RoleWorkshopData},
		Required:    true,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	if deps.Store == nil {
		return fmt.Errorf("workshop module requires a store")
	}
	s, err := NewStore(ctx, deps.Store)
	if err != nil {
		return err
	}
	m.store = s
	m.logger.Info("workshop module initialized")
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error { return nil }

// Store returns the module's data store. Nil before Init.
func (m *Module) Store() *Store {
	return m.store
}

// Health implements plugin.HealthChecker.
func (m *Module) Health(ctx context.Context) plugin.HealthStatus {
	if m.store == nil {
		return plugin.HealthStatus{Status: "unhealthy", Message: "store not initialized"}
	}
	counts, err := m.store.Counts(ctx)
	if err != nil {
		return plugin.HealthStatus{Status: "degraded", Message: err.Error()}
	}
	details := make(map[string]string, len(counts))
	for k, v := range counts {
		details[k] = strconv.Itoa(v)
	}
	return plugin.HealthStatus{Status: "healthy", Details: details}
}
