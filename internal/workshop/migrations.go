package workshop

import (
	"database/sql"

	"github.com/HerbHall/pitstop/pkg/plugin"
)

// migrations returns the workshop module's database migrations.
func migrations() []plugin.Migration {
	return []plugin.Migration{
		{
			Version:     1,
			Description: "create workshop tables",
			Up: func(tx *sql.Tx) error {
				stmts := []string{
					`CREATE TABLE IF NOT EXISTS workshop_suppliers (
						id   TEXT PRIMARY KEY,
						name TEXT NOT NULL UNIQUE
					)`,
					`CREATE TABLE IF NOT EXISTS workshop_products (
						id          TEXT PRIMARY KEY,
						sku         TEXT NOT NULL UNIQUE,
						name        TEXT NOT NULL,
						category    TEXT NOT NULL DEFAULT '',
						supplier_id TEXT REFERENCES workshop_suppliers(id) ON DELETE SET NULL,
						price       TEXT NOT NULL DEFAULT '0',
						stock       INTEGER NOT NULL DEFAULT 0
					)`,
					`CREATE TABLE IF NOT EXISTS workshop_customers (
						id            TEXT PRIMARY KEY,
						name          TEXT NOT NULL UNIQUE,
						customer_type TEXT,
						created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE TABLE IF NOT EXISTS workshop_service_orders (
						id             TEXT PRIMARY KEY,
						customer_id    TEXT NOT NULL REFERENCES workshop_customers(id) ON DELETE CASCADE,
						service_type   TEXT NOT NULL DEFAULT '',
						scheduled_date DATETIME,
						total_cost     TEXT
					)`,
					`CREATE INDEX IF NOT EXISTS idx_workshop_orders_scheduled ON workshop_service_orders(scheduled_date)`,
					`CREATE INDEX IF NOT EXISTS idx_workshop_orders_customer ON workshop_service_orders(customer_id)`,
					`CREATE TABLE IF NOT EXISTS workshop_inventory_facts (
						id               TEXT PRIMARY KEY,
						product_id       TEXT NOT NULL REFERENCES workshop_products(id) ON DELETE CASCADE,
						type             TEXT NOT NULL CHECK (type IN ('IN', 'OUT')),
						quantity         INTEGER NOT NULL,
						amount           TEXT NOT NULL DEFAULT '0',
						transaction_date DATETIME NOT NULL
					)`,
					`CREATE INDEX IF NOT EXISTS idx_workshop_facts_date ON workshop_inventory_facts(transaction_date)`,
				}
				for _, s := range stmts {
					if _, err := tx.Exec(s); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Version:     2,
			Description: "create vehicles table",
			Up: func(tx *sql.Tx) error {
				stmts := []string{
					`CREATE TABLE IF NOT EXISTS workshop_vehicles (
						id          TEXT PRIMARY KEY,
						customer_id TEXT NOT NULL REFERENCES workshop_customers(id) ON DELETE CASCADE,
						brand       TEXT NOT NULL,
						UNIQUE (customer_id, brand)
					)`,
					`CREATE INDEX IF NOT EXISTS idx_workshop_vehicles_brand ON workshop_vehicles(brand)`,
				}
				for _, s := range stmts {
					if _, err := tx.Exec(s); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
