package workshop

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HerbHall/pitstop/pkg/plugin"
)

// Store provides persistence for workshop records.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store and runs workshop migrations.
func NewStore(ctx context.Context, store plugin.Store) (*Store, error) {
	if err := store.Migrate(ctx, "workshop", migrations()); err != nil {
		return nil, fmt.Errorf("workshop migrations: %w", err)
	}
	return &Store{db: store.DB()}, nil
}

// UpsertSupplier returns the supplier with the given name, creating it if needed.
func (s *Store) UpsertSupplier(ctx context.Context, name string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO workshop_suppliers (id, name) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		uuid.New().String(), name)
	if err != nil {
		return nil, fmt.Errorf("upsert supplier: %w", err)
	}
	var sup Supplier
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name FROM workshop_suppliers WHERE name = ?`, name).Scan(&sup.ID, &sup.Name)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &sup, nil
}

// UpsertProduct inserts a product or updates the existing one with the same
// SKU. p.ID is set to the stored ID.
func (s *Store) UpsertProduct(ctx context.Context, p *Product) error {
	if p.SKU == "" {
		return fmt.Errorf("product sku is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	var supplierID sql.NullString
	if p.SupplierID != "" {
		supplierID = sql.NullString{String: p.SupplierID, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workshop_products (id, sku, name, category, supplier_id, price, stock)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sku) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			supplier_id = excluded.supplier_id,
			price = excluded.price,
			stock = excluded.stock`,
		p.ID, p.SKU, p.Name, p.Category, supplierID, p.Price.String(), p.Stock,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return s.db.QueryRowContext(ctx,
		`SELECT id FROM workshop_products WHERE sku = ?`, p.SKU).Scan(&p.ID)
}

// GetProductBySKU returns a product by SKU.
func (s *Store) GetProductBySKU(ctx context.Context, sku string) (*Product, error) {
	var p Product
	var supplierID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, sku, name, category, supplier_id, price, stock
		FROM workshop_products WHERE sku = ?`, sku,
	).Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &supplierID, &p.Price, &p.Stock)
	if err != nil {
		return nil, err
	}
	p.SupplierID = supplierID.String
	return &p, nil
}

// EnsureCustomer returns the customer with the given name, creating it with
// customerType if needed.
func (s *Store) EnsureCustomer(ctx context.Context, name, customerType string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	var ct sql.NullString
	if customerType != "" {
		ct = sql.NullString{String: strings.ToUpper(customerType), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workshop_customers (id, name, customer_type, created_at)
		VALUES (?, ?, ?, ?) ON CONFLICT(name) DO NOTHING`,
		uuid.New().String(), name, ct, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("ensure customer: %w", err)
	}

	var c Customer
	var stored sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name, customer_type, created_at FROM workshop_customers WHERE name = ?`, name,
	).Scan(&c.ID, &c.Name, &stored, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c.CustomerType = stored.String
	return &c, nil
}

// EnsureVehicle records that the customer rides a motorcycle of brand.
// Brands are stored trimmed; one row is kept per customer and brand.
func (s *Store) EnsureVehicle(ctx context.Context, customerID, brand string) (*Vehicle, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, fmt.Errorf("vehicle brand is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workshop_vehicles (id, customer_id, brand)
		VALUES (?, ?, ?) ON CONFLICT(customer_id, brand) DO NOTHING`,
		uuid.New().String(), customerID, brand)
	if err != nil {
		return nil, fmt.Errorf("ensure vehicle: %w", err)
	}

	v := Vehicle{CustomerID: customerID, Brand: brand}
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM workshop_vehicles WHERE customer_id = ? AND brand = ?`, customerID, brand,
	).Scan(&v.ID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// CreateServiceOrder inserts a service order. o.ID is generated when empty.
func (s *Store) CreateServiceOrder(ctx context.Context, o *ServiceOrder) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	var scheduled sql.NullTime
	if !o.ScheduledDate.IsZero() {
		scheduled = sql.NullTime{Time: o.ScheduledDate.UTC(), Valid: true}
	}
	var cost sql.NullString
	if o.TotalCost.Valid {
		cost = sql.NullString{String: o.TotalCost.Decimal.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workshop_service_orders (id, customer_id, service_type, scheduled_date, total_cost)
		VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.CustomerID, o.ServiceType, scheduled, cost,
	)
	if err != nil {
		return fmt.Errorf("create service order: %w", err)
	}
	return nil
}

// RecordMovement inserts an inventory fact and adjusts the product's stock.
func (s *Store) RecordMovement(ctx context.Context, f *InventoryFact) error {
	var delta int64
	switch f.Type {
	case MovementIn:
		delta = f.Quantity
	case MovementOut:
		delta = -f.Quantity
	default:
		return fmt.Errorf("invalid movement type %q", f.Type)
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workshop_inventory_facts (id, product_id, type, quantity, amount, transaction_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.ProductID, f.Type, f.Quantity, f.Amount.String(), f.TransactionDate.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record movement: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE workshop_products SET stock = stock + ? WHERE id = ?`, delta, f.ProductID); err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return tx.Commit()
}

// ServiceRows returns every scheduled service order. Unscheduled orders are
// skipped and missing costs read as zero.
func (s *Store) ServiceRows(ctx context.Context) ([]ServiceRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scheduled_date, service_type, total_cost
		FROM workshop_service_orders
		WHERE scheduled_date IS NOT NULL
		ORDER BY scheduled_date`)
	if err != nil {
		return nil, fmt.Errorf("query service rows: %w", err)
	}
	defer rows.Close()

	var out []ServiceRow
	for rows.Next() {
		var r ServiceRow
		var cost decimal.NullDecimal
		if err := rows.Scan(&r.ScheduledAt, &r.Label, &cost); err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		r.ServiceType = NormalizeServiceType(r.Label)
		if cost.Valid {
			r.TotalCost = cost.Decimal
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PartsRows returns every outgoing inventory movement with its product category.
func (s *Store) PartsRows(ctx context.Context) ([]PartsRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.transaction_date, p.category, f.quantity, f.amount
		FROM workshop_inventory_facts f
		JOIN workshop_products p ON f.product_id = p.id
		WHERE f.type = ?
		ORDER BY f.transaction_date`, MovementOut)
	if err != nil {
		return nil, fmt.Errorf("query parts rows: %w", err)
	}
	defer rows.Close()

	var out []PartsRow
	for rows.Next() {
		var r PartsRow
		var qty int64
		if err := rows.Scan(&r.At, &r.Category, &qty, &r.Amount); err != nil {
			return nil, fmt.Errorf("scan parts row: %w", err)
		}
		r.Quantity = decimal.NewFromInt(qty)
		out = append(out, r)
	}
	return out, rows.Err()
}

// VisitRows returns one row per scheduled service order with the customer's
// normalised type.
func (s *Store) VisitRows(ctx context.Context) ([]VisitRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.scheduled_date, c.id, c.customer_type
		FROM workshop_service_orders o
		JOIN workshop_customers c ON o.customer_id = c.id
		WHERE o.scheduled_date IS NOT NULL
		ORDER BY o.scheduled_date`)
	if err != nil {
		return nil, fmt.Errorf("query visit rows: %w", err)
	}
	defer rows.Close()

	var out []VisitRow
	for rows.Next() {
		var r VisitRow
		var ct sql.NullString
		if err := rows.Scan(&r.At, &r.CustomerID, &ct); err != nil {
			return nil, fmt.Errorf("scan visit row: %w", err)
		}
		r.CustomerType = NormalizeCustomerType(ct.String)
		out = append(out, r)
	}
	return out, rows.Err()
}

// VehicleRows returns every customer and vehicle brand pair.
func (s *Store) VehicleRows(ctx context.Context) ([]VehicleRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT customer_id, brand FROM workshop_vehicles
		WHERE brand <> ''
		ORDER BY brand, customer_id`)
	if err != nil {
		return nil, fmt.Errorf("query vehicle rows: %w", err)
	}
	defer rows.Close()

	var out []VehicleRow
	for rows.Next() {
		var r VehicleRow
		if err := rows.Scan(&r.CustomerID, &r.Brand); err != nil {
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CustomerStats returns the order count and spend of every customer,
// including customers with no orders.
func (s *Store) CustomerStats(ctx context.Context) ([]CustomerStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.customer_type, o.id, o.total_cost
		FROM workshop_customers c
		LEFT JOIN workshop_service_orders o ON o.customer_id = c.id
		ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("query customer stats: %w", err)
	}
	defer rows.Close()

	var out []CustomerStats
	index := make(map[string]int)
	for rows.Next() {
		var id string
		var ct, orderID sql.NullString
		var cost decimal.NullDecimal
		if err := rows.Scan(&id, &ct, &orderID, &cost); err != nil {
			return nil, fmt.Errorf("scan customer stats: %w", err)
		}
		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, CustomerStats{CustomerID: id, CustomerType: NormalizeCustomerType(ct.String)})
		}
		if !orderID.Valid {
			continue
		}
		out[i].Orders++
		if cost.Valid {
			out[i].Revenue = out[i].Revenue.Add(cost.Decimal)
		}
	}
	return out, rows.Err()
}

// Counts returns the number of rows in each workshop table.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	tables := map[string]string{
		"suppliers":       "workshop_suppliers",
		"products":        "workshop_products",
		"customers":       "workshop_customers",
		"vehicles":        "workshop_vehicles",
		"service_orders":  "workshop_service_orders",
		"inventory_facts": "workshop_inventory_facts",
	}
	out := make(map[string]int, len(tables))
	for key, table := range tables {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[key] = n
	}
	return out, nil
}
