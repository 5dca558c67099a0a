// Package importer loads workshop spreadsheets (stock lists and service
// logs) into the workshop tables.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/workshop"
)

// Kinds of spreadsheet the importer understands.
const (
	KindStock    = "stock"
	KindServices = "services"
)

// Defaults applied to incomplete stock rows.
const (
	DefaultSupplier    = "DORMAN"
	DefaultProductName = "Unknown Product"
	DefaultCategory    = "Sparepart"
)

// ErrUnknownKind is returned for a kind other than stock or services.
var ErrUnknownKind = errors.New("unknown import kind")

// ErrMissingColumns is returned when a services sheet lacks a required header.
var ErrMissingColumns = errors.New("missing required columns")

// RowError records why one spreadsheet row was rejected.
type RowError struct {
	Row int    `json:"row"` // 1-based, as shown in the spreadsheet
	Err string `json:"error"`
}

// Report summarises an import run.
type Report struct {
	Sheet    string     `json:"sheet"`
	Rows     int        `json:"rows"`
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

func (r *Report) fail(row int, err error) {
	r.Errors = append(r.Errors, RowError{Row: row, Err: err.Error()})
}

// Importer writes spreadsheet rows through the workshop store.
type Importer struct {
	store  *workshop.Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates an Importer.
func New(store *workshop.Store, logger *zap.Logger) *Importer {
	return &Importer{store: store, logger: logger, now: time.Now}
}

// Import reads the first sheet of the workbook in r as the given kind.
func (im *Importer) Import(ctx context.Context, kind string, r io.Reader) (Report, error) {
	switch kind {
	case KindStock:
		return im.ImportStock(ctx, r)
	case KindServices:
		return im.ImportServices(ctx, r)
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func firstSheet(r io.Reader) (string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return sheet, rows, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ImportStock reads a stock list laid out as No, Brand, Part number, Name,
// Qty, (unused), Unit price. Rows whose first cell is not a number are
// headers or notes and are skipped. Every row with a positive quantity is
// recorded as an incoming movement.
func (im *Importer) ImportStock(ctx context.Context, r io.Reader) (Report, error) {
	sheet, rows, err := firstSheet(r)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Sheet: sheet, Rows: len(rows)}

	for i, row := range rows {
		line := i + 1
		if _, err := strconv.ParseFloat(cell(row, 0), 64); err != nil || cell(row, 2) == "" {
			rep.Skipped++
			continue
		}
		if err := im.stockRow(ctx, row); err != nil {
			rep.fail(line, err)
			im.logger.Warn("stock row rejected", zap.Int("row", line), zap.Error(err))
			continue
		}
		rep.Imported++
	}

	im.logger.Info("stock import finished",
		zap.String("sheet", sheet),
		zap.Int("imported", rep.Imported),
		zap.Int("skipped", rep.Skipped),
		zap.Int("errors", len(rep.Errors)),
	)
	return rep, nil
}

func (im *Importer) stockRow(ctx context.Context, row []string) error {
	supplierName := cell(row, 1)
	if supplierName == "" {
		supplierName = DefaultSupplier
	}
	sku := cell(row, 2)
	name := cell(row, 3)
	if name == "" {
		name = DefaultProductName
	}
	qty, err := parseQuantity(cell(row, 4))
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	price, err := parseMoney(cell(row, 6))
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}

	sup, err := im.store.UpsertSupplier(ctx, supplierName)
	if err != nil {
		return err
	}

	p, err := im.store.GetProductBySKU(ctx, sku)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		p = &workshop.Product{SKU: sku, Category: DefaultCategory, Price: price}
	case err != nil:
		return fmt.Errorf("get product %s: %w", sku, err)
	}
	p.Name = name
	p.SupplierID = sup.ID
	if err := im.store.UpsertProduct(ctx, p); err != nil {
		return err
	}

	if qty <= 0 {
		return nil
	}
	return im.store.RecordMovement(ctx, &workshop.InventoryFact{
		ProductID:       p.ID,
		Type:            workshop.MovementIn,
		Quantity:        qty,
		Amount:          price.Mul(decimal.NewFromInt(qty)),
		TransactionDate: im.now().UTC(),
	})
}

// Header aliases of the services sheet, matched case-insensitively.
var (
	colDate         = []string{"date", "tanggal", "scheduled_date"}
	colCustomer     = []string{"customer", "pelanggan", "customer_name"}
	colCustomerType = []string{"customer type", "customer_type", "tipe pelanggan"}
	colServiceType  = []string{"service type", "service_type", "jenis servis", "service"}
	colTotalCost    = []string{"total cost", "total_cost", "total", "biaya"}
	colBrand        = []string{"brand", "merek", "vehicle brand", "vehicle_brand"}
)

func findIndex(header []string, names ...string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

// ImportServices reads a service log whose first row is a header naming the
// date, customer, customer type, service type, total cost and vehicle brand
// columns. Customer type, total cost and brand may be absent.
func (im *Importer) ImportServices(ctx context.Context, r io.Reader) (Report, error) {
	sheet, rows, err := firstSheet(r)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Sheet: sheet, Rows: len(rows)}
	if len(rows) == 0 {
		return rep, fmt.Errorf("%w: empty sheet %q", ErrMissingColumns, sheet)
	}

	header := rows[0]
	dateIdx := findIndex(header, colDate...)
	customerIdx := findIndex(header, colCustomer...)
	typeIdx := findIndex(header, colCustomerType...)
	serviceIdx := findIndex(header, colServiceType...)
	costIdx := findIndex(header, colTotalCost...)
	brandIdx := findIndex(header, colBrand...)

	var missing []string
	if dateIdx < 0 {
		missing = append(missing, "date")
	}
	if customerIdx < 0 {
		missing = append(missing, "customer")
	}
	if serviceIdx < 0 {
		missing = append(missing, "service type")
	}
	if len(missing) > 0 {
		return rep, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	for i, row := range rows[1:] {
		line := i + 2
		customer := cell(row, customerIdx)
		if customer == "" && cell(row, dateIdx) == "" {
			rep.Skipped++
			continue
		}
		at, err := parseDate(cell(row, dateIdx))
		if err != nil {
			rep.fail(line, err)
			continue
		}
		var cost decimal.NullDecimal
		if s := cell(row, costIdx); s != "" {
			d, err := parseMoney(s)
			if err != nil {
				rep.fail(line, fmt.Errorf("total cost: %w", err))
				continue
			}
			cost = decimal.NewNullDecimal(d)
		}
		if customer == "" {
			rep.fail(line, errors.New("customer is required"))
			continue
		}

		ct := workshop.NormalizeCustomerType(cell(row, typeIdx))
		if ct == workshop.CustomerUnknown {
			ct = ""
		}
		c, err := im.store.EnsureCustomer(ctx, customer, ct)
		if err != nil {
			rep.fail(line, err)
			continue
		}
		if brand := cell(row, brandIdx); brand != "" {
			if _, err := im.store.EnsureVehicle(ctx, c.ID, brand); err != nil {
				rep.fail(line, fmt.Errorf("vehicle: %w", err))
				continue
			}
		}
		if err := im.store.CreateServiceOrder(ctx, &workshop.ServiceOrder{
			CustomerID:    c.ID,
			ServiceType:   cell(row, serviceIdx),
			ScheduledDate: at,
			TotalCost:     cost,
		}); err != nil {
			rep.fail(line, err)
			continue
		}
		rep.Imported++
	}

	im.logger.Info("services import finished",
		zap.String("sheet", sheet),
		zap.Int("imported", rep.Imported),
		zap.Int("skipped", rep.Skipped),
		zap.Int("errors", len(rep.Errors)),
	)
	return rep, nil
}
