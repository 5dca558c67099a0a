package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/seed"
)

func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	months := fs.Int("months", seed.DefaultMonths, "months of history to generate")
	seedValue := fs.Uint64("seed", 1, "random seed; the same seed yields the same data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *months <= 0 {
		return fmt.Errorf("-months must be positive, got %d", *months)
	}

	e, err := bootstrap(*configPath)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()
	ws, err := e.workshopStore(ctx)
	if err != nil {
		return err
	}

	res, err := seed.Workshop(ctx, ws, seed.Options{Months: *months, Seed: *seedValue})
	if err != nil {
		return err
	}
	if res.Skipped {
		e.logger.Warn("workshop already has service orders; demo data not written")
		return nil
	}
	e.logger.Info("demo data written",
		zap.Int("customers", res.Customers),
		zap.Int("vehicles", res.Vehicles),
		zap.Int("products", res.Products),
		zap.Int("service_orders", res.ServiceOrders),
		zap.Int("movements", res.Movements),
	)
	return nil
}
