package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/HerbHall/pitstop/internal/importer"
)

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	file := fs.String("file", "", "workbook to import (.xlsx)")
	kind := fs.String("kind", importer.KindStock, "sheet layout: stock or services")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("-file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

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

	rep, err := importer.New(ws, e.logger.Named("importer")).Import(ctx, *kind, f)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return err
	}
	if len(rep.Errors) > 0 {
		return fmt.Errorf("%d rows rejected", len(rep.Errors))
	}
	return nil
}
