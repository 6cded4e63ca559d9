package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/stockroomhq/stockroom-backend/internal/catalog"
	"github.com/stockroomhq/stockroom-backend/internal/importer"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// cmd/import loads product rows from a spreadsheet into the catalog tables.
// It appends on every run; rerunning the same workbook duplicates products.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "import"})

	_ = godotenv.Load()

	path := flag.String("path", "", "path to the .xlsx workbook (defaults to STOCKROOM_IMPORT_DEFAULT_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "import",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	workbook := *path
	if workbook == "" {
		workbook = cfg.Import.DefaultPath
	}

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"path": workbook,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	imp, err := importer.New(
		catalog.NewRepository(dbClient.DB()),
		catalog.NewLookupRepository(dbClient.DB()),
		cfg.Media.ProductFolder,
		logg,
	)
	requireResource(ctx, logg, "importer", err)

	result, err := imp.Run(ctx, workbook)
	if err != nil {
		logg.Error(ctx, "import failed", err)
		os.Exit(1)
	}

	fmt.Printf("imported %d products (%d rows skipped)\n", result.Imported, result.Skipped)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
