package importer

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/stockroomhq/stockroom-backend/internal/catalog"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// Column headers the workbook must provide. Matching is case-insensitive on
// trimmed values; the Category column doubles as the anchor that selects the
// worksheet.
const (
	colCategory     = "category"
	colProductName  = "product name"
	colManufacturer = "manufacturer"
	colSupplier     = "supplier"
	colPrice        = "price"
	colUnit         = "unit"
	colStock        = "stock"
	colDiscount     = "discount"
	colDescription  = "description"
	colPhoto        = "photo"
)

var requiredColumns = []string{
	colCategory,
	colProductName,
	colManufacturer,
	colSupplier,
	colPrice,
	colUnit,
	colStock,
	colDiscount,
	colDescription,
	colPhoto,
}

// Fallback lookup names for rows with blank cells. Rows are never dropped
// for a missing lookup; they land in the catch-all buckets instead.
const (
	fallbackCategory     = "Uncategorized"
	fallbackManufacturer = "Unknown manufacturer"
	fallbackSupplier     = "Unknown supplier"
)

// Result summarizes a completed import pass.
type Result struct {
	Imported int
	Skipped  int
}

// Importer reads an .xlsx workbook and appends its rows to the catalog.
// Imports never deduplicate products: running the same workbook twice doubles
// the product rows while lookups stay stable through get-or-create.
type Importer struct {
	products    *catalog.Repository
	lookups     *catalog.LookupRepository
	imageFolder string
	logg        *logger.Logger
}

// New constructs an importer writing through the catalog repositories.
func New(products *catalog.Repository, lookups *catalog.LookupRepository, imageFolder string, logg *logger.Logger) (*Importer, error) {
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if lookups == nil {
		return nil, fmt.Errorf("lookup repository required")
	}
	return &Importer{
		products:    products,
		lookups:     lookups,
		imageFolder: strings.Trim(imageFolder, "/"),
		logg:        logg,
	}, nil
}

// Run imports every data row from the workbook at the given path. Missing
// file, worksheet, or column is fatal; defective cells degrade to defaults
// and never abort the pass. There is deliberately no wrapping transaction: a
// mid-run failure keeps the rows already imported.
func (imp *Importer) Run(ctx context.Context, workbookPath string) (*Result, error) {
	book, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("open workbook %q", workbookPath))
	}
	defer book.Close()

	sheet, rows, err := findProductSheet(book)
	if err != nil {
		return nil, err
	}

	columns, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	if imp.logg != nil {
		ctx = imp.logg.WithFields(ctx, map[string]any{
			"workbook": workbookPath,
			"sheet":    sheet,
			"rows":     len(rows) - 1,
		})
		imp.logg.Info(ctx, "import.start")
	}

	result := &Result{}
	for i, row := range rows[1:] {
		imported, err := imp.importRow(ctx, columns, row)
		if err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("import row %d", i+2))
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	if imp.logg != nil {
		ctx = imp.logg.WithFields(ctx, map[string]any{
			"imported": result.Imported,
			"skipped":  result.Skipped,
		})
		imp.logg.Info(ctx, "import.complete")
	}
	return result, nil
}

// findProductSheet returns the first worksheet whose header row contains the
// Category anchor column.
func findProductSheet(book *excelize.File) (string, [][]string, error) {
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("read sheet %q", sheet))
		}
		if len(rows) == 0 {
			continue
		}
		for _, header := range rows[0] {
			if normalizeHeader(header) == colCategory {
				return sheet, rows, nil
			}
		}
	}
	return "", nil, pkgerrors.New(pkgerrors.CodeValidation, "no worksheet with a Category header column found")
}

// resolveColumns maps each required column name to its index in the header
// row, failing with the list of available headers when one is missing.
func resolveColumns(header []string) (map[string]int, error) {
	indexByName := make(map[string]int, len(header))
	for i, cell := range header {
		name := normalizeHeader(cell)
		if name == "" {
			continue
		}
		if _, exists := indexByName[name]; !exists {
			indexByName[name] = i
		}
	}

	columns := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, name := range requiredColumns {
		idx, ok := indexByName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = idx
	}
	if len(missing) > 0 {
		available := make([]string, 0, len(indexByName))
		for name := range indexByName {
			available = append(available, name)
		}
		sort.Strings(available)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf(
			"missing required columns %s; available headers: %s",
			strings.Join(missing, ", "), strings.Join(available, ", "),
		))
	}
	return columns, nil
}

// importRow converts one data row into a product insert. Returns false when
// the row is skipped for a blank product name.
func (imp *Importer) importRow(ctx context.Context, columns map[string]int, row []string) (bool, error) {
	name := strings.TrimSpace(cellAt(row, columns[colProductName]))
	if name == "" {
		return false, nil
	}

	category, err := imp.lookups.GetOrCreateCategory(ctx, valueOr(cellAt(row, columns[colCategory]), fallbackCategory))
	if err != nil {
		return false, err
	}
	manufacturer, err := imp.lookups.GetOrCreateManufacturer(ctx, valueOr(cellAt(row, columns[colManufacturer]), fallbackManufacturer))
	if err != nil {
		return false, err
	}
	supplier, err := imp.lookups.GetOrCreateSupplier(ctx, valueOr(cellAt(row, columns[colSupplier]), fallbackSupplier))
	if err != nil {
		return false, err
	}

	product := &models.Product{
		Name:            name,
		CategoryID:      category.ID,
		ManufacturerID:  manufacturer.ID,
		SupplierID:      supplier.ID,
		Description:     strings.TrimSpace(cellAt(row, columns[colDescription])),
		Price:           parsePrice(cellAt(row, columns[colPrice])),
		Unit:            enums.NormalizeProductUnit(cellAt(row, columns[colUnit])),
		StockQuantity:   parseCount(cellAt(row, columns[colStock])),
		DiscountPercent: parseDiscount(cellAt(row, columns[colDiscount])),
		ImagePath:       imp.imagePath(cellAt(row, columns[colPhoto])),
	}

	if _, err := imp.products.CreateProduct(ctx, product); err != nil {
		return false, err
	}
	return true, nil
}

func (imp *Importer) imagePath(cell string) *string {
	file := strings.TrimSpace(cell)
	if file == "" {
		return nil
	}
	full := path.Join(imp.imageFolder, file)
	return &full
}

func normalizeHeader(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func valueOr(cell, fallback string) string {
	if trimmed := strings.TrimSpace(cell); trimmed != "" {
		return trimmed
	}
	return fallback
}

// parsePrice degrades unparsable or negative values to zero.
func parsePrice(cell string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(cell))
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// parseCount degrades unparsable or negative values to zero.
func parseCount(cell string) int {
	value, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// parseDiscount additionally rejects values above 100.
func parseDiscount(cell string) int {
	value := parseCount(cell)
	if value > 100 {
		return 0
	}
	return value
}
