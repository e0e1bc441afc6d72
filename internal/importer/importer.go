// Package importer loads the product catalog from CSV.
//
// The file carries one product per row with the department as free text:
//
//	id,cost,category,name,brand,retail_price,department,sku,distribution_center_id
//
// Department names are resolved through get-or-insert, so the departments
// table is built as a side effect. Products are upserted by id, which makes
// re-running an import safe.
package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_or_get_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
)

// Record is one CSV row. Every column is read as text and validated
// separately so one bad row does not abort the file.
type Record struct {
	ID                   string `csv:"id"`
	Cost                 string `csv:"cost"`
	Category             string `csv:"category"`
	Name                 string `csv:"name"`
	Brand                string `csv:"brand"`
	RetailPrice          string `csv:"retail_price"`
	Department           string `csv:"department"`
	SKU                  string `csv:"sku"`
	DistributionCenterID string `csv:"distribution_center_id"`
}

// Result summarises an import. Rows = Imported + Skipped + Duplicates.
type Result struct {
	Rows     int
	Imported int
	Skipped  int
	// Duplicates counts rows whose id appeared earlier in the file; the last one wins.
	Duplicates  int
	Departments int
}

// Importer writes CSV rows through the catalog store contracts.
type Importer struct {
	departments *create_or_get_department.Interactor
	writer      contracts.ProductWriter
	batchSize   int
	logger      *zap.Logger
}

func New(departments *create_or_get_department.Interactor, writer contracts.ProductWriter, batchSize int, logger *zap.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Importer{
		departments: departments,
		writer:      writer,
		batchSize:   batchSize,
		logger:      logger,
	}
}

// Import reads every row from r. Malformed rows are skipped and counted;
// store failures stop the import.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	var records []*Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	res := &Result{Rows: len(records)}
	deptIDs := make(map[string]int64)
	batch := make([]*m_product.Data, 0, i.batchSize)

	// An upsert statement may touch each id once, so a batch holds distinct ids.
	seen := make(map[int64]struct{})
	inBatch := make(map[int64]int)
	fresh := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := i.writer.UpsertProducts(ctx, batch); err != nil {
			return err
		}
		res.Imported += fresh
		fresh = 0
		batch = batch[:0]
		clear(inBatch)
		return nil
	}

	for n, rec := range records {
		row, err := toProduct(rec)
		if err != nil {
			res.Skipped++
			i.logger.Debug("skipping csv row", zap.Int("line", n+2), zap.Error(err))
			continue
		}

		if name := strings.TrimSpace(rec.Department); name != "" {
			id, ok := deptIDs[name]
			if !ok {
				dept, err := i.departments.Execute(ctx, &create_or_get_department.Request{Name: name})
				if err != nil {
					return res, fmt.Errorf("failed to resolve department %q: %w", name, err)
				}
				id = dept.ID
				deptIDs[name] = id
			}
			row.DepartmentID = &id
		}

		if _, ok := seen[row.ID]; ok {
			res.Duplicates++
		} else {
			seen[row.ID] = struct{}{}
			fresh++
		}
		if idx, ok := inBatch[row.ID]; ok {
			batch[idx] = row
			continue
		}
		inBatch[row.ID] = len(batch)
		batch = append(batch, row)
		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return res, fmt.Errorf("failed to write products: %w", err)
			}
		}
	}
	if err := flush(); err != nil {
		return res, fmt.Errorf("failed to write products: %w", err)
	}

	res.Departments = len(deptIDs)
	i.logger.Info("import finished",
		zap.Int("rows", res.Rows),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("departments", res.Departments),
	)
	return res, nil
}

func toProduct(rec *Record) (*m_product.Data, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rec.ID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	cost, err := parseMoney(rec.Cost)
	if err != nil {
		return nil, fmt.Errorf("cost: %w", err)
	}
	retail, err := parseMoney(rec.RetailPrice)
	if err != nil {
		return nil, fmt.Errorf("retail_price: %w", err)
	}

	var dc int64
	if s := strings.TrimSpace(rec.DistributionCenterID); s != "" {
		if dc, err = strconv.ParseInt(s, 10, 64); err != nil {
			return nil, fmt.Errorf("distribution_center_id: %w", err)
		}
	}

	return &m_product.Data{
		ID:                   id,
		Cost:                 cost,
		Category:             strings.TrimSpace(rec.Category),
		Name:                 strings.TrimSpace(rec.Name),
		Brand:                strings.TrimSpace(rec.Brand),
		RetailPrice:          retail,
		SKU:                  strings.TrimSpace(rec.SKU),
		DistributionCenterID: dc,
	}, nil
}

// parseMoney reads a price and rounds it to cents; an empty cell is zero.
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.Round(2), nil
}
