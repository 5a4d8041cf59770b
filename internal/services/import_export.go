package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfglow/inventory-backend/internal/cache"
	"github.com/shelfglow/inventory-backend/internal/csvio"
	"github.com/shelfglow/inventory-backend/internal/errors"
	"github.com/shelfglow/inventory-backend/internal/metrics"
	"github.com/shelfglow/inventory-backend/internal/models"
	repository "github.com/shelfglow/inventory-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ImportExportService interface {
	ImportProducts(ctx context.Context, rows []models.ImportRow) (*models.ImportResult, error)
	ExportProducts(ctx context.Context, req *models.ExportRequest) (*models.ExportFile, error)
}

type importExportService struct {
	repo         repository.ProductRepository
	productCache cache.Cache
}

func NewImportExportService(repo repository.ProductRepository, productCache cache.Cache) ImportExportService {
	return &importExportService{repo: repo, productCache: productCache}
}

// ImportProducts runs the batch through validation, normalization and
// last-wins deduplication, executes one unordered bulk upsert, and reads the
// affected records back by code so the response reflects persisted state.
// Bad rows are skipped and reported, never fatal; only a storage failure
// aborts the call.
func (s *importExportService) ImportProducts(ctx context.Context, rows []models.ImportRow) (*models.ImportResult, error) {

	result := &models.ImportResult{Products: []models.Product{}}

	if len(rows) == 0 {
		return result, nil
	}

	normalized := make([]models.UpsertOp, 0, len(rows))

	for i, row := range rows {
		op, rowErr := normalizeRow(i+1, row)
		if rowErr != nil {
			slog.Warn("import row skipped",
				slog.Int("row", rowErr.Row),
				slog.Any("fields", rowErr.Fields),
			)
			result.RejectedRows = append(result.RejectedRows, *rowErr)
			metrics.ImportRowsTotal.WithLabelValues("rejected").Inc()

			continue
		}

		normalized = append(normalized, op)
		metrics.ImportRowsTotal.WithLabelValues("accepted").Inc()
	}

	plan := planUpserts(normalized)
	if len(plan) == 0 {
		return result, nil
	}

	bulk, err := s.repo.BulkUpsert(ctx, plan)
	if err != nil {
		return nil, errors.DatabaseError("Failed to import products").WithError(err)
	}

	result.Matched = bulk.Matched
	result.Inserted = bulk.Inserted
	result.UpsertErrors = bulk.Errors

	slog.Info("import executed",
		slog.Int64("matched", bulk.Matched),
		slog.Int64("inserted", bulk.Inserted),
		slog.Int("upsertErrors", len(bulk.Errors)),
		slog.Int("rejectedRows", len(result.RejectedRows)),
	)

	codes := make([]string, len(plan))
	for i, op := range plan {
		codes[i] = op.Code
	}

	products, err := s.repo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, errors.DatabaseError("Failed to read back imported products").WithError(err)
	}

	result.Products = products

	for _, p := range products {
		key := cache.Key(cache.ProductKeyPrefix, p.ID.Hex())
		if err := s.productCache.Delete(ctx, key); err != nil {
			slog.Warn("cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return result, nil
}

// planUpserts collapses the normalized batch to one op per code. Iteration
// stays in input order so a later duplicate fully replaces the earlier op
// (no field merge) while keeping its first-seen position in the plan.
func planUpserts(normalized []models.UpsertOp) []models.UpsertOp {
	index := map[string]int{}
	plan := make([]models.UpsertOp, 0, len(normalized))

	for _, op := range normalized {
		if at, seen := index[op.Code]; seen {
			plan[at] = op
			continue
		}

		index[op.Code] = len(plan)
		plan = append(plan, op)
	}

	return plan
}

// ExportProducts resolves the selection against storage and renders it in
// the requested dialect. The format is checked before any data is fetched.
func (s *importExportService) ExportProducts(ctx context.Context, req *models.ExportRequest) (*models.ExportFile, error) {

	if req.Format != models.ExportFormatShopify && req.Format != models.ExportFormatExcel {
		return nil, errors.BadRequestError("format must be 'shopify' or 'excel'")
	}

	var (
		products []models.Product
		err      error
	)

	if len(req.Products) > 0 {
		ids := make([]primitive.ObjectID, 0, len(req.Products))

		for _, raw := range req.Products {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return nil, errors.BadRequestError(fmt.Sprintf("invalid product id %q", raw)).WithError(err)
			}

			ids = append(ids, id)
		}

		products, err = s.repo.FindByIDs(ctx, ids)
	} else {
		products, err = s.repo.FindAll(ctx)
	}

	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products for export").WithError(err)
	}

	var content string

	switch req.Format {
	case models.ExportFormatShopify:
		content, err = csvio.RenderShopify(products)
		if err != nil {
			return nil, errors.InternalError("Failed to render export").WithError(err)
		}
	case models.ExportFormatExcel:
		content = csvio.RenderExcel(products)
	}

	filename := fmt.Sprintf("products-%s-%s.csv", req.Format, time.Now().UTC().Format("20060102-150405"))

	return &models.ExportFile{Filename: filename, Content: content}, nil
}
