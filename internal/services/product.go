package service

import (
	"context"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shelfglow/inventory-backend/internal/cache"
	"github.com/shelfglow/inventory-backend/internal/errors"
	"github.com/shelfglow/inventory-backend/internal/models"
	repository "github.com/shelfglow/inventory-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	DeleteAllProducts(ctx context.Context) (int64, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]models.Product, int64, error)
}

type productService struct {
	repo         repository.ProductRepository
	productCache cache.Cache
	sanitizer    *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache) ProductService {
	return &productService{
		repo:         repo,
		productCache: productCache,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		Barcode:          req.Barcode,
		Code:             req.Code,
		Name:             req.Name,
		ShortDescription: s.sanitizer.Sanitize(req.ShortDescription),
		Description:      s.sanitizer.Sanitize(req.Description),
		Brand:            req.Brand,
		Category:         req.Category,
		Price:            req.Price,
		Volume:           req.Volume,
		ImageURL:         req.ImageURL,
		Tags:             req.Tags,
		Attributes:       req.Attributes,
		AIDescription:    req.AIDescription,
		StockQty:         req.StockQty,
		IsActive:         true,
	}

	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.DuplicateEntryError("A product with this code already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id.Hex())

	cached := &models.Product{}

	found, err := s.productCache.Get(ctx, key, cached)
	if err != nil {
		slog.Warn("cache lookup failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	if found {
		return cached, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.productCache.Set(ctx, key, product, 0); err != nil {
		slog.Warn("cache store failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.ShortDescription != nil {
		product.ShortDescription = s.sanitizer.Sanitize(*req.ShortDescription)
	}
	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = req.Price
	}
	if req.Volume != nil {
		product.Volume = req.Volume
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Attributes != nil {
		product.Attributes = req.Attributes
	}
	if req.AIDescription != nil {
		product.AIDescription = req.AIDescription
	}
	if req.StockQty != nil {
		product.StockQty = *req.StockQty
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *productService) DeleteAllProducts(ctx context.Context) (int64, error) {

	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, errors.DatabaseError("Failed to delete products").WithError(err)
	}

	slog.Info("all products deleted", slog.Int64("count", deleted))

	return deleted, nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]models.Product, int64, error) {

	products, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) invalidate(ctx context.Context, id primitive.ObjectID) {
	key := cache.Key(cache.ProductKeyPrefix, id.Hex())
	if err := s.productCache.Delete(ctx, key); err != nil {
		slog.Warn("cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
