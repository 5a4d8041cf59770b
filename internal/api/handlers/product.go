package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shelfglow/inventory-backend/internal/errors"
	"github.com/shelfglow/inventory-backend/internal/models"
	service "github.com/shelfglow/inventory-backend/internal/services"
	"github.com/shelfglow/inventory-backend/internal/utils"
	"github.com/shelfglow/inventory-backend/internal/utils/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateProductRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)

		if err != nil {
			slog.Error("Error during product creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Product created", slog.String("productId", product.ID.Hex()), slog.String("code", product.Code))
		response.Success(w, http.StatusCreated, product)

	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)

	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.UpdateProductRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)

		if err != nil {
			slog.Error("Error during product update", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Product updated", slog.String("productId", product.ID.Hex()))
		response.Success(w, http.StatusOK, product)

	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		slog.Info("Product deleted", slog.String("productId", id.Hex()))
		response.Success(w, http.StatusOK, map[string]string{"deleted": id.Hex()})

	}
}

func (h *ProductHandler) DeleteAllProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		deleted, err := h.productService.DeleteAllProducts(r.Context())

		if err != nil {
			slog.Error("Error during bulk delete", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"deleted": deleted})

	}
}

// for eg: GET /products?page=1&pageSize=10
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		products, total, err := h.productService.ListProducts(r.Context(), page, pageSize)

		if err != nil {
			slog.Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})

	}
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid ID format").WithError(err))
		return primitive.NilObjectID, false
	}

	return id, true
}
