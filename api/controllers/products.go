package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eletrodesk/eletrodesk-backend/api/middleware"
	"github.com/eletrodesk/eletrodesk-backend/api/responses"
	"github.com/eletrodesk/eletrodesk-backend/api/validators"
	product "github.com/eletrodesk/eletrodesk-backend/internal/products"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
	"github.com/eletrodesk/eletrodesk-backend/pkg/pagination"
)

type createProductPayload struct {
	Code          string          `json:"code" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Location      string          `json:"location,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

type updateProductPayload struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Brand         *string          `json:"brand,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
	MinStock      *int             `json:"min_stock,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	Location      *string          `json:"location,omitempty"`
	Supplier      *string          `json:"supplier,omitempty"`
	Tags          *[]string        `json:"tags,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// ProductCreate inserts a catalog row for the authenticated distributor.
func ProductCreate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var payload createProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.CreateProduct(ctx, userID, product.CreateProductInput{
			Code:          payload.Code,
			Name:          payload.Name,
			Description:   payload.Description,
			Category:      payload.Category,
			Brand:         payload.Brand,
			Unit:          payload.Unit,
			StockQuantity: payload.StockQuantity,
			MinStock:      payload.MinStock,
			Price:         payload.Price,
			Cost:          payload.Cost,
			Location:      payload.Location,
			Supplier:      payload.Supplier,
			Tags:          payload.Tags,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ProductUpdate applies a partial mutation to one catalog row.
func ProductUpdate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateProduct(ctx, userID, productID, product.UpdateProductInput{
			Name:          payload.Name,
			Description:   payload.Description,
			Category:      payload.Category,
			Brand:         payload.Brand,
			Unit:          payload.Unit,
			StockQuantity: payload.StockQuantity,
			MinStock:      payload.MinStock,
			Price:         payload.Price,
			Cost:          payload.Cost,
			Location:      payload.Location,
			Supplier:      payload.Supplier,
			Tags:          payload.Tags,
			IsActive:      payload.IsActive,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ProductGet loads one catalog row.
func ProductGet(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetProduct(ctx, userID, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ProductList pages through the catalog with optional filters.
func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := r.URL.Query()
		filters := product.ListFilters{
			Query:    strings.TrimSpace(query.Get("q")),
			Category: strings.TrimSpace(query.Get("category")),
			Brand:    strings.TrimSpace(query.Get("brand")),
			LowStock: query.Get("low_stock") == "true",
		}

		dto, err := svc.ListProducts(ctx, userID, filters, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(query.Get("cursor")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ProductDeactivate soft-deletes one catalog row.
func ProductDeactivate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeactivateProduct(ctx, userID, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deactivated": true})
	}
}

// ProductStats returns the dashboard aggregate for the tenant's catalog.
func ProductStats(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		dto, err := svc.GetStats(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func parseProductID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "productId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}
