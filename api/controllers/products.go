package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/api/middleware"
	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	"github.com/stockroomhq/stockroom-backend/internal/catalog"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// ListProducts returns the catalog. Staff query parameters (supplier, search,
// ordering) are forwarded to the service, which decides whether the actor may
// use them.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		params, err := listParamsFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := middleware.RoleFromContext(r.Context())
		products, err := svc.ListProducts(r.Context(), role, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// GetProduct returns a single listing by ID.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := productIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := middleware.RoleFromContext(r.Context())
		product, err := svc.GetProduct(r.Context(), role, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CreateProduct inserts a listing.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := middleware.RoleFromContext(r.Context())
		product, err := svc.CreateProduct(r.Context(), role, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct patches a listing.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := productIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := middleware.RoleFromContext(r.Context())
		product, err := svc.UpdateProduct(r.Context(), role, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct removes a listing.
func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := productIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := middleware.RoleFromContext(r.Context())
		if err := svc.DeleteProduct(r.Context(), role, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func productIDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "productID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}

func listParamsFromQuery(r *http.Request) (catalog.ListParams, error) {
	params := catalog.ListParams{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Ordering: catalog.ParseOrdering(r.URL.Query().Get("ordering")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("supplier")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return catalog.ListParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier id")
		}
		params.SupplierID = &id
	}
	return params, nil
}

type createProductRequest struct {
	Name            string  `json:"name" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	Manufacturer    string  `json:"manufacturer" validate:"required"`
	Supplier        string  `json:"supplier" validate:"required"`
	Description     string  `json:"description"`
	Price           string  `json:"price" validate:"required"`
	Unit            string  `json:"unit"`
	StockQuantity   int     `json:"stock_quantity" validate:"min=0"`
	DiscountPercent int     `json:"discount_percent" validate:"min=0,max=100"`
	ImagePath       *string `json:"image_path,omitempty"`
}

type updateProductRequest struct {
	Name            *string `json:"name,omitempty"`
	Category        *string `json:"category,omitempty"`
	Manufacturer    *string `json:"manufacturer,omitempty"`
	Supplier        *string `json:"supplier,omitempty"`
	Description     *string `json:"description,omitempty"`
	Price           *string `json:"price,omitempty"`
	Unit            *string `json:"unit,omitempty"`
	StockQuantity   *int    `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	DiscountPercent *int    `json:"discount_percent,omitempty" validate:"omitempty,min=0,max=100"`
	ImagePath       *string `json:"image_path,omitempty"`
}

func (r createProductRequest) toCreateInput() (catalog.CreateProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	unit := enums.ProductUnitPiece
	if trimmed := strings.TrimSpace(r.Unit); trimmed != "" {
		parsed, err := enums.ParseProductUnit(trimmed)
		if err != nil {
			return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
		}
		unit = parsed
	}

	return catalog.CreateProductInput{
		Name:            strings.TrimSpace(r.Name),
		Category:        strings.TrimSpace(r.Category),
		Manufacturer:    strings.TrimSpace(r.Manufacturer),
		Supplier:        strings.TrimSpace(r.Supplier),
		Description:     r.Description,
		Price:           price,
		Unit:            unit,
		StockQuantity:   r.StockQuantity,
		DiscountPercent: r.DiscountPercent,
		ImagePath:       r.ImagePath,
	}, nil
}

func (r updateProductRequest) toUpdateInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		Name:            r.Name,
		Category:        r.Category,
		Manufacturer:    r.Manufacturer,
		Supplier:        r.Supplier,
		Description:     r.Description,
		StockQuantity:   r.StockQuantity,
		DiscountPercent: r.DiscountPercent,
		ImagePath:       r.ImagePath,
	}

	if r.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*r.Price))
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}
	if r.Unit != nil {
		unit, err := enums.ParseProductUnit(strings.TrimSpace(*r.Unit))
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
		}
		input.Unit = &unit
	}
	return input, nil
}
