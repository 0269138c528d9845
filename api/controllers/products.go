package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/api/middleware"
	"github.com/s50889/ordesite2-sub001/api/responses"
	"github.com/s50889/ordesite2-sub001/api/validators"
	productssvc "github.com/s50889/ordesite2-sub001/internal/products"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
	"github.com/s50889/ordesite2-sub001/pkg/types"
)

type productResponse struct {
	ID            string   `json:"id"`
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	CategoryID    *string  `json:"categoryId,omitempty"`
	CategoryName  *string  `json:"categoryName,omitempty"`
	Specs         *string  `json:"specs,omitempty"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	StockQuantity int      `json:"stockQuantity"`
	MOQ           int      `json:"moq"`
	UnitPrice     *string  `json:"unitPrice,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	IsActive      bool     `json:"isActive"`
}

func newProductResponse(product *models.Product) productResponse {
	resp := productResponse{
		ID:            product.ID.String(),
		SKU:           product.SKU,
		Name:          product.Name,
		Description:   product.Description,
		Specs:         product.Specs,
		ImageURL:      product.ImageURL,
		StockQuantity: product.StockQuantity,
		MOQ:           product.MOQ,
		Tags:          []string(product.Tags),
		IsActive:      product.IsActive,
	}
	if product.CategoryID != nil {
		categoryID := product.CategoryID.String()
		resp.CategoryID = &categoryID
	}
	if product.Category != nil {
		resp.CategoryName = &product.Category.Name
	}
	if product.UnitPrice.Valid {
		price := product.UnitPrice.Decimal.StringFixed(2)
		resp.UnitPrice = &price
	}
	return resp
}

// ListProducts returns a catalog page with keyword and category filters.
func ListProducts(svc productssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := productssvc.Filter{Keyword: r.URL.Query().Get("keyword")}
		if raw := r.URL.Query().Get("categoryId"); raw != "" {
			categoryID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id"))
				return
			}
			filter.CategoryID = &categoryID
		}

		list, err := svc.List(r.Context(), middleware.RoleFromContext(r.Context()), filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page := types.Page[productResponse]{NextCursor: list.NextCursor}
		for i := range list.Products {
			page.Items = append(page.Items, newProductResponse(&list.Products[i]))
		}
		if page.Items == nil {
			page.Items = []productResponse{}
		}
		responses.WriteSuccess(w, page)
	}
}

// GetProduct returns one catalog entry.
func GetProduct(svc productssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), productID, middleware.RoleFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// CreateProduct adds a catalog entry. Admin only, enforced by routing.
func CreateProduct(svc productssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productssvc.UpsertInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(product))
	}
}

// UpdateProduct replaces the writable fields of a catalog entry.
func UpdateProduct(svc productssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productssvc.UpsertInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), productID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(product))
	}
}

type categoryResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"displayOrder"`
}

// ListCategories returns the active category tree for filtering.
func ListCategories(svc productssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]categoryResponse, 0, len(categories))
		for _, category := range categories {
			out = append(out, categoryResponse{
				ID:           category.ID.String(),
				Name:         category.Name,
				Description:  category.Description,
				DisplayOrder: category.DisplayOrder,
			})
		}
		responses.WriteSuccess(w, out)
	}
}
