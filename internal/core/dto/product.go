package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
)

type CreateProductRequest struct {
	Name     string   `json:"name" validate:"required"`
	Quantity *int     `json:"quantity" validate:"required"`
	Price    *float64 `json:"price" validate:"required"`
}

func (r *CreateProductRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.Name) == "" {
		return serviceerrors.NewInvalidRequestError("name must not be blank")
	}
	return nil
}

type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return serviceerrors.NewInvalidRequestError("name must not be blank")
	}
	return nil
}

func (r *UpdateProductRequest) ToDomain() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:     r.Name,
		Quantity: r.Quantity,
		Price:    r.Price,
	}
}

// ListProductsRequest keeps the raw query values; malformed numbers fall back to
// defaults instead of failing the request.
type ListProductsRequest struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Name     string `form:"name"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
}

func (r *ListProductsRequest) Pagination() domain.Pagination {
	return domain.NewPagination(
		parseIntOrDefault(r.Page, domain.DefaultPage),
		parseIntOrDefault(r.Limit, domain.DefaultLimit),
	)
}

func (r *ListProductsRequest) Filter() domain.ProductFilter {
	return domain.ProductFilter{
		NameContains: r.Name,
		MinPrice:     parseOptionalFloat(r.MinPrice),
		MaxPrice:     parseOptionalFloat(r.MaxPrice),
	}
}

type DeleteProductsRequest struct {
	IDs json.RawMessage `json:"ids"`
}

func (r *DeleteProductsRequest) ProductIDs() ([]domain.ID, error) {
	var raw []any
	if len(r.IDs) == 0 || json.Unmarshal(r.IDs, &raw) != nil || raw == nil {
		return nil, serviceerrors.NewInvalidRequestError("IDs should be an array")
	}

	ids := make([]domain.ID, 0, len(raw))
	for _, value := range raw {
		id, ok := value.(string)
		if !ok {
			return nil, serviceerrors.NewInvalidRequestError("IDs should be an array of strings")
		}
		if !domain.ValidateID(id) {
			return nil, serviceerrors.NewInvalidRequestError(fmt.Sprintf("Invalid product ID: %s", id))
		}
		ids = append(ids, domain.ID(id))
	}
	return ids, nil
}

func parseIntOrDefault(raw string, defaultValue int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}
