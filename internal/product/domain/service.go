package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/faktur/pkg/db/pagination"
)

type CreateProductRequest struct {
	ItemCode        string `json:"item_code"`
	Brand           string `json:"brand"`
	ItemName        string `json:"item_name"`
	Description     string `json:"description"`
	HSNCode         string `json:"hsn_code"`
	UnitPrice       string `json:"unit_price"`
	Unit            string `json:"unit"`
	DiscountPercent string `json:"discount_percent"`
	Image           string `json:"image"`
}

type UpdateProductRequest struct {
	Brand           *string `json:"brand"`
	ItemName        *string `json:"item_name"`
	Description     *string `json:"description"`
	HSNCode         *string `json:"hsn_code"`
	UnitPrice       *string `json:"unit_price"`
	Unit            *string `json:"unit"`
	DiscountPercent *string `json:"discount_percent"`
	Image           *string `json:"image"`
}

type GetProductRequest struct {
	ID string
}

type ListProductRequest struct {
	PageToken string
	PageSize  int32
	Brand     string
}

type ListProductResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type SearchProductRequest struct {
	Query string
	Limit int
}

type Service interface {
	Create(context.Context, CreateProductRequest) (Product, error)
	Update(context.Context, string, UpdateProductRequest) (Product, error)
	GetByID(context.Context, GetProductRequest) (Product, error)
	GetByCode(context.Context, string) (Product, error)
	List(context.Context, ListProductRequest) (ListProductResponse, error)
	SearchByPrefix(context.Context, SearchProductRequest) ([]Product, error)
}

var (
	ErrInvalidItemCode = errors.New("invalid_item_code")
	ErrInvalidItemName = errors.New("invalid_item_name")
	ErrInvalidQuery    = errors.New("invalid_query")
	ErrInvalidID       = errors.New("invalid_id")
	ErrDuplicateCode   = errors.New("duplicate_item_code")
	ErrNotFound        = errors.New("not_found")
)
