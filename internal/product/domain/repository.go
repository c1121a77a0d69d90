package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/faktur/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, product *Product) error
	Update(ctx context.Context, id snowflake.ID, fields map[string]any) error
	FindByID(ctx context.Context, id snowflake.ID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	Search(ctx context.Context, prefix string, limit int) ([]*Product, error)
	List(ctx context.Context, filter ListProductRequest, page pagination.Pagination) ([]*Product, error)
}
