package repository

import (
	"context"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/faktur/internal/product/domain"
	"github.com/smallbiznis/faktur/pkg/db/option"
	"github.com/smallbiznis/faktur/pkg/db/pagination"
	"github.com/smallbiznis/faktur/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	store repository.Repository[domain.Product]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{
		db:    db,
		store: repository.ProvideStore[domain.Product](db),
	}
}

func (r *repo) Insert(ctx context.Context, product *domain.Product) error {
	return r.store.Create(ctx, product)
}

func (r *repo) Update(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.store.Update(ctx, strconv.FormatInt(int64(id), 10), fields)
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	return r.store.FindOne(ctx, &domain.Product{ID: id})
}

func (r *repo) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	return r.store.FindOne(ctx, &domain.Product{ItemCode: code})
}

func (r *repo) Search(ctx context.Context, prefix string, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := prefix + "%"

	var products []*domain.Product
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("upper(item_code) LIKE ? OR upper(brand) LIKE ? OR upper(item_name) LIKE ?",
			pattern, pattern, pattern).
		Order("item_code asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) List(ctx context.Context, filter domain.ListProductRequest, page pagination.Pagination) ([]*domain.Product, error) {
	query := &domain.Product{Brand: filter.Brand}
	return r.store.Find(ctx, query,
		option.ApplyPagination(page),
		option.WithSortBy("created_at", "desc"),
	)
}
