package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/faktur/internal/product/domain"
	"github.com/smallbiznis/faktur/pkg/db"
	"github.com/smallbiznis/faktur/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	code := strings.ToUpper(strings.TrimSpace(req.ItemCode))
	if code == "" {
		return domain.Product{}, domain.ErrInvalidItemCode
	}
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidItemName
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:              s.genID.Generate(),
		ItemCode:        code,
		Brand:           strings.TrimSpace(req.Brand),
		ItemName:        name,
		Description:     req.Description,
		HSNCode:         strings.TrimSpace(req.HSNCode),
		UnitPrice:       strings.TrimSpace(req.UnitPrice),
		Unit:            strings.TrimSpace(req.Unit),
		DiscountPercent: strings.TrimSpace(req.DiscountPercent),
		Image:           strings.TrimSpace(req.Image),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, &product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Product{}, domain.ErrDuplicateCode
		}
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if existing == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Brand != nil {
		fields["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.ItemName != nil {
		name := strings.TrimSpace(*req.ItemName)
		if name == "" {
			return domain.Product{}, domain.ErrInvalidItemName
		}
		fields["item_name"] = name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.HSNCode != nil {
		fields["hsn_code"] = strings.TrimSpace(*req.HSNCode)
	}
	if req.UnitPrice != nil {
		fields["unit_price"] = strings.TrimSpace(*req.UnitPrice)
	}
	if req.Unit != nil {
		fields["unit"] = strings.TrimSpace(*req.Unit)
	}
	if req.DiscountPercent != nil {
		fields["discount_percent"] = strings.TrimSpace(*req.DiscountPercent)
	}
	if req.Image != nil {
		fields["image"] = strings.TrimSpace(*req.Image)
	}

	if err := s.repo.Update(ctx, productID, fields); err != nil {
		return domain.Product{}, err
	}

	updated, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if updated == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *updated, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetProductRequest) (domain.Product, error) {
	productID, err := parseID(req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	item, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *item, nil
}

// GetByCode resolves the exact catalog row used by line item autofill.
func (s *Service) GetByCode(ctx context.Context, code string) (domain.Product, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.Product{}, domain.ErrInvalidItemCode
	}

	item, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, domain.ListProductRequest{Brand: strings.TrimSpace(req.Brand)}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(product *domain.Product) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        product.ID.String(),
			CreatedAt: product.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}

	resp := domain.ListProductResponse{Products: products}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

// SearchByPrefix matches the uppercased prefix against code, brand and name.
func (s *Service) SearchByPrefix(ctx context.Context, req domain.SearchProductRequest) ([]domain.Product, error) {
	query := strings.ToUpper(strings.TrimSpace(req.Query))
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}

	items, err := s.repo.Search(ctx, query, req.Limit)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}
	return products, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
