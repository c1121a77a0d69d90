package option

import (
	"fmt"
	"time"

	"github.com/smallbiznis/faktur/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

type Operator string

const (
	Equal Operator = "="
	GTE   Operator = ">="
	LTE   Operator = "<="
	Like  Operator = "LIKE"
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

func Where(cond Condition) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		op := cond.Operator
		if op == "" {
			op = Equal
		}
		return db.Where(fmt.Sprintf("%s %s ?", cond.Field, op), cond.Value)
	})
}

func WithSortBy(field, direction string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if field == "" {
			return db
		}
		if direction != "asc" && direction != "desc" {
			direction = "desc"
		}
		return db.Order(fmt.Sprintf("%s %s", field, direction))
	})
}

func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// ApplyPagination decodes the cursor token and fetches one row beyond the
// page size so callers can detect whether more rows exist.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 10
		}
		db = db.Limit(size + 1)

		if page.PageToken == "" {
			return db
		}
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil || cursor == nil || cursor.CreatedAt == "" {
			return db
		}
		ts, err := time.Parse(time.RFC3339, cursor.CreatedAt)
		if err != nil {
			return db
		}
		if cursor.ID != "" {
			return db.Where("created_at < ? OR (created_at = ? AND id < ?)", ts, ts, cursor.ID)
		}
		return db.Where("created_at < ?", ts)
	})
}
