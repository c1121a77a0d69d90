package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Product keeps price and discount as raw text so catalog values flow into
// invoice line items unchanged and parse under the same lenient rules.
type Product struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	ItemCode        string       `gorm:"not null;uniqueIndex" json:"item_code"`
	Brand           string       `json:"brand,omitempty"`
	ItemName        string       `gorm:"not null" json:"item_name"`
	Description     string       `json:"description,omitempty"`
	HSNCode         string       `json:"hsn_code,omitempty"`
	UnitPrice       string       `json:"unit_price"`
	Unit            string       `json:"unit,omitempty"`
	DiscountPercent string       `json:"discount_percent"`
	Image           string       `json:"image,omitempty"`
	CreatedAt       time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
