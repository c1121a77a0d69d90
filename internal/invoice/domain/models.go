package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type DocumentType string

const (
	TypeInvoice DocumentType = "Invoice"
	TypeReceipt DocumentType = "Receipt"
)

type Status string

const (
	StatusDraft   Status = "Draft"
	StatusUnpaid  Status = "Unpaid"
	StatusPartial Status = "Partial"
	StatusPaid    Status = "Paid"
)

// ClientSnapshot is the billing party copied onto the document at selection
// time. Later edits to the client catalog do not touch issued documents.
type ClientSnapshot struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Invoice struct {
	ID             snowflake.ID                `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string                      `gorm:"not null;uniqueIndex" json:"invoice_number"`
	Sequence       int64                       `gorm:"not null" json:"-"`
	Type           DocumentType                `gorm:"not null" json:"type"`
	Status         Status                      `gorm:"not null;index" json:"status"`
	ClientID       *snowflake.ID               `gorm:"index" json:"client_id,omitempty"`
	Client         *ClientSnapshot             `gorm:"serializer:json" json:"client,omitempty"`
	Creator        datatypes.JSONSlice[string] `json:"creator,omitempty"`
	Currency       string                      `gorm:"not null" json:"currency"`
	TaxRatePercent float64                     `gorm:"not null" json:"tax_rate_percent"`
	Subtotal       float64                     `gorm:"not null" json:"subtotal"`
	Tax            float64                     `gorm:"not null" json:"tax"`
	Total          float64                     `gorm:"not null" json:"total"`
	Notes          string                      `json:"notes,omitempty"`
	IssuedAt       time.Time                   `gorm:"not null" json:"issued_at"`
	DueDate        time.Time                   `gorm:"not null" json:"due_date"`
	CreatedAt      time.Time                   `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"not null" json:"updated_at"`

	Items    []LineItem      `gorm:"-" json:"items"`
	Payments []PaymentRecord `gorm:"-" json:"payment_records"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// LineItem keeps quantity, unit price and discount as the raw text the caller
// sent. Amount is derived from them on every save; unparsable fields count
// as zero.
type LineItem struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID       snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	SrNo            int          `gorm:"not null" json:"sr_no"`
	ItemCode        string       `json:"item_code,omitempty"`
	Brand           string       `json:"brand,omitempty"`
	ItemName        string       `gorm:"not null" json:"item_name"`
	Description     string       `json:"description,omitempty"`
	Image           string       `json:"image,omitempty"`
	HSNCode         string       `json:"hsn_code,omitempty"`
	Quantity        string       `json:"quantity"`
	Unit            string       `json:"unit,omitempty"`
	UnitPrice       string       `json:"unit_price"`
	DiscountPercent string       `json:"discount_percent"`
	Amount          float64      `gorm:"not null" json:"amount"`
	CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
}

func (LineItem) TableName() string {
	return "invoice_items"
}

// PaymentRecord is an append-only ledger row. There is no edit or void
// operation; corrections are compensating entries.
type PaymentRecord struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID     snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	AmountPaid    float64      `gorm:"not null" json:"amount_paid"`
	DatePaid      time.Time    `gorm:"not null" json:"date_paid"`
	PaymentMethod string       `gorm:"not null" json:"payment_method"`
	Note          string       `json:"note,omitempty"`
	PaidBy        string       `json:"paid_by,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;index" json:"created_at"`
}

func (PaymentRecord) TableName() string {
	return "invoice_payments"
}
