package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/faktur/pkg/db/pagination"
)

type LineItemInput struct {
	ItemCode        string `json:"item_code"`
	Brand           string `json:"brand"`
	ItemName        string `json:"item_name"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	HSNCode         string `json:"hsn_code"`
	Quantity        string `json:"quantity"`
	Unit            string `json:"unit"`
	UnitPrice       string `json:"unit_price"`
	DiscountPercent string `json:"discount_percent"`
}

type ClientInput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CreateInvoiceRequest struct {
	Type           string          `json:"type"`
	Draft          bool            `json:"draft"`
	Client         *ClientInput    `json:"client"`
	Items          []LineItemInput `json:"items"`
	Currency       string          `json:"currency"`
	TaxRatePercent string          `json:"tax_rate_percent"`
	Notes          string          `json:"notes"`
	IssuedAt       *time.Time      `json:"issued_at"`
	DueDate        *time.Time      `json:"due_date"`
	CreatorID      string          `json:"creator_id"`
}

type UpdateInvoiceRequest struct {
	Type           string          `json:"type"`
	Draft          bool            `json:"draft"`
	Client         *ClientInput    `json:"client"`
	Items          []LineItemInput `json:"items"`
	Currency       string          `json:"currency"`
	TaxRatePercent string          `json:"tax_rate_percent"`
	Notes          string          `json:"notes"`
	IssuedAt       *time.Time      `json:"issued_at"`
	DueDate        *time.Time      `json:"due_date"`
}

type RecordPaymentRequest struct {
	AmountPaid    string     `json:"amount_paid"`
	DatePaid      *time.Time `json:"date_paid"`
	PaymentMethod string     `json:"payment_method"`
	Note          string     `json:"note"`
	PaidBy        string     `json:"paid_by"`
}

type GetInvoiceRequest struct {
	ID string
}

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int32
	Type      string
	Status    string
}

type ListInvoiceFilter struct {
	Type   DocumentType
	Status Status
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// DocumentLine is a display row with pre-formatted money fields.
type DocumentLine struct {
	SrNo            int    `json:"sr_no"`
	ItemCode        string `json:"item_code"`
	Brand           string `json:"brand"`
	ItemName        string `json:"item_name"`
	Image           string `json:"image"`
	HSNCode         string `json:"hsn_code"`
	Quantity        string `json:"quantity"`
	Unit            string `json:"unit"`
	UnitPrice       string `json:"unit_price"`
	DiscountPercent string `json:"discount_percent"`
	Amount          string `json:"amount"`
}

type CompanySnapshot struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// DocumentSnapshot is the flattened view handed to the PDF and email
// providers. All money fields are already comma-formatted strings.
type DocumentSnapshot struct {
	InvoiceNumber  string          `json:"invoice_number"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	IssuedAt       string          `json:"issued_at"`
	DueDate        string          `json:"due_date"`
	Notes          string          `json:"notes"`
	Items          []DocumentLine  `json:"items"`
	Currency       string          `json:"currency"`
	TaxRatePercent string          `json:"tax_rate_percent"`
	Subtotal       string          `json:"subtotal"`
	Tax            string          `json:"tax"`
	Total          string          `json:"total"`
	TotalReceived  string          `json:"total_received"`
	BalanceDue     string          `json:"balance_due"`
	Company        CompanySnapshot `json:"company"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	Update(context.Context, string, UpdateInvoiceRequest) (Invoice, error)
	GetByID(context.Context, GetInvoiceRequest) (Invoice, error)
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	RecordPayment(context.Context, string, RecordPaymentRequest) (Invoice, error)
	BuildDocument(context.Context, string) (DocumentSnapshot, error)
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidType   = errors.New("invalid_type")
	ErrInvalidClient = errors.New("invalid_client")
	ErrInvalidItems  = errors.New("invalid_items")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrNotFound      = errors.New("not_found")
)
