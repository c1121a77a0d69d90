package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/faktur/internal/config"
	"github.com/smallbiznis/faktur/internal/invoice/calc"
	"github.com/smallbiznis/faktur/internal/invoice/domain"
	"github.com/smallbiznis/faktur/internal/invoice/format"
	productdomain "github.com/smallbiznis/faktur/internal/product/domain"
	"github.com/smallbiznis/faktur/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultTaxRatePercent = 18
	defaultDueInDays      = 7
	defaultPaymentMethod  = "Bank Transfer"
	defaultCurrency       = "INR"
)

type Params struct {
	fx.In

	Cfg     config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Catalog productdomain.Service `optional:"true"`
}

type Service struct {
	cfg     config.Config
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	catalog productdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		cfg:     p.Cfg,
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	docType := domain.TypeInvoice
	if strings.TrimSpace(req.Type) != "" {
		parsed, err := parseType(req.Type)
		if err != nil {
			return domain.Invoice{}, err
		}
		docType = parsed
	}

	clientID, client, err := buildClientSnapshot(req.Client)
	if err != nil {
		return domain.Invoice{}, err
	}

	if !req.Draft {
		if client == nil {
			return domain.Invoice{}, domain.ErrInvalidClient
		}
		if len(req.Items) == 0 {
			return domain.Invoice{}, domain.ErrInvalidItems
		}
	}

	now := time.Now().UTC()
	issuedAt := now
	if req.IssuedAt != nil {
		issuedAt = req.IssuedAt.UTC()
	}
	dueDate := issuedAt.Add(defaultDueInDays * 24 * time.Hour)
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}

	rate := float64(defaultTaxRatePercent)
	if strings.TrimSpace(req.TaxRatePercent) != "" {
		rate = calc.Num(req.TaxRatePercent)
	}

	id := s.genID.Generate()
	items, err := s.buildItems(ctx, id, req.Items, now)
	if err != nil {
		return domain.Invoice{}, err
	}
	totals := calc.Aggregate(items, rate)

	status := domain.StatusUnpaid
	switch {
	case req.Draft:
		status = domain.StatusDraft
	case docType == domain.TypeReceipt:
		status = domain.StatusPaid
	}

	seq, err := s.repo.NextSequence(ctx, s.db)
	if err != nil {
		return domain.Invoice{}, err
	}
	number, err := format.Number(s.numberTemplate(), issuedAt, seq)
	if err != nil {
		return domain.Invoice{}, err
	}

	var creator datatypes.JSONSlice[string]
	if strings.TrimSpace(req.CreatorID) != "" {
		creator = datatypes.JSONSlice[string]{strings.TrimSpace(req.CreatorID)}
	}

	invoice := domain.Invoice{
		ID:             id,
		InvoiceNumber:  number,
		Sequence:       seq,
		Type:           docType,
		Status:         status,
		ClientID:       clientID,
		Client:         client,
		Creator:        creator,
		Currency:       s.currencyOrDefault(req.Currency),
		TaxRatePercent: rate,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Total:          totals.Total,
		Notes:          req.Notes,
		IssuedAt:       issuedAt,
		DueDate:        dueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
		Items:          items,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("status", string(invoice.Status)),
	)

	return invoice, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if existing == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	docType := existing.Type
	if strings.TrimSpace(req.Type) != "" {
		parsed, err := parseType(req.Type)
		if err != nil {
			return domain.Invoice{}, err
		}
		docType = parsed
	}

	clientID, client, err := buildClientSnapshot(req.Client)
	if err != nil {
		return domain.Invoice{}, err
	}

	if !req.Draft {
		if client == nil {
			return domain.Invoice{}, domain.ErrInvalidClient
		}
		if len(req.Items) == 0 {
			return domain.Invoice{}, domain.ErrInvalidItems
		}
	}

	now := time.Now().UTC()
	rate := existing.TaxRatePercent
	if strings.TrimSpace(req.TaxRatePercent) != "" {
		rate = calc.Num(req.TaxRatePercent)
	}
	issuedAt := existing.IssuedAt
	if req.IssuedAt != nil {
		issuedAt = req.IssuedAt.UTC()
	}
	dueDate := existing.DueDate
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}

	items, err := s.buildItems(ctx, existing.ID, req.Items, now)
	if err != nil {
		return domain.Invoice{}, err
	}
	totals := calc.Aggregate(items, rate)
	received := calc.TotalReceived(existing.Payments)

	status := calc.DeriveStatus(docType, totals.Total, received)
	if req.Draft {
		status = domain.StatusDraft
	}

	existing.Type = docType
	existing.Status = status
	existing.ClientID = clientID
	existing.Client = client
	if strings.TrimSpace(req.Currency) != "" {
		existing.Currency = s.currencyOrDefault(req.Currency)
	}
	existing.TaxRatePercent = rate
	existing.Subtotal = totals.Subtotal
	existing.Tax = totals.Tax
	existing.Total = totals.Total
	existing.Notes = req.Notes
	existing.IssuedAt = issuedAt
	existing.DueDate = dueDate
	existing.UpdatedAt = now
	existing.Items = items

	if err := s.repo.Save(ctx, s.db, existing); err != nil {
		return domain.Invoice{}, err
	}

	return *existing, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceRequest) (domain.Invoice, error) {
	invoiceID, err := parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	return *invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	filter := domain.ListInvoiceFilter{}
	if strings.TrimSpace(req.Type) != "" {
		docType, err := parseType(req.Type)
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		filter.Type = docType
	}
	if strings.TrimSpace(req.Status) != "" {
		status, err := parseStatus(req.Status)
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		filter.Status = status
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID.String(),
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	resp := domain.ListInvoiceResponse{Invoices: invoices}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) RecordPayment(ctx context.Context, id string, req domain.RecordPaymentRequest) (domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	if invoice.Status == domain.StatusDraft {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	received := calc.TotalReceived(invoice.Payments)

	// Blank amount settles the remaining balance, mirroring the suggested
	// next payment.
	amount := calc.BalanceDue(invoice.Total, received)
	if strings.TrimSpace(req.AmountPaid) != "" {
		amount = calc.Num(req.AmountPaid)
	}

	datePaid := now
	if req.DatePaid != nil {
		datePaid = req.DatePaid.UTC()
	}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = defaultPaymentMethod
	}
	paidBy := strings.TrimSpace(req.PaidBy)
	if paidBy == "" && invoice.Client != nil {
		paidBy = invoice.Client.Name
	}

	record := domain.PaymentRecord{
		ID:            s.genID.Generate(),
		InvoiceID:     invoice.ID,
		AmountPaid:    amount,
		DatePaid:      datePaid,
		PaymentMethod: method,
		Note:          strings.TrimSpace(req.Note),
		PaidBy:        paidBy,
		CreatedAt:     now,
	}

	invoice.Payments = append(invoice.Payments, record)
	invoice.Status = calc.DeriveStatus(invoice.Type, invoice.Total, received+record.AmountPaid)
	invoice.UpdatedAt = now

	if err := s.repo.Save(ctx, s.db, invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("payment recorded",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Float64("amount_paid", record.AmountPaid),
		zap.String("status", string(invoice.Status)),
	)

	return *invoice, nil
}

func (s *Service) buildItems(ctx context.Context, invoiceID snowflake.ID, inputs []domain.LineItemInput, now time.Time) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(inputs))
	for _, in := range inputs {
		item := domain.LineItem{
			ID:              s.genID.Generate(),
			InvoiceID:       invoiceID,
			ItemCode:        strings.TrimSpace(in.ItemCode),
			Brand:           strings.TrimSpace(in.Brand),
			ItemName:        strings.TrimSpace(in.ItemName),
			Description:     in.Description,
			Image:           strings.TrimSpace(in.Image),
			HSNCode:         strings.TrimSpace(in.HSNCode),
			Quantity:        in.Quantity,
			Unit:            strings.TrimSpace(in.Unit),
			UnitPrice:       in.UnitPrice,
			DiscountPercent: in.DiscountPercent,
			Amount:          calc.Amount(in.Quantity, in.UnitPrice, in.DiscountPercent),
			CreatedAt:       now,
		}
		if item.ItemCode != "" && item.ItemName == "" && s.catalog != nil {
			filled, err := s.fillFromCatalog(ctx, item)
			if err != nil {
				return nil, err
			}
			item = filled
		}
		items = append(items, item)
	}
	calc.Renumber(items)
	return items, nil
}

// fillFromCatalog expands a line that carries only an item code into a full
// row from the product catalog. A blank quantity bills as 1; an unknown code
// leaves the line as sent.
func (s *Service) fillFromCatalog(ctx context.Context, item domain.LineItem) (domain.LineItem, error) {
	product, err := s.catalog.GetByCode(ctx, item.ItemCode)
	if err != nil {
		if errors.Is(err, productdomain.ErrNotFound) {
			return item, nil
		}
		return domain.LineItem{}, err
	}

	item.Brand = product.Brand
	item.ItemName = product.ItemName
	item.Description = product.Description
	item.Image = product.Image
	item.HSNCode = product.HSNCode
	item.Unit = product.Unit
	item.UnitPrice = product.UnitPrice
	item.DiscountPercent = product.DiscountPercent
	item.Amount = calc.AmountForFill(item.Quantity, product.UnitPrice, product.DiscountPercent)
	return item, nil
}

func (s *Service) currencyOrDefault(value string) string {
	currency := strings.ToUpper(strings.TrimSpace(value))
	if currency == "" {
		currency = strings.ToUpper(strings.TrimSpace(s.cfg.InvoiceCurrency))
	}
	if currency == "" {
		currency = defaultCurrency
	}
	return currency
}

func (s *Service) numberTemplate() string {
	if strings.TrimSpace(s.cfg.InvoiceNumberTemplate) != "" {
		return s.cfg.InvoiceNumberTemplate
	}
	return format.DefaultNumberTemplate
}

func buildClientSnapshot(in *domain.ClientInput) (*snowflake.ID, *domain.ClientSnapshot, error) {
	if in == nil {
		return nil, nil, nil
	}

	snapshot := &domain.ClientSnapshot{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	if snapshot.Name == "" {
		return nil, nil, domain.ErrInvalidClient
	}

	if strings.TrimSpace(in.ID) == "" {
		return nil, snapshot, nil
	}
	id, err := snowflake.ParseString(strings.TrimSpace(in.ID))
	if err != nil || id == 0 {
		return nil, nil, domain.ErrInvalidClient
	}
	return &id, snapshot, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseType(value string) (domain.DocumentType, error) {
	switch domain.DocumentType(strings.TrimSpace(value)) {
	case domain.TypeInvoice:
		return domain.TypeInvoice, nil
	case domain.TypeReceipt:
		return domain.TypeReceipt, nil
	default:
		return "", domain.ErrInvalidType
	}
}

func parseStatus(value string) (domain.Status, error) {
	switch domain.Status(strings.TrimSpace(value)) {
	case domain.StatusDraft:
		return domain.StatusDraft, nil
	case domain.StatusUnpaid:
		return domain.StatusUnpaid, nil
	case domain.StatusPartial:
		return domain.StatusPartial, nil
	case domain.StatusPaid:
		return domain.StatusPaid, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}
