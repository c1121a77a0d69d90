package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/faktur/internal/config"
	"github.com/smallbiznis/faktur/internal/invoice/domain"
	"github.com/smallbiznis/faktur/internal/invoice/repository"
	productdomain "github.com/smallbiznis/faktur/internal/product/domain"
	productrepository "github.com/smallbiznis/faktur/internal/product/repository"
	productservice "github.com/smallbiznis/faktur/internal/product/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Invoice{}, &domain.LineItem{}, &domain.PaymentRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Cfg: config.Config{
			Company: config.CompanyConfig{
				Name:    "Acme Traders",
				Email:   "billing@acme.test",
				Phone:   "555-0100",
				Address: "1 Market Street",
			},
		},
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func newTestServiceWithCatalog(t *testing.T) (domain.Service, productdomain.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Invoice{}, &domain.LineItem{}, &domain.PaymentRecord{}, &productdomain.Product{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	catalog := productservice.New(productservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  productrepository.Provide(db),
	})

	svc := New(Params{
		Cfg:     config.Config{},
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    repository.Provide(),
		Catalog: catalog,
	})
	return svc, catalog
}

func testClient() *domain.ClientInput {
	return &domain.ClientInput{
		Name:    "Globex",
		Email:   "ap@globex.test",
		Phone:   "555-0199",
		Address: "9 Harbor Road",
	}
}

func testItems() []domain.LineItemInput {
	return []domain.LineItemInput{
		{ItemName: "Widget", Quantity: "2", UnitPrice: "100", DiscountPercent: "10"},
		{ItemName: "Gadget", Quantity: "1", UnitPrice: "50"},
	}
}

func TestCreateInvoiceDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TypeInvoice, invoice.Type)
	assert.Equal(t, domain.StatusUnpaid, invoice.Status)
	assert.NotEmpty(t, invoice.InvoiceNumber)

	// default tax rate applies when none is sent
	assert.InDelta(t, 18, invoice.TaxRatePercent, 1e-9)
	assert.InDelta(t, 230, invoice.Subtotal, 1e-9)
	assert.InDelta(t, 41.4, invoice.Tax, 1e-9)
	assert.InDelta(t, 271.4, invoice.Total, 1e-9)

	// due date defaults to a week after issue
	assert.WithinDuration(t, invoice.IssuedAt.Add(7*24*time.Hour), invoice.DueDate, time.Second)

	require.Len(t, invoice.Items, 2)
	assert.Equal(t, 1, invoice.Items[0].SrNo)
	assert.Equal(t, 2, invoice.Items[1].SrNo)
	assert.InDelta(t, 180, invoice.Items[0].Amount, 1e-9)
	assert.InDelta(t, 50, invoice.Items[1].Amount, 1e-9)

	second, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, invoice.InvoiceNumber, second.InvoiceNumber)
}

func TestCreateInvoiceCurrency(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)
	assert.Equal(t, "INR", invoice.Currency)

	explicit, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client:   testClient(),
		Items:    testItems(),
		Currency: " usd ",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", explicit.Currency)

	// blank currency on update keeps the stored tag
	updated, err := svc.Update(ctx, explicit.ID.String(), domain.UpdateInvoiceRequest{
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", updated.Currency)

	retagged, err := svc.Update(ctx, explicit.ID.String(), domain.UpdateInvoiceRequest{
		Client:   testClient(),
		Items:    testItems(),
		Currency: "eur",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", retagged.Currency)
}

func TestLineItemImagePersists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items: []domain.LineItemInput{
			{ItemName: "Widget", Quantity: "1", UnitPrice: "100", Image: "https://cdn.test/widget.png"},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, domain.GetInvoiceRequest{ID: invoice.ID.String()})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "https://cdn.test/widget.png", got.Items[0].Image)

	doc, err := svc.BuildDocument(ctx, invoice.ID.String())
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "https://cdn.test/widget.png", doc.Items[0].Image)
}

func TestCreateFillsLineFromCatalog(t *testing.T) {
	svc, catalog := newTestServiceWithCatalog(t)
	ctx := context.Background()

	_, err := catalog.Create(ctx, productdomain.CreateProductRequest{
		ItemCode:        "wdg-1",
		Brand:           "Acme",
		ItemName:        "Widget",
		Description:     "standard widget",
		HSNCode:         "8471",
		UnitPrice:       "100",
		Unit:            "pc",
		DiscountPercent: "10",
		Image:           "https://cdn.test/widget.png",
	})
	require.NoError(t, err)

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items: []domain.LineItemInput{
			{ItemCode: "WDG-1"},
			{ItemCode: "wdg-1", Quantity: "3"},
			{ItemCode: "NOPE-9", ItemName: "", Quantity: "2", UnitPrice: "5"},
		},
		TaxRatePercent: "0",
	})
	require.NoError(t, err)
	require.Len(t, invoice.Items, 3)

	// blank quantity bills as one unit but stays blank on the stored row
	filled := invoice.Items[0]
	assert.Equal(t, "Widget", filled.ItemName)
	assert.Equal(t, "Acme", filled.Brand)
	assert.Equal(t, "8471", filled.HSNCode)
	assert.Equal(t, "pc", filled.Unit)
	assert.Equal(t, "100", filled.UnitPrice)
	assert.Equal(t, "10", filled.DiscountPercent)
	assert.Equal(t, "https://cdn.test/widget.png", filled.Image)
	assert.Empty(t, filled.Quantity)
	assert.InDelta(t, 90, filled.Amount, 1e-9)

	assert.InDelta(t, 270, invoice.Items[1].Amount, 1e-9)

	// unknown codes keep the line exactly as sent
	raw := invoice.Items[2]
	assert.Equal(t, "NOPE-9", raw.ItemCode)
	assert.Empty(t, raw.ItemName)
	assert.InDelta(t, 10, raw.Amount, 1e-9)
}

func TestCreateReceiptIsPaid(t *testing.T) {
	svc := newTestService(t)

	receipt, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		Type:   string(domain.TypeReceipt),
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, receipt.Status)
}

func TestCreateDraftSkipsPreconditions(t *testing.T) {
	svc := newTestService(t)

	draft, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		Draft: true,
		Notes: "work in progress",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, draft.Status)
	assert.Nil(t, draft.Client)
	assert.Empty(t, draft.Items)
}

func TestCreatePreconditions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateInvoiceRequest{Items: testItems()})
	assert.ErrorIs(t, err, domain.ErrInvalidClient)

	_, err = svc.Create(ctx, domain.CreateInvoiceRequest{Client: testClient()})
	assert.ErrorIs(t, err, domain.ErrInvalidItems)

	_, err = svc.Create(ctx, domain.CreateInvoiceRequest{
		Type:   "Quote",
		Client: testClient(),
		Items:  testItems(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestRecordPaymentPartialThenSettle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)

	partial, err := svc.RecordPayment(ctx, invoice.ID.String(), domain.RecordPaymentRequest{
		AmountPaid:    "100",
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartial, partial.Status)
	require.Len(t, partial.Payments, 1)

	// blank amount settles the remaining balance
	settled, err := svc.RecordPayment(ctx, invoice.ID.String(), domain.RecordPaymentRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, settled.Status)
	require.Len(t, settled.Payments, 2)

	// earlier ledger rows are untouched
	assert.InDelta(t, 100, settled.Payments[0].AmountPaid, 1e-9)
	assert.Equal(t, "Cash", settled.Payments[0].PaymentMethod)
	assert.InDelta(t, 171.4, settled.Payments[1].AmountPaid, 1e-9)
}

func TestRecordPaymentOverpayment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)

	paid, err := svc.RecordPayment(ctx, invoice.ID.String(), domain.RecordPaymentRequest{
		AmountPaid: "300",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, paid.Status)

	doc, err := svc.BuildDocument(ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "-28.60", doc.BalanceDue)
}

func TestRecordPaymentDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)

	paid, err := svc.RecordPayment(ctx, invoice.ID.String(), domain.RecordPaymentRequest{
		AmountPaid: "50",
	})
	require.NoError(t, err)
	require.Len(t, paid.Payments, 1)
	assert.Equal(t, "Bank Transfer", paid.Payments[0].PaymentMethod)
	assert.Equal(t, "Globex", paid.Payments[0].PaidBy)
	assert.False(t, paid.Payments[0].DatePaid.IsZero())
}

func TestRecordPaymentOnDraftRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, domain.CreateInvoiceRequest{Draft: true})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, draft.ID.String(), domain.RecordPaymentRequest{AmountPaid: "10"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateRecomputesAndRenumbers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items: []domain.LineItemInput{
			{ItemName: "A", Quantity: "1", UnitPrice: "10"},
			{ItemName: "B", Quantity: "1", UnitPrice: "20"},
			{ItemName: "C", Quantity: "1", UnitPrice: "30"},
		},
		TaxRatePercent: "0",
	})
	require.NoError(t, err)
	assert.InDelta(t, 60, invoice.Total, 1e-9)

	// drop the middle row; serials close the gap
	updated, err := svc.Update(ctx, invoice.ID.String(), domain.UpdateInvoiceRequest{
		Client: testClient(),
		Items: []domain.LineItemInput{
			{ItemName: "A", Quantity: "1", UnitPrice: "10"},
			{ItemName: "C", Quantity: "1", UnitPrice: "30"},
		},
		TaxRatePercent: "0",
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, 1, updated.Items[0].SrNo)
	assert.Equal(t, 2, updated.Items[1].SrNo)
	assert.Equal(t, "C", updated.Items[1].ItemName)
	assert.InDelta(t, 40, updated.Total, 1e-9)

	got, err := svc.GetByID(ctx, domain.GetInvoiceRequest{ID: invoice.ID.String()})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.InDelta(t, 40, got.Total, 1e-9)
}

func TestUpdateCanRegressSettledStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client:         testClient(),
		Items:          []domain.LineItemInput{{ItemName: "A", Quantity: "1", UnitPrice: "100"}},
		TaxRatePercent: "0",
	})
	require.NoError(t, err)

	paid, err := svc.RecordPayment(ctx, invoice.ID.String(), domain.RecordPaymentRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, paid.Status)

	// growing the total reopens the document against the stored ledger
	updated, err := svc.Update(ctx, invoice.ID.String(), domain.UpdateInvoiceRequest{
		Client:         testClient(),
		Items:          []domain.LineItemInput{{ItemName: "A", Quantity: "2", UnitPrice: "100"}},
		TaxRatePercent: "0",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartial, updated.Status)
	require.Len(t, updated.Payments, 1)
}

func TestBuildDocument(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, invoice.ID.String(), domain.RecordPaymentRequest{AmountPaid: "100"})
	require.NoError(t, err)

	doc, err := svc.BuildDocument(ctx, invoice.ID.String())
	require.NoError(t, err)

	assert.Equal(t, invoice.InvoiceNumber, doc.InvoiceNumber)
	assert.Equal(t, "Globex", doc.Name)
	assert.Equal(t, "Acme Traders", doc.Company.Name)
	assert.Equal(t, "INR", doc.Currency)
	assert.Equal(t, "230.00", doc.Subtotal)
	assert.Equal(t, "41.40", doc.Tax)
	assert.Equal(t, "271.40", doc.Total)
	assert.Equal(t, "100.00", doc.TotalReceived)
	assert.Equal(t, "171.40", doc.BalanceDue)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "180.00", doc.Items[0].Amount)
}

func TestGetByIDErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, domain.GetInvoiceRequest{ID: "not-a-number"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(ctx, domain.GetInvoiceRequest{ID: "123456789"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateInvoiceRequest{Client: testClient(), Items: testItems()})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateInvoiceRequest{
		Type:   string(domain.TypeReceipt),
		Client: testClient(),
		Items:  testItems(),
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, domain.ListInvoiceRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Invoices, 2)

	receipts, err := svc.List(ctx, domain.ListInvoiceRequest{Type: string(domain.TypeReceipt)})
	require.NoError(t, err)
	require.Len(t, receipts.Invoices, 1)
	assert.Equal(t, domain.TypeReceipt, receipts.Invoices[0].Type)

	unpaid, err := svc.List(ctx, domain.ListInvoiceRequest{Status: string(domain.StatusUnpaid)})
	require.NoError(t, err)
	assert.Len(t, unpaid.Invoices, 1)

	_, err = svc.List(ctx, domain.ListInvoiceRequest{Status: "Settled"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
