package service

import (
	"context"
	"time"

	"github.com/smallbiznis/faktur/internal/invoice/calc"
	"github.com/smallbiznis/faktur/internal/invoice/domain"
	"github.com/smallbiznis/faktur/internal/invoice/format"
)

const documentDateLayout = "02 Jan 2006"

// BuildDocument flattens an invoice into the render-ready snapshot handed
// to the PDF and email providers.
func (s *Service) BuildDocument(ctx context.Context, id string) (domain.DocumentSnapshot, error) {
	invoice, err := s.GetByID(ctx, domain.GetInvoiceRequest{ID: id})
	if err != nil {
		return domain.DocumentSnapshot{}, err
	}

	return buildSnapshot(invoice, domain.CompanySnapshot{
		Name:    s.cfg.Company.Name,
		Email:   s.cfg.Company.Email,
		Phone:   s.cfg.Company.Phone,
		Address: s.cfg.Company.Address,
	}), nil
}

func buildSnapshot(invoice domain.Invoice, company domain.CompanySnapshot) domain.DocumentSnapshot {
	received := calc.TotalReceived(invoice.Payments)

	lines := make([]domain.DocumentLine, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, domain.DocumentLine{
			SrNo:            item.SrNo,
			ItemCode:        item.ItemCode,
			Brand:           item.Brand,
			ItemName:        item.ItemName,
			Image:           item.Image,
			HSNCode:         item.HSNCode,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Amount:          format.Commas(item.Amount),
		})
	}

	snapshot := domain.DocumentSnapshot{
		InvoiceNumber:  invoice.InvoiceNumber,
		Type:           string(invoice.Type),
		Status:         string(invoice.Status),
		IssuedAt:       formatDocumentDate(invoice.IssuedAt),
		DueDate:        formatDocumentDate(invoice.DueDate),
		Notes:          invoice.Notes,
		Items:          lines,
		Currency:       invoice.Currency,
		TaxRatePercent: format.Commas(invoice.TaxRatePercent),
		Subtotal:       format.Commas(invoice.Subtotal),
		Tax:            format.Commas(invoice.Tax),
		Total:          format.Commas(invoice.Total),
		TotalReceived:  format.Commas(received),
		BalanceDue:     format.Commas(calc.BalanceDue(invoice.Total, received)),
		Company:        company,
	}

	if invoice.Client != nil {
		snapshot.Name = invoice.Client.Name
		snapshot.Address = invoice.Client.Address
		snapshot.Phone = invoice.Client.Phone
		snapshot.Email = invoice.Client.Email
	}

	return snapshot
}

func formatDocumentDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(documentDateLayout)
}
