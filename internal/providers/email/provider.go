package email

import (
	"context"

	"github.com/smallbiznis/faktur/internal/invoice/domain"
)

type Provider interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
	SendInvoice(ctx context.Context, to []string, doc domain.DocumentSnapshot) error
}

type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

func (p *NoOpProvider) SendInvoice(ctx context.Context, to []string, doc domain.DocumentSnapshot) error {
	return nil
}
