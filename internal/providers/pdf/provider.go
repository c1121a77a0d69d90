package pdf

import (
	"context"
	"io"

	"github.com/smallbiznis/faktur/internal/invoice/domain"
)

type Provider interface {
	RenderInvoice(ctx context.Context, doc domain.DocumentSnapshot) (io.Reader, error)
}
