package providers

import (
	"github.com/smallbiznis/faktur/internal/providers/email"
	"github.com/smallbiznis/faktur/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
