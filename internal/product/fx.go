package product

import (
	"github.com/smallbiznis/faktur/internal/product/repository"
	"github.com/smallbiznis/faktur/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
