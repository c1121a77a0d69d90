package migration

import (
	clientdomain "github.com/smallbiznis/faktur/internal/client/domain"
	"github.com/smallbiznis/faktur/internal/config"
	invoicedomain "github.com/smallbiznis/faktur/internal/invoice/domain"
	productdomain "github.com/smallbiznis/faktur/internal/product/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Versioned SQL only targets postgres. Other dialects are for
			// local use and lean on gorm's schema sync.
			return conn.AutoMigrate(
				&invoicedomain.Invoice{},
				&invoicedomain.LineItem{},
				&invoicedomain.PaymentRecord{},
				&clientdomain.Client{},
				&productdomain.Product{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
