package migration

import (
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	"github.com/servewell/storefront/internal/config"
	orderdomain "github.com/servewell/storefront/internal/order/domain"
	organizationdomain "github.com/servewell/storefront/internal/organization/domain"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	"github.com/servewell/storefront/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// AllModels lists every persisted model, in foreign key order.
func AllModels() []any {
	return []any{
		&organizationdomain.Organization{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.Variant{},
		&catalogdomain.CompatibleAccessory{},
		&pricingdomain.Tier{},
		&assetdomain.DesignAsset{},
		&cartdomain.Cart{},
		&cartdomain.Line{},
		&orderdomain.Order{},
		&orderdomain.Line{},
	}
}

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The SQL migrations target postgres. Other dialects, used for
			// local development and tests, get the schema from the models.
			if err := conn.AutoMigrate(AllModels()...); err != nil {
				return err
			}
		}

		if err := seed.EnsureDefaultOrg(conn); err != nil {
			return err
		}
		if cfg.SeedDemoCatalog {
			return seed.EnsureDemoCatalog(conn)
		}
		return nil
	}),
)
