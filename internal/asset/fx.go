package asset

import (
	"github.com/servewell/storefront/internal/asset/repository"
	"github.com/servewell/storefront/internal/asset/service"
	"go.uber.org/fx"
)

var Module = fx.Module("asset.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
