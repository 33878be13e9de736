package catalog

import (
	"github.com/servewell/storefront/internal/catalog/repository"
	"github.com/servewell/storefront/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
