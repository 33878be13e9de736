package organization

import (
	"github.com/servewell/storefront/internal/organization/repository"
	"github.com/servewell/storefront/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
