package instance

import (
	"github.com/servewell/storefront/internal/instance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("instance.service",
	fx.Provide(service.New),
)
