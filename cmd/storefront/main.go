package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/servewell/storefront/internal/clock"
	"github.com/servewell/storefront/internal/config"
	"github.com/servewell/storefront/internal/migration"
	"github.com/servewell/storefront/internal/server"
	"github.com/servewell/storefront/pkg/db"
	"github.com/servewell/storefront/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
