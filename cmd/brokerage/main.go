package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/marmaralog/brokerage/internal/config"
	"github.com/marmaralog/brokerage/internal/migration"
	"github.com/marmaralog/brokerage/internal/server"
	"github.com/marmaralog/brokerage/pkg/db"
	"github.com/marmaralog/brokerage/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// HTTP surface, pulls in the domain modules
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
