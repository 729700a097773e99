package main

import (
	"github.com/smallbiznis/meterdash/internal/observability"
	"github.com/smallbiznis/meterdash/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		server.Module,
	)

	app.Run()
}
