// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"learnhub_backend/internal/app"
	"learnhub_backend/internal/clerk"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/course"
	"learnhub_backend/internal/platform/database"
	"learnhub_backend/internal/platform/logger"
	"learnhub_backend/internal/product"
	"learnhub_backend/internal/user"
	"learnhub_backend/internal/webhook"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,

		// Identity provider surface
		clerk.NewService,
		wire.Bind(new(clerk.MetadataSyncer), new(*clerk.Service)),
		clerk.NewSessionVerifier,

		// User store + webhook receiver
		user.NewGORMStore,
		user.NewService,
		webhook.NewVerifierFromConfig,
		webhook.NewHandler,

		// Resource modules
		course.NewGORMRepository,
		course.NewService,
		course.NewHandler,
		product.NewGORMRepository,
		product.NewService,
		product.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
