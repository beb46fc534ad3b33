// Package container wires the application's dependencies together.
package container

import (
	"visitas/internal/app"
	"visitas/internal/config"
	"visitas/internal/db"
	"visitas/internal/handler"
	"visitas/internal/router"
	"visitas/internal/services"
	"visitas/internal/store"

	"go.uber.org/dig"
)

// BuildContainer creates and configures the dependency injection container.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		// Infrastructure
		config.NewManager,
		db.NewDB,
		store.NewStore,

		// Services
		services.NewAuthService,
		services.NewVisitorService,
		services.NewFloorService,
		services.NewStatsService,
		services.NewReportService,
		services.NewSettingsService,

		// HTTP layer
		handler.NewServer,
		router.NewRouter,

		// Application
		app.NewApp,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
