package internal

import (
	"abconfig/internal/controllers"
	"abconfig/internal/providers"
	"abconfig/internal/structures"
	"net/http"
)

func InitRoutes(statusController *controllers.StatusController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/status", http.HandlerFunc(statusController.GetStatuses))
	routers.Get("/configs/event", http.HandlerFunc(statusController.GetEventConfig))
	routers.Post("/sync", http.HandlerFunc(statusController.TriggerSync))
	return routers
}
