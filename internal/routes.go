package internal

import (
	"net/http"

	"emotrack/internal/controllers"
	"emotrack/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, dashboardController *controllers.DashboardController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/emotions", http.HandlerFunc(apiController.Declare))
	routers.Get("/emotions", http.HandlerFunc(apiController.List))
	routers.Get("/emotions/today", http.HandlerFunc(apiController.Today))
	routers.Get("/export", http.HandlerFunc(apiController.Export))

	routers.Get("/dashboard", http.HandlerFunc(dashboardController.Dashboard))
	routers.Get("/statistics", http.HandlerFunc(dashboardController.Statistics))
	routers.Get("/alerts", http.HandlerFunc(dashboardController.Alerts))
	routers.Post("/alerts/resolve", http.HandlerFunc(dashboardController.Resolve))
	return routers
}
