package internal

import (
	"net/http"
	"sdd/internal/controllers"
	"sdd/internal/providers"
	"sdd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/diary", http.HandlerFunc(apiController.CreateDiary))
	routers.Put("/diary", http.HandlerFunc(apiController.UpdateDiary))
	routers.Delete("/diary", http.HandlerFunc(apiController.DeleteDiary))
	routers.Get("/list", http.HandlerFunc(apiController.ListDiaries))
	routers.Get("/statistics", http.HandlerFunc(apiController.GetStatistics))
	return routers
}
