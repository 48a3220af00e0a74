package internal

import (
	"net/http"
	"rockbot/internal/controllers"
	"rockbot/internal/providers"
	"rockbot/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/channels/:channel/round", http.HandlerFunc(apiController.StartRound))
	routers.Post("/channels/:channel/answer", http.HandlerFunc(apiController.Answer))
	routers.Get("/channels/:channel/hint", http.HandlerFunc(apiController.Hint))
	routers.Post("/channels/:channel/quit", http.HandlerFunc(apiController.Quit))
	routers.Get("/channels/:channel/image", http.HandlerFunc(apiController.Image))
	routers.Get("/users/:user/stats", http.HandlerFunc(apiController.UserStats))
	routers.Get("/leaderboard", http.HandlerFunc(apiController.Leaderboard))
	routers.Post("/catalog/reload", http.HandlerFunc(apiController.Reload))
	return routers
}
