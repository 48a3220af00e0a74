package providers

import (
	"net/http"
	"rockbot/internal/structures"

	"github.com/julienschmidt/httprouter"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Build(metrics MetricsProviderInterface) *httprouter.Router
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  http.MethodGet,
		Url:     url,
		Handler: handler,
	})
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  http.MethodPost,
		Url:     url,
		Handler: handler,
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Build registers every route on a fresh httprouter, each wrapped with the
// metrics middleware. httprouter answers wrong methods with 405 itself.
func (rp *RouterProvider) Build(metrics MetricsProviderInterface) *httprouter.Router {
	router := httprouter.New()
	router.HandleMethodNotAllowed = true
	for _, route := range rp.routes {
		router.Handler(route.Method, route.Url, MetricsMiddleware(metrics, route.Url, route.Handler))
	}
	return router
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}
