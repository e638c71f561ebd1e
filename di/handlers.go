package di

import (
	"net/http"

	"github.com/defval/di"
	"github.com/etherlabsio/healthcheck/v2"
	"github.com/gorilla/mux"

	. "github.com/wurstmineberg/playerhead/http"
)

var handlers = di.Options(
	di.Provide(newHandlerFactory, di.As(new(http.Handler))),
	di.Provide(newPlayerheadHandler, di.WithName("playerhead")),
)

func newHandlerFactory(
	container *di.Container,
	emitter Emitter,
) (*mux.Router, error) {
	var router *mux.Router
	if err := container.Resolve(&router, di.Name("playerhead")); err != nil {
		return nil, err
	}

	router.StrictSlash(true)
	requestEventsMiddleware := CreateRequestEventsMiddleware(emitter, "playerhead")
	router.Use(requestEventsMiddleware)
	// NotFoundHandler doesn't call for registered middlewares, so we must wrap it manually.
	// See https://github.com/gorilla/mux/issues/416#issuecomment-600079279
	router.NotFoundHandler = requestEventsMiddleware(http.HandlerFunc(NotFoundHandler))

	// Resolve health checkers last, because all the services required by the application
	// must first be initialized and each of them can publish its own checkers
	var healthCheckers []*namedHealthChecker
	if container.Has(&healthCheckers) {
		if err := container.Resolve(&healthCheckers); err != nil {
			return nil, err
		}

		checkersOptions := make([]healthcheck.Option, len(healthCheckers))
		for i, checker := range healthCheckers {
			checkersOptions[i] = healthcheck.WithChecker(checker.Name, checker.Checker)
		}

		router.Handle("/healthcheck", healthcheck.Handler(checkersOptions...)).Methods("GET")
	}

	return router, nil
}

func newPlayerheadHandler(skinsProvider SkinsProvider) *mux.Router {
	return (&Playerhead{
		Skins: skinsProvider,
	}).Handler()
}

type namedHealthChecker struct {
	Name    string
	Checker healthcheck.Checker
}
