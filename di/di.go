package di

import "github.com/defval/di"

func New() (*di.Container, error) {
	container, err := di.New(
		config,
		appContext,
		dispatcher,
		logger,
		httpClient,
		mojangApi,
		skins,
		roster,
		generator,
		handlers,
		server,
	)
	if err != nil {
		return nil, err
	}

	return container, nil
}
