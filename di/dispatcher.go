package di

import (
	"github.com/defval/di"
	"github.com/mono83/slf"

	"github.com/wurstmineberg/playerhead/api/mojang"
	d "github.com/wurstmineberg/playerhead/dispatcher"
	"github.com/wurstmineberg/playerhead/eventsubscribers"
	generatorModule "github.com/wurstmineberg/playerhead/generator"
	"github.com/wurstmineberg/playerhead/http"
	rosterModule "github.com/wurstmineberg/playerhead/roster"
	"github.com/wurstmineberg/playerhead/skin"
)

var dispatcher = di.Options(
	di.Provide(newDispatcher,
		di.As(new(d.Emitter)),
		di.As(new(d.Subscriber)),
		di.As(new(http.Emitter)),
		di.As(new(mojang.Emitter)),
		di.As(new(skin.Emitter)),
		di.As(new(rosterModule.Emitter)),
		di.As(new(generatorModule.Emitter)),
		di.As(new(eventsubscribers.Subscriber)),
	),
	di.Invoke(enableEventsHandlers),
)

func newDispatcher() d.Dispatcher {
	return d.New()
}

func enableEventsHandlers(
	dispatcher d.Subscriber,
	logger slf.Logger,
	statsReporter slf.StatsReporter,
) {
	// TODO: use idea from https://github.com/defval/di/issues/10#issuecomment-615869852
	(&eventsubscribers.Logger{Logger: logger}).ConfigureWithDispatcher(dispatcher)
	if statsReporter != nil {
		(&eventsubscribers.StatsReporter{StatsReporter: statsReporter}).ConfigureWithDispatcher(dispatcher)
	}
}
