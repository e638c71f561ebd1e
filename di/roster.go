package di

import (
	"github.com/defval/di"
	"github.com/spf13/viper"

	rosterModule "github.com/wurstmineberg/playerhead/roster"
)

var roster = di.Options(
	di.Provide(newRosterFactory),
)

func newRosterFactory(config *viper.Viper, emitter rosterModule.Emitter) *rosterModule.Factory {
	return &rosterModule.Factory{
		Config:  config,
		Emitter: emitter,
	}
}
