package di

import (
	"github.com/defval/di"

	generatorModule "github.com/wurstmineberg/playerhead/generator"
)

var generator = di.Options(
	di.Provide(newGenerator),
)

func newGenerator(skins generatorModule.SkinsProvider, emitter generatorModule.Emitter) *generatorModule.Generator {
	return &generatorModule.Generator{
		Skins:   skins,
		Emitter: emitter,
	}
}
