package di

import (
	"time"

	"github.com/defval/di"
	"github.com/spf13/viper"

	"github.com/wurstmineberg/playerhead/api/mojang"
	es "github.com/wurstmineberg/playerhead/eventsubscribers"
	generatorModule "github.com/wurstmineberg/playerhead/generator"
	"github.com/wurstmineberg/playerhead/http"
	"github.com/wurstmineberg/playerhead/skin"
)

var skins = di.Options(
	di.Provide(newSkinsProvider,
		di.As(new(http.SkinsProvider)),
		di.As(new(generatorModule.SkinsProvider)),
	),
)

func newSkinsProvider(
	container *di.Container,
	mojangApi *mojang.MojangApi,
	emitter skin.Emitter,
) (*skin.Provider, error) {
	if err := container.Provide(func(emitter es.Subscriber, config *viper.Viper) *namedHealthChecker {
		config.SetDefault("healthcheck.mojang_textures_cool_down_duration", time.Minute)

		return &namedHealthChecker{
			Name: "mojang-textures",
			Checker: es.MojangTexturesChecker(
				emitter,
				config.GetDuration("healthcheck.mojang_textures_cool_down_duration"),
			),
		}
	}); err != nil {
		return nil, err
	}

	return &skin.Provider{
		Emitter:          emitter,
		UuidsProvider:    mojangApi,
		ProfilesProvider: mojangApi,
	}, nil
}
