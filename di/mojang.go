package di

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/defval/di"
	"github.com/spf13/viper"

	"github.com/wurstmineberg/playerhead/api/mojang"
)

var mojangApi = di.Options(
	di.Provide(newMojangApi),
)

func newMojangApi(config *viper.Viper, httpClient *http.Client, emitter mojang.Emitter) (*mojang.MojangApi, error) {
	var uuidsUrl string
	apiUrl := config.GetString("mojang.api_base_url")
	if apiUrl != "" {
		u, err := url.ParseRequestURI(apiUrl)
		if err != nil {
			return nil, err
		}

		uuidsUrl = strings.TrimSuffix(u.String(), "/") + "/users/profiles/minecraft/"
	}

	var profileUrl string
	sessionServerUrl := config.GetString("mojang.session_server_base_url")
	if sessionServerUrl != "" {
		u, err := url.ParseRequestURI(sessionServerUrl)
		if err != nil {
			return nil, err
		}

		profileUrl = strings.TrimSuffix(u.String(), "/") + "/session/minecraft/profile/"
	}

	return mojang.NewMojangApi(httpClient, emitter, uuidsUrl, profileUrl), nil
}
