package http

import (
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/thedevsaddam/govalidator"

	"github.com/wurstmineberg/playerhead/api/mojang"
	"github.com/wurstmineberg/playerhead/skin"
	"github.com/wurstmineberg/playerhead/sprite"
)

type SkinsProvider interface {
	GetForPlayer(ctx context.Context, username string, profileId string) (*skin.Skin, error)
}

type Playerhead struct {
	Skins SkinsProvider
}

func (ctx *Playerhead) Handler() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/heads/{player}", ctx.Head).Methods("GET")
	router.HandleFunc("/bodies/{player}", ctx.Body).Methods("GET")
	// Legacy
	router.HandleFunc("/heads", ctx.HeadGET).Methods("GET")

	return router
}

func (ctx *Playerhead) Head(response http.ResponseWriter, request *http.Request) {
	ctx.servePlayer(response, request, false)
}

func (ctx *Playerhead) Body(response http.ResponseWriter, request *http.Request) {
	ctx.servePlayer(response, request, true)
}

func (ctx *Playerhead) HeadGET(response http.ResponseWriter, request *http.Request) {
	username := request.URL.Query().Get("name")
	if username == "" {
		response.WriteHeader(http.StatusBadRequest)
		return
	}

	mux.Vars(request)["player"] = username

	ctx.Head(response, request)
}

func (ctx *Playerhead) servePlayer(response http.ResponseWriter, request *http.Request, fullBody bool) {
	validationErrors := validateSpriteRequest(request)
	if validationErrors != nil {
		apiBadRequest(response, validationErrors)
		return
	}

	username := parsePlayerName(mux.Vars(request)["player"])

	playerSkin, err := ctx.Skins.GetForPlayer(request.Context(), username, "")
	if err != nil {
		var notFoundErr *mojang.ProfileNotFoundError
		var invalidUsernameErr *skin.InvalidUsernameError
		if errors.As(err, &notFoundErr) || errors.As(err, &invalidUsernameErr) {
			apiNotFound(response, "Player not found")
			return
		}

		apiUpstreamError(response)
		return
	}

	withHat := true
	if hatParam := request.Form.Get("hat"); hatParam != "" {
		withHat, _ = strconv.ParseBool(hatParam)
	}

	var img *image.NRGBA
	if fullBody {
		img, err = sprite.Body(playerSkin, withHat)
	} else {
		img, err = sprite.Head(playerSkin, withHat)
	}

	if err != nil {
		apiUpstreamError(response)
		return
	}

	var width, height int
	if size, _ := strconv.Atoi(request.Form.Get("size")); size > 0 {
		width = size
		height = size
		if fullBody {
			height = size * 2
		}
	}

	response.Header().Set("Content-Type", "image/png")
	_ = png.Encode(response, sprite.Scale(img, width, height))
}

func validateSpriteRequest(request *http.Request) map[string][]string {
	_ = request.ParseForm()

	validator := govalidator.New(govalidator.Options{
		Request: request,
		Rules: govalidator.MapData{
			"size": {"numeric_between:8,1024"},
			"hat":  {"bool"},
		},
		RequiredDefault: false,
	})

	validationResults := validator.Validate()
	if len(validationResults) != 0 {
		return validationResults
	}

	return nil
}
