package http

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wurstmineberg/playerhead/api/mojang"
	"github.com/wurstmineberg/playerhead/skin"
)

/***************
 * Setup mocks *
 ***************/

type skinsProviderMock struct {
	mock.Mock
}

func (m *skinsProviderMock) GetForPlayer(ctx context.Context, username string, profileId string) (*skin.Skin, error) {
	args := m.Called(username, profileId)
	var result *skin.Skin
	if casted, ok := args.Get(0).(*skin.Skin); ok {
		result = casted
	}

	return result, args.Error(1)
}

// createTestSkin paints the face green and the hat layer blue, leaving
// the rest of the texture transparent.
func createTestSkin() *skin.Skin {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for x := 8; x < 16; x++ {
		for y := 8; y < 16; y++ {
			img.SetNRGBA(x, y, color.NRGBA{G: 255, A: 255})
		}
	}

	for x := 40; x < 48; x++ {
		for y := 8; y < 16; y++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	return &skin.Skin{Image: img, Model: skin.ModelDefault}
}

/********************
 * Setup test suite *
 ********************/

type playerheadTestSuite struct {
	suite.Suite

	App   *Playerhead
	Skins *skinsProviderMock
}

func (suite *playerheadTestSuite) SetupTest() {
	suite.Skins = &skinsProviderMock{}
	suite.App = &Playerhead{Skins: suite.Skins}
}

func (suite *playerheadTestSuite) TearDownTest() {
	suite.Skins.AssertExpectations(suite.T())
}

func TestPlayerhead(t *testing.T) {
	suite.Run(t, new(playerheadTestSuite))
}

/*************
 * Run tests *
 *************/

func (suite *playerheadTestSuite) TestHead() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(createTestSkin(), nil)

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/Notch", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(200, response.StatusCode)
	suite.Equal("image/png", response.Header.Get("Content-Type"))

	head, err := png.Decode(response.Body)
	suite.Require().NoError(err)
	suite.Equal(8, head.Bounds().Dx())
	suite.Equal(8, head.Bounds().Dy())
	// The opaque hat layer covers the whole face
	suite.Equal(color.NRGBA{B: 255, A: 255}, color.NRGBAModel.Convert(head.At(0, 0)))
}

func (suite *playerheadTestSuite) TestHeadWithPngExtension() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(createTestSkin(), nil)

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/Notch.png", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(200, response.StatusCode)
	suite.Equal("image/png", response.Header.Get("Content-Type"))
}

func (suite *playerheadTestSuite) TestHeadWithoutHat() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(createTestSkin(), nil)

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/Notch?hat=false", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(200, response.StatusCode)

	head, err := png.Decode(response.Body)
	suite.Require().NoError(err)
	suite.Equal(color.NRGBA{G: 255, A: 255}, color.NRGBAModel.Convert(head.At(0, 0)))
}

func (suite *playerheadTestSuite) TestHeadScaled() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(createTestSkin(), nil)

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/Notch?size=32", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(200, response.StatusCode)

	head, err := png.Decode(response.Body)
	suite.Require().NoError(err)
	suite.Equal(32, head.Bounds().Dx())
	suite.Equal(32, head.Bounds().Dy())
}

func (suite *playerheadTestSuite) TestHeadWithInvalidSize() {
	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/Notch?size=4", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(400, response.StatusCode)
	suite.Equal("application/json", response.Header.Get("Content-Type"))
	body, _ := io.ReadAll(response.Body)
	suite.Contains(string(body), "size")
}

func (suite *playerheadTestSuite) TestBody() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(createTestSkin(), nil)

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/bodies/Notch", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(200, response.StatusCode)
	suite.Equal("image/png", response.Header.Get("Content-Type"))

	body, err := png.Decode(response.Body)
	suite.Require().NoError(err)
	suite.Equal(16, body.Bounds().Dx())
	suite.Equal(32, body.Bounds().Dy())
}

func (suite *playerheadTestSuite) TestBodyScaled() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(createTestSkin(), nil)

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/bodies/Notch?size=32", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(200, response.StatusCode)

	body, err := png.Decode(response.Body)
	suite.Require().NoError(err)
	suite.Equal(32, body.Bounds().Dx())
	suite.Equal(64, body.Bounds().Dy())
}

func (suite *playerheadTestSuite) TestHeadForUnknownPlayer() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(nil, &mojang.ProfileNotFoundError{Who: "Notch"})

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/Notch", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(404, response.StatusCode)
	suite.Equal("application/json", response.Header.Get("Content-Type"))
	body, _ := io.ReadAll(response.Body)
	suite.JSONEq(`{
		"error": "Player not found"
	}`, string(body))
}

func (suite *playerheadTestSuite) TestHeadForInvalidUsername() {
	suite.Skins.On("GetForPlayer", "invalid-name", "").Once().Return(nil, &skin.InvalidUsernameError{Username: "invalid-name"})

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/invalid-name", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(404, response.StatusCode)
}

func (suite *playerheadTestSuite) TestHeadWhenMojangIsUnavailable() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(nil, &mojang.ServerError{Status: 503})

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/Notch", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(502, response.StatusCode)
	suite.Equal("text/plain", response.Header.Get("Content-Type"))
}

func (suite *playerheadTestSuite) TestHeadWithBrokenUpstreamTexture() {
	brokenSkin := &skin.Skin{Image: image.NewNRGBA(image.Rect(0, 0, 10, 10)), Model: skin.ModelDefault}
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(brokenSkin, nil)

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads/Notch", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(502, response.StatusCode)
}

func (suite *playerheadTestSuite) TestLegacyHeadGET() {
	suite.Skins.On("GetForPlayer", "Notch", "").Once().Return(createTestSkin(), nil)

	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads?name=Notch", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(200, response.StatusCode)
	suite.Equal("image/png", response.Header.Get("Content-Type"))
}

func (suite *playerheadTestSuite) TestLegacyHeadGETWithoutName() {
	req := httptest.NewRequest("GET", "http://wurstmineberg.de/heads", nil)
	w := httptest.NewRecorder()

	suite.App.Handler().ServeHTTP(w, req)

	response := w.Result()
	suite.Equal(400, response.StatusCode)
}
