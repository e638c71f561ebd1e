package generator

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wurstmineberg/playerhead/roster"
	"github.com/wurstmineberg/playerhead/skin"
)

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

type mockEmitter struct {
	mock.Mock
}

func (e *mockEmitter) Emit(name string, args ...interface{}) {
	e.Called(append([]interface{}{name}, args...)...)
}

func testSkin() *skin.Skin {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 120, G: 180, B: 60, A: 255})
		}
	}

	return &skin.Skin{Image: img, Model: skin.ModelDefault}
}

func decodePng(t *testing.T, path string) image.Image {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)

	return img
}

func TestWriteHead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "img", "head", "default")

	provider := &skinsProviderMock{}
	provider.On("GetForPlayer", "Notch", "").Once().Return(testSkin(), nil)

	expectedPath := filepath.Join(dir, "Notch.png")
	emitter := &mockEmitter{}
	emitter.On("Emit", "heads:written", "Notch", expectedPath).Once()

	gen := &Generator{Skins: provider, Emitter: emitter}

	path, err := gen.WriteHead(context.Background(), &roster.Entry{Username: "Notch"}, Options{TargetDir: dir})
	require.NoError(t, err)
	require.Equal(t, expectedPath, path)

	img := decodePng(t, path)
	require.Equal(t, 8, img.Bounds().Dx())
	require.Equal(t, 8, img.Bounds().Dy())

	provider.AssertExpectations(t)
	emitter.AssertExpectations(t)
}

func TestWriteHeadScaled(t *testing.T) {
	dir := t.TempDir()

	provider := &skinsProviderMock{}
	provider.On("GetForPlayer", "Notch", "").Once().Return(testSkin(), nil)

	emitter := &mockEmitter{}
	emitter.On("Emit", "heads:written", "Notch", mock.Anything).Once()

	gen := &Generator{Skins: provider, Emitter: emitter}

	path, err := gen.WriteHead(context.Background(), &roster.Entry{Username: "Notch"}, Options{TargetDir: dir, Width: 32})
	require.NoError(t, err)

	img := decodePng(t, path)
	require.Equal(t, 32, img.Bounds().Dx())
	require.Equal(t, 32, img.Bounds().Dy())
}

func TestWriteHeadFullBody(t *testing.T) {
	dir := t.TempDir()

	provider := &skinsProviderMock{}
	provider.On("GetForPlayer", "Notch", "").Once().Return(testSkin(), nil)

	emitter := &mockEmitter{}
	emitter.On("Emit", "heads:written", "Notch", mock.Anything).Once()

	gen := &Generator{Skins: provider, Emitter: emitter}

	path, err := gen.WriteHead(context.Background(), &roster.Entry{Username: "Notch"}, Options{TargetDir: dir, FullBody: true})
	require.NoError(t, err)

	img := decodePng(t, path)
	require.Equal(t, 16, img.Bounds().Dx())
	require.Equal(t, 32, img.Bounds().Dy())
}

func TestWriteHeadFullBodyScaled(t *testing.T) {
	dir := t.TempDir()

	provider := &skinsProviderMock{}
	provider.On("GetForPlayer", "Notch", "").Once().Return(testSkin(), nil)

	emitter := &mockEmitter{}
	emitter.On("Emit", "heads:written", "Notch", mock.Anything).Once()

	gen := &Generator{Skins: provider, Emitter: emitter}

	path, err := gen.WriteHead(context.Background(), &roster.Entry{Username: "Notch"}, Options{TargetDir: dir, Width: 48, FullBody: true})
	require.NoError(t, err)

	img := decodePng(t, path)
	require.Equal(t, 48, img.Bounds().Dx())
	require.Equal(t, 96, img.Bounds().Dy())
}

func TestWriteHeadWithFileId(t *testing.T) {
	dir := t.TempDir()

	provider := &skinsProviderMock{}
	provider.On("GetForPlayer", "Silver_Fish", "").Once().Return(testSkin(), nil)

	expectedPath := filepath.Join(dir, "silverfish.png")
	emitter := &mockEmitter{}
	emitter.On("Emit", "heads:written", "Silver_Fish", expectedPath).Once()

	gen := &Generator{Skins: provider, Emitter: emitter}

	path, err := gen.WriteHead(context.Background(), &roster.Entry{Username: "Silver_Fish", FileId: "silverfish"}, Options{TargetDir: dir})
	require.NoError(t, err)
	require.Equal(t, expectedPath, path)
	require.FileExists(t, expectedPath)
}

func TestWriteHeadWhenProviderFails(t *testing.T) {
	dir := t.TempDir()

	expectedErr := errors.New("mojang is down")
	provider := &skinsProviderMock{}
	provider.On("GetForPlayer", "Notch", "").Once().Return(nil, expectedErr)

	gen := &Generator{Skins: provider, Emitter: &mockEmitter{}}

	path, err := gen.WriteHead(context.Background(), &roster.Entry{Username: "Notch"}, Options{TargetDir: dir})
	require.Same(t, expectedErr, err)
	require.Empty(t, path)
	require.NoFileExists(t, filepath.Join(dir, "Notch.png"))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	resolveErr := errors.New("mojang is down")
	provider := &skinsProviderMock{}
	provider.On("GetForPlayer", "Notch", "").Once().Return(testSkin(), nil)
	provider.On("GetForPlayer", "jeb_", "").Once().Return(nil, resolveErr)
	provider.On("GetForPlayer", "Dinnerbone", "").Once().Return(testSkin(), nil)

	emitter := &mockEmitter{}
	emitter.On("Emit", "heads:written", "Notch", mock.Anything).Once()
	emitter.On("Emit", "heads:player_failed", "jeb_", resolveErr).Once()
	emitter.On("Emit", "heads:written", "Dinnerbone", mock.Anything).Once()

	gen := &Generator{Skins: provider, Emitter: emitter}

	err := gen.Run(context.Background(), roster.NewStaticSource("Notch", "jeb_", "Dinnerbone"), Options{TargetDir: dir})

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	require.Equal(t, 1, partial.Failed)
	require.Equal(t, 3, partial.Total)
	require.EqualError(t, err, "unable to write heads for 1 of 3 players")

	require.FileExists(t, filepath.Join(dir, "Notch.png"))
	require.NoFileExists(t, filepath.Join(dir, "jeb_.png"))
	require.FileExists(t, filepath.Join(dir, "Dinnerbone.png"))

	provider.AssertExpectations(t)
	emitter.AssertExpectations(t)
}

func TestRunWhenEveryPlayerSucceeds(t *testing.T) {
	dir := t.TempDir()

	provider := &skinsProviderMock{}
	provider.On("GetForPlayer", "Notch", "").Once().Return(testSkin(), nil)
	provider.On("GetForPlayer", "jeb_", "").Once().Return(testSkin(), nil)

	emitter := &mockEmitter{}
	emitter.On("Emit", "heads:written", mock.Anything, mock.Anything).Twice()

	gen := &Generator{Skins: provider, Emitter: emitter}

	err := gen.Run(context.Background(), roster.NewStaticSource("Notch", "jeb_"), Options{TargetDir: dir})
	require.NoError(t, err)
}

type failingSource struct {
	err error
}

func (s *failingSource) Next() (*roster.Entry, error) {
	return nil, s.err
}

func TestRunWhenSourceFails(t *testing.T) {
	gen := &Generator{Skins: &skinsProviderMock{}, Emitter: &mockEmitter{}}

	err := gen.Run(context.Background(), &failingSource{err: errors.New("disk went away")}, Options{TargetDir: t.TempDir()})
	require.EqualError(t, err, "unable to read the players list: disk went away")
}

func TestRunWhenContextIsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &skinsProviderMock{}
	gen := &Generator{Skins: provider, Emitter: &mockEmitter{}}

	err := gen.Run(ctx, roster.NewStaticSource("Notch"), Options{TargetDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)

	provider.AssertExpectations(t)
}
