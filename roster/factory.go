package roster

import (
	"context"
	"io"
	"os"

	"github.com/spf13/viper"
)

// Factory builds roster sources out of the application configuration.
type Factory struct {
	Config  *viper.Viper
	Emitter Emitter
}

func (f *Factory) CreatePeopleDatabaseSource(ctx context.Context, usePersonId bool) (Source, error) {
	f.Config.SetDefault("people.dsn", "postgres://localhost/wurstmineberg")

	return NewPeopleDatabaseSource(ctx, f.Config.GetString("people.dsn"), usePersonId, f.Emitter)
}

func (f *Factory) CreatePeopleFileSource(path string, usePersonId bool) (Source, error) {
	return NewPeopleFileSource(path, usePersonId, f.Emitter)
}

func (f *Factory) CreateWhitelistSource(path string) (Source, error) {
	return NewWhitelistSource(path)
}

func (f *Factory) CreatePromptSource(in io.Reader, out io.Writer, prompt string, interrupt <-chan os.Signal) Source {
	return NewPromptSource(in, out, prompt, interrupt)
}

func (f *Factory) CreateStaticSource(usernames ...string) Source {
	return NewStaticSource(usernames...)
}
