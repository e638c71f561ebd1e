package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/defval/di"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wurstmineberg/playerhead/di"
	"github.com/wurstmineberg/playerhead/generator"
	"github.com/wurstmineberg/playerhead/roster"
	"github.com/wurstmineberg/playerhead/version"
)

var (
	cfgFile string

	outputDir     string
	size          int
	height        int
	fullBody      bool
	noHat         bool
	usePersonId   bool
	fromPeopleDb  bool
	peopleFile    string
	useWhitelist  bool
	whitelistFile string
)

var RootCmd = &cobra.Command{
	Use:           "playerhead [flags] [player]...",
	Short:         "Renders Minecraft player heads as PNG sprites",
	Version:       version.Version(),
	RunE:          runGenerate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	container := shouldGetContainer()

	var ctx context.Context
	if err := container.Resolve(&ctx); err != nil {
		return err
	}

	var factory *roster.Factory
	if err := container.Resolve(&factory); err != nil {
		return err
	}

	source, ctx, err := createSource(ctx, cmd, factory, args)
	if err != nil {
		return err
	}

	var heads *generator.Generator
	if err := container.Resolve(&heads); err != nil {
		return err
	}

	return heads.Run(ctx, source, generator.Options{
		TargetDir: targetDir(),
		Width:     size,
		Height:    height,
		FullBody:  fullBody,
		WithHat:   !noHat,
	})
}

// createSource picks the roster to render along with the context the batch
// should run under. The interactive source gets its own interrupt channel
// instead of the signal-bound base context, so that ^C finishes the player
// being rendered and then ends the loop like an EOF would.
func createSource(
	ctx context.Context,
	cmd *cobra.Command,
	factory *roster.Factory,
	args []string,
) (roster.Source, context.Context, error) {
	switch {
	case len(args) > 0:
		return factory.CreateStaticSource(args...), ctx, nil
	case fromPeopleDb:
		source, err := factory.CreatePeopleDatabaseSource(ctx, usePersonId)
		return source, ctx, err
	case peopleFile != "":
		source, err := factory.CreatePeopleFileSource(peopleFile, usePersonId)
		return source, ctx, err
	case useWhitelist || cmd.Flags().Changed("whitelist-file"):
		source, err := factory.CreateWhitelistSource(whitelistFile)
		return source, ctx, err
	default:
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)

		prompt := ""
		if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			prompt = "playerhead> "
		}

		return factory.CreatePromptSource(os.Stdin, os.Stdout, prompt, interrupt), context.Background(), nil
	}
}

func targetDir() string {
	if outputDir != "" {
		return outputDir
	}

	label := "default"
	if size > 0 {
		label = strconv.Itoa(size)
	}

	return filepath.Join("heads", label)
}

func shouldGetContainer() *Container {
	container, err := di.New()
	if err != nil {
		panic(err)
	}

	return container
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/playerhead/playerhead.yaml)")
	RootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress console logging")
	_ = viper.BindPFlag("quiet", RootCmd.PersistentFlags().Lookup("quiet"))

	flags := RootCmd.Flags()
	flags.StringVarP(&outputDir, "output-dir", "o", "", "directory to write the sprites to (default \"heads/<size>\")")
	flags.IntVarP(&size, "size", "s", 0, "width of the sprite in pixels (default 8, or 16 with --full-body)")
	flags.IntVar(&height, "height", 0, "height of the sprite in pixels (default is proportional to the width)")
	flags.BoolVar(&fullBody, "full-body", false, "render the whole body instead of just the head")
	flags.BoolVar(&noHat, "no-hat", false, "render without the hat layer")
	flags.BoolVar(&usePersonId, "use-person-id", false, "name the output files by person id instead of Minecraft nick")
	flags.BoolVar(&fromPeopleDb, "from-people-file", false, "render everyone with a Minecraft nick in the people database")
	flags.StringVar(&peopleFile, "people-file", "", "read the people from a JSON dump instead of the database")
	_ = flags.MarkDeprecated("people-file", "use --from-people-file to read from the people database")
	flags.BoolVar(&useWhitelist, "whitelist", false, "render everyone on the server whitelist")
	flags.StringVar(&whitelistFile, "whitelist-file", "/opt/wurstmineberg/world/wurstmineberg/whitelist.json", "path to the server whitelist")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("playerhead")
		viper.AddConfigPath("/etc/playerhead")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	_ = viper.ReadInConfig()
}
