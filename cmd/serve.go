package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wurstmineberg/playerhead/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP server rendering head and body sprites on demand",
	RunE: func(cmd *cobra.Command, args []string) error {
		return shouldGetContainer().Invoke(http.StartServer)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
