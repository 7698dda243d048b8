// @title        Lumina API
// @version      1.0
// @description  Personal productivity backend: todos with daily rollover, diary, tagged notes and goals.
// @BasePath     /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"

	"github.com/rohits-web03/lumina/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Lumina productivity API server",
	Long: `Lumina serves the todo, diary, note and goal API and runs the
daily reminder job. Without a subcommand it starts the server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init()
	},
	RunE: runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, remindCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
