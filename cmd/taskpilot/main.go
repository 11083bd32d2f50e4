package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskpilot-inc/taskpilot/internal/interfaces/cli/migrate"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskpilot",
		Short: "TaskPilot - recipient authorization and credential resolution service",
		Long:  `TaskPilot manages task platform recipients, credential sharing between principals, and delegated platform authentication.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
