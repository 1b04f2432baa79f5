package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
	"github.com/urgences-proches/backend/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hospitalctl",
		Short:         "Find and rank nearby emergency departments",
		Long:          `Query the hospital directory, match curated data and inspect recommendation scores from the command line`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			env := "production"
			if verbose {
				env = "development"
			}
			observability.InitLogger("hospitalctl", env)
			if !verbose {
				observability.SetLogLevel("warn")
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log to the console at info level")

	rootCmd.AddCommand(createNearbyCmd(config.Load))
	rootCmd.AddCommand(createMatchCmd(config.Load))
	rootCmd.AddCommand(createScoreCmd())
	rootCmd.AddCommand(createEvaluateCmd(config.Load))

	return rootCmd
}
