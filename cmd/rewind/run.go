package main

import (
	"github.com/aretw0/rewind/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [graph]",
	Short: "Drive a machine interactively",
	Long: `Starts an interpreter for the graph and reads commands from stdin.
Type 'help' in the session for the command list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel, _ := cmd.Flags().GetString("log-level")
		contextJSON, _ := cmd.Flags().GetString("context")
		plain, _ := cmd.Flags().GetBool("plain")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.Execute(sigCtx, cli.RunOptions{
			GraphPath: graphPath(cmd, args),
			LogLevel:  logLevel,
			Context:   contextJSON,
			Plain:     plain,
		}, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("context", "", "Initial context as a JSON object, merged over the graph context")
	runCmd.Flags().Bool("plain", false, "Disable banner, prompt and markdown styling")
}
