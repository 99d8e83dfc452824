package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/rewind/internal/adapters/file"
	"github.com/aretw0/rewind/internal/compiler"
	"github.com/aretw0/rewind/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph]",
	Short: "Check the graph for consistency",
	Long:  `Crawls the graph from its initial state and reports dead links, reserved event keys and unreachable states.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lenient, _ := cmd.Flags().GetBool("lenient")
		if err := runValidate(cmd.Context(), cmd.OutOrStdout(), graphPath(cmd, args), lenient); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Graph is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("lenient", false, "Ignore unknown keys in the document")
}

func runValidate(ctx context.Context, w io.Writer, path string, lenient bool) error {
	var opts []compiler.ParserOption
	if lenient {
		opts = append(opts, compiler.WithLenient())
	}

	graph, err := file.NewLoader(path, opts...).Load(ctx)
	if err != nil {
		return err
	}

	report := validator.ValidateGraph(graph)
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return report.Err()
}
