// Package main provides the pagebuilder CLI.
//
// The CLI edits stored page documents through the same sessions and command
// handlers a host application uses:
//
//	pagebuilder show landing
//	pagebuilder apply landing add_block '{"blockType":"centered"}'
//	pagebuilder templates seed --config pagebuilder.yaml
//	pagebuilder import landing <template-id>
//
// PAGEBUILDER_CONFIG names the configuration file when --config is omitted.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "pagebuilder",
		Short:         "Edit page builder documents",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("PAGEBUILDER_CONFIG"), "Path to YAML configuration file")

	root.AddCommand(
		buildProjectsCmd(&configPath),
		buildShowCmd(&configPath),
		buildActionsCmd(),
		buildApplyCmd(&configPath),
		buildResetCmd(&configPath),
		buildImportCmd(&configPath),
		buildTemplatesCmd(&configPath),
	)
	return root
}
