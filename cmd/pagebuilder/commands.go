package main

import "github.com/spf13/cobra"

func buildProjectsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List stored projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjects(cmd, *configPath)
		},
	}
}

func buildShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [project]",
		Short: "Print the stored document of a project",
		Long: `Print the stored document of a project as JSON.

Projects that were never saved print the default document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, *configPath, args[0])
		},
	}
}

func buildActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the editor action names accepted by apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActions(cmd)
		},
	}
}

func buildApplyCmd(configPath *string) *cobra.Command {
	var printDoc bool
	cmd := &cobra.Command{
		Use:   "apply [project] [action] [payload]",
		Short: "Apply an editor action to a project",
		Long: `Apply an editor action to a project and save the result.

The payload is the JSON body of the action, for example:

  pagebuilder apply landing add_element '{"blockId":"hero","elementType":"title"}'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := ""
			if len(args) == 3 {
				payload = args[2]
			}
			return runApply(cmd, *configPath, args[0], args[1], payload, printDoc)
		},
	}
	cmd.Flags().BoolVar(&printDoc, "print", false, "Print the resulting document")
	return cmd
}

func buildResetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [project]",
		Short: "Replace a project with the default document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, *configPath, args[0])
		},
	}
}

func buildImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import [project] [template-id]",
		Short: "Replace a project with a template document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, *configPath, args[0], args[1])
		},
	}
}

func buildTemplatesCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage the template catalog",
	}
	cmd.AddCommand(
		buildTemplatesListCmd(configPath),
		buildTemplatesSeedCmd(configPath),
	)
	return cmd
}

func buildTemplatesListCmd(configPath *string) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesList(cmd, *configPath, category)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list templates of this category code")
	return cmd
}

func buildTemplatesSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the configured template seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesSeed(cmd, *configPath)
		},
	}
}
