package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagebuilder"
	projectscmd "github.com/goliatone/go-pagebuilder/internal/commands/projects"
	"github.com/goliatone/go-pagebuilder/internal/editor"
)

func loadConfig(configPath string) (pagebuilder.Config, error) {
	if strings.TrimSpace(configPath) == "" {
		return pagebuilder.DefaultConfig(), nil
	}
	cfg, err := pagebuilder.LoadConfig(configPath)
	if err != nil {
		return pagebuilder.Config{}, fmt.Errorf("load config %s: %w", configPath, err)
	}
	return cfg, nil
}

// withModule builds a module for the duration of fn and closes it afterwards,
// flushing any pending saves.
func withModule(cmd *cobra.Command, configPath string, fn func(context.Context, *pagebuilder.Module) error) (err error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	module, err := pagebuilder.New(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if closeErr := module.Close(context.Background()); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(ctx, module)
}

func printDocument(cmd *cobra.Command, doc pagebuilder.Site) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return err
}

func runProjects(cmd *cobra.Command, configPath string) error {
	return withModule(cmd, configPath, func(ctx context.Context, module *pagebuilder.Module) error {
		projects, err := module.Projects(ctx)
		if err != nil {
			return err
		}
		for _, id := range projects {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	})
}

func runShow(cmd *cobra.Command, configPath, projectID string) error {
	return withModule(cmd, configPath, func(ctx context.Context, module *pagebuilder.Module) error {
		doc, err := module.Load(ctx, projectID)
		if err != nil {
			return err
		}
		return printDocument(cmd, doc)
	})
}

func runActions(cmd *cobra.Command) error {
	for _, name := range editor.ActionNames() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runApply(cmd *cobra.Command, configPath, projectID, name, payload string, printDoc bool) error {
	action, err := editor.DecodeAction(name, []byte(payload))
	if err != nil {
		return err
	}
	return withModule(cmd, configPath, func(ctx context.Context, module *pagebuilder.Module) error {
		var outcome editor.Outcome
		result, err := module.RegisterCommands(projectscmd.RegistrationOptions{
			Dispatcher: projectscmd.GlobalDispatcher{},
			OnOutcome: func(_ projectscmd.ApplyActionCommand, o editor.Outcome) {
				outcome = o
			},
		})
		if err != nil {
			return err
		}
		defer result.Unsubscribe()

		err = dispatcher.Dispatch(ctx, projectscmd.ApplyActionCommand{
			ProjectID: projectID,
			Action:    action,
			Flush:     true,
		})
		if err != nil {
			return err
		}

		switch {
		case outcome.Err != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", action.Type(), outcome.Err)
		case outcome.Noop():
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no changes\n", action.Type())
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: applied (document=%t selection=%t page=%t)\n",
				action.Type(), outcome.DocumentChanged, outcome.SelectionChanged, outcome.PageChanged)
		}
		if !printDoc {
			return nil
		}
		doc, err := module.Load(ctx, projectID)
		if err != nil {
			return err
		}
		return printDocument(cmd, doc)
	})
}

func runReset(cmd *cobra.Command, configPath, projectID string) error {
	return withModule(cmd, configPath, func(ctx context.Context, module *pagebuilder.Module) error {
		session, err := module.Reset(ctx, projectID)
		if err != nil {
			return err
		}
		if err := session.Flush(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: reset\n", projectID)
		return nil
	})
}

func runImport(cmd *cobra.Command, configPath, projectID, rawTemplateID string) error {
	templateID, err := uuid.Parse(strings.TrimSpace(rawTemplateID))
	if err != nil {
		return fmt.Errorf("invalid template id %q: %w", rawTemplateID, err)
	}
	return withModule(cmd, configPath, func(ctx context.Context, module *pagebuilder.Module) error {
		if err := module.SeedTemplates(ctx); err != nil {
			return err
		}
		session, err := module.NewFromTemplate(ctx, projectID, templateID)
		if err != nil {
			return err
		}
		if err := session.Flush(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: imported template %s (%d pages)\n",
			projectID, templateID, len(session.State().Site.Pages))
		return nil
	})
}

func runTemplatesList(cmd *cobra.Command, configPath, categoryCode string) error {
	return withModule(cmd, configPath, func(ctx context.Context, module *pagebuilder.Module) error {
		if err := module.SeedTemplates(ctx); err != nil {
			return err
		}
		categoryID := uuid.Nil
		if code := strings.TrimSpace(categoryCode); code != "" {
			category, err := module.Templates().GetCategoryByCode(ctx, code)
			if err != nil {
				return err
			}
			categoryID = category.ID
		}
		list, err := module.Templates().ListTemplates(ctx, categoryID)
		if err != nil {
			return err
		}
		for _, tpl := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", tpl.ID, tpl.Code, tpl.Name)
		}
		return nil
	})
}

func runTemplatesSeed(cmd *cobra.Command, configPath string) error {
	return withModule(cmd, configPath, func(ctx context.Context, module *pagebuilder.Module) error {
		if err := module.SeedTemplates(ctx); err != nil {
			return err
		}
		categories, err := module.Templates().ListCategories(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories\n", len(categories))
		return nil
	})
}
