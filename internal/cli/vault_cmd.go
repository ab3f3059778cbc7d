package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/neuroplan/internal/cli/formatter"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/service"
	"github.com/spf13/cobra"
)

func newVaultCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Save and reuse prompts that shape the mentor's answers",
	}

	cmd.AddCommand(
		newVaultAddCmd(app),
		newVaultEditCmd(app),
		newVaultListCmd(app),
		newVaultShowCmd(app),
		newVaultDeleteCmd(app),
		newVaultTagsCmd(app),
		newVaultImportCmd(app),
	)

	return cmd
}

func newVaultAddCmd(app *App) *cobra.Command {
	var title, content, tags, category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new prompt",
		Long: `Save a new prompt. Run without --title in a terminal for a form.

Example:
  vault add --title Feynman --content "Explain it to a 12 year old" --tags study,memory --category study`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				if !app.interactive() {
					return fmt.Errorf("--title is required when not running in a terminal")
				}
				v := promptWizardValues{Content: content, Tags: tags, Category: category}
				if err := promptWizardForm(&v).Run(); err != nil {
					return err
				}
				title, content, tags, category = v.Title, v.Content, v.Tags, v.Category
			}

			p := &domain.VaultPrompt{
				Title:    title,
				Content:  content,
				Tags:     domain.SplitTags(tags),
				Category: category,
			}
			if err := app.Vault.Save(cmd.Context(), app.UserID, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved prompt %s %s\n", formatter.Bold(p.Title), formatter.Dim(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Prompt title")
	cmd.Flags().StringVar(&content, "content", "", "Prompt text")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma separated tags")
	enumFlag(cmd.Flags(), &category, "category", "", "category", "general, study, motivation, coding, writing or exam", domain.VaultCategories)

	return cmd
}

func newVaultEditCmd(app *App) *cobra.Command {
	var title, content, tags, category string

	cmd := &cobra.Command{
		Use:   "edit <prompt-id>",
		Short: "Change fields of a saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePromptID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Vault.Get(ctx, app.UserID, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = title
			}
			if flags.Changed("content") {
				p.Content = content
			}
			if flags.Changed("tags") {
				p.Tags = domain.SplitTags(tags)
			}
			if flags.Changed("category") {
				p.Category = category
			}
			if err := app.Vault.Save(ctx, app.UserID, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated prompt %s\n", formatter.Bold(p.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New prompt text")
	cmd.Flags().StringVar(&tags, "tags", "", "Replace tags (comma separated)")
	enumFlag(cmd.Flags(), &category, "category", "", "category", "New category", domain.VaultCategories)

	return cmd
}

func newVaultListCmd(app *App) *cobra.Command {
	var f service.VaultFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts, err := app.Vault.Filter(cmd.Context(), app.UserID, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVaultList(prompts))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Search, "search", "", "Match title or content")
	cmd.Flags().StringVar(&f.Tag, "tag", "", "Only prompts with this tag")
	cmd.Flags().StringVar(&f.Category, "category", "", "Only prompts in this category")

	return cmd
}

func newVaultShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <prompt-id>",
		Short: "Print a saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePromptID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Vault.Get(ctx, app.UserID, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPrompt(p))
			return nil
		},
	}
}

func newVaultDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <prompt-id>",
		Short: "Delete a saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePromptID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Vault.Delete(ctx, app.UserID, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted prompt", formatter.Dim(id))
			return nil
		},
	}
}

func newVaultTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := app.Vault.Tags(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.TagList(tags))
			return nil
		},
	}
}

func newVaultImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml|->",
		Short: "Import prompts from a YAML file",
		Long: `Import prompts from YAML. Either every prompt is imported or none.

File format:
  prompts:
    - title: Spaced repetition
      content: Review after 1, 3 and 7 days
      tags: [memory, study]
      category: study`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			n, err := app.Vault.ImportYAML(cmd.Context(), app.UserID, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d prompts\n", n)
			return nil
		},
	}
}
