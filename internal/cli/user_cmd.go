package cli

import (
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}
	cmd.AddCommand(newUserAddCmd(app))
	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an API user and print its bearer token",
		Long: `Create a user for the HTTP API. The token is printed once and only its
hash is stored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, token, err := app.Users.CreateUser(cmd.Context(), name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created user %s %s\n", formatter.Bold(u.DisplayName), formatter.Dim(u.ID))
			fmt.Fprintf(out, "Token: %s\n", token)
			fmt.Fprintln(out, formatter.Dim("Store it now; it cannot be shown again."))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")

	return cmd
}
