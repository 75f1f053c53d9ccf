package admincli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/infixtech/ixtportal/internal/server/models"
)

func newCreateAdminCmd(opts *options) *cobra.Command {
	in := models.NewAccount{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long: `Create an administrator with a freshly allocated LIXT- identifier.

Migrations are applied first. The password is read from the terminal.

Examples:
  ixt-admin create-admin --email admin@example.com --name "Site Admin"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readNewPassword(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			in.Password = password

			return opts.withBackend(cmd.Context(), func(b Backend) error {
				if err := b.Migrate(cmd.Context()); err != nil {
					return err
				}

				account, err := b.CreateAdmin(cmd.Context(), in)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Admin created: %s (%s)\n", account.CustomID, account.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAllocateCmd(opts *options) *cobra.Command {
	var rawRole string

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Print an identifier that is currently unused",
		Long: `Allocate draws identifiers for the role until one is unused and prints it.
Nothing is written; the value is not reserved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := models.ParseRole(rawRole)
			if err != nil {
				return err
			}

			return opts.withBackend(cmd.Context(), func(b Backend) error {
				id, err := b.Allocate(cmd.Context(), role)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&rawRole, "role", string(models.RoleParticipant), "participant, member, manager or admin")

	return cmd
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd.Context(), func(b Backend) error {
				if err := b.Migrate(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
				return nil
			})
		},
	}
}
