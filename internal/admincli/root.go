// Package admincli implements the operator command line for the accounts
// database. It bootstraps the first administrator and applies migrations.
// It can also allocate identifiers and upload profile photos by hand.
package admincli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/infixtech/ixtportal/internal/server/config"
)

type options struct {
	configPath string
	dsn        string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ixt-admin",
		Short: "Operator tooling for the IXT accounts service",
		Long: `ixt-admin talks to the accounts database directly.

Connection settings come from the server's defaults, an optional JSON
config file (--config) and finally --dsn.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to JSON config file")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "PostgreSQL DSN (overrides config)")

	root.AddCommand(newCreateAdminCmd(opts))
	root.AddCommand(newAllocateCmd(opts))
	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newUploadPhotoCmd(opts))

	return root
}

// Execute runs the command tree against ctx.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (o *options) load() (*config.Config, error) {
	var args []string
	if o.configPath != "" {
		args = append(args, "-c", o.configPath)
	}

	cfg, err := config.LoadConfig(args)
	if err != nil {
		return nil, err
	}
	if o.dsn != "" {
		cfg.DatabaseDSN = o.dsn
	}
	return cfg, nil
}

// withBackend connects, runs fn and closes the connection.
func (o *options) withBackend(ctx context.Context, fn func(Backend) error) error {
	cfg, err := o.load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	b, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	return fn(b)
}
