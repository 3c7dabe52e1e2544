package commands

import (
	"fmt"

	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/migrate"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the command that applies the schema migrations.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrate.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations complete")
			return nil
		},
	}
}

// NewVersionCommand creates the command that reports the schema version.
func NewVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			version, dirty, err := migrate.Version(db)
			if err != nil {
				return fmt.Errorf("version: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "version: %d dirty: %t\n", version, dirty)
			return nil
		},
	}
}
