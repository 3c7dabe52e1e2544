// Package commands contains the functionality for the set of admin commands.
package commands

import (
	"fmt"

	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// DBConfig replicates the database settings of the service.
type DBConfig struct {
	User         string `envconfig:"DB_USER" default:"postgres"`
	Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	Name         string `envconfig:"DB_NAME" default:"wertvoll"`
	MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
	DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
}

// RootOptions holds the state shared by every command.
type RootOptions struct {
	Log *logger.Logger
}

// openDB reads the database settings from the environment and connects.
func (o *RootOptions) openDB() (*sqlx.DB, error) {
	var cfg DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.User,
		Password:     cfg.Password,
		Host:         cfg.Host,
		Name:         cfg.Name,
		MaxIdleConns: cfg.MaxIdleConns,
		MaxOpenConns: cfg.MaxOpenConns,
		DisableTLS:   cfg.DisableTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	return db, nil
}

// NewRootCommand creates the root command for the admin tool.
func NewRootCommand(log *logger.Logger) *cobra.Command {
	opts := &RootOptions{Log: log}

	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Administrative tasks for the dispatch service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))
	cmd.AddCommand(NewGenKeyCommand(opts))
	cmd.AddCommand(NewGenTokenCommand(opts))
	cmd.AddCommand(NewCreateTenantCommand(opts))
	cmd.AddCommand(NewAddEmployeeCommand(opts))
	cmd.AddCommand(NewToolsCommand(opts))

	return cmd
}
