package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus/stores/employeedb"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/tenantbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/role"
	"github.com/spf13/cobra"
)

// CreateTenantOptions holds flags for the create-tenant command.
type CreateTenantOptions struct {
	*RootOptions
	Name string
	Slug string
}

// NewCreateTenantCommand creates the command that registers a moving company.
func NewCreateTenantCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateTenantOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create-tenant",
		Short: "Register a new moving company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			tenantBus := tenantbus.NewCore(opts.Log, tenantdb.NewStore(opts.Log, db))

			tnt, err := tenantBus.Create(cmd.Context(), tenantbus.NewTenant{
				Name: opts.Name,
				Slug: opts.Slug,
			})
			if err != nil {
				return fmt.Errorf("create tenant: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tenant: %s slug: %s\n", tnt.ID, tnt.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "company name")
	cmd.Flags().StringVar(&opts.Slug, "slug", "", "url slug, derived from the name when empty")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// AddEmployeeOptions holds flags for the add-employee command.
type AddEmployeeOptions struct {
	*RootOptions
	UserID   string
	TenantID string
	Name     string
	Role     string
}

// NewAddEmployeeCommand creates the command that binds a user to a tenant.
func NewAddEmployeeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddEmployeeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add-employee",
		Short: "Bind an authenticated user to a moving company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ne, err := toNewEmployee(opts)
			if err != nil {
				return err
			}

			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			employeeBus := employeebus.NewCore(opts.Log, employeedb.NewStore(opts.Log, db))

			emp, err := employeeBus.Create(cmd.Context(), ne)
			if err != nil {
				return fmt.Errorf("add employee: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "employee: %s role: %s\n", emp.ID, emp.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.UserID, "user", "", "user id issued by the authentication service")
	cmd.Flags().StringVar(&opts.TenantID, "tenant", "", "tenant id")
	cmd.Flags().StringVar(&opts.Name, "name", "", "employee name")
	cmd.Flags().StringVar(&opts.Role, "role", role.Staff.String(), "ADMIN, DISPATCHER or STAFF")

	for _, name := range []string{"user", "tenant", "name"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func toNewEmployee(opts *AddEmployeeOptions) (employeebus.NewEmployee, error) {
	userID, err := uuid.Parse(opts.UserID)
	if err != nil {
		return employeebus.NewEmployee{}, fmt.Errorf("parsing user: %w", err)
	}

	tenantID, err := uuid.Parse(opts.TenantID)
	if err != nil {
		return employeebus.NewEmployee{}, fmt.Errorf("parsing tenant: %w", err)
	}

	rl, err := role.Parse(opts.Role)
	if err != nil {
		return employeebus.NewEmployee{}, fmt.Errorf("parsing role: %w", err)
	}

	return employeebus.NewEmployee{
		UserID:   userID,
		TenantID: tenantID,
		Name:     opts.Name,
		Role:     rl,
	}, nil
}
