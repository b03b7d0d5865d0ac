package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/repository"
	"github.com/martijn/roster/internal/core/validation"
)

// Keys for input that could not be parsed. They are reported together with
// the validation errors so every problem shows up at once.
const (
	fieldStartDate = "start_date"
	fieldSalary    = "salary"
	fieldClient    = "client"
)

func newEmployeesCmd(a *app) *cobra.Command {
	employeesCmd := &cobra.Command{
		Use:   "employees",
		Short: "Manage employees",
		Long:  "Manage employee records and their client assignment",
	}

	employeesCmd.AddCommand(newEmployeesListCmd(a))
	employeesCmd.AddCommand(newEmployeesShowCmd(a))
	employeesCmd.AddCommand(newEmployeesAddCmd(a))
	employeesCmd.AddCommand(newEmployeesUpdateCmd(a))
	employeesCmd.AddCommand(newEmployeesDeleteCmd(a))

	return employeesCmd
}

// employeeForm holds the raw flag values of add and update.
type employeeForm struct {
	name      string
	email     string
	startDate string
	salary    string
	clientID  int64
	noClient  bool
}

func (f *employeeForm) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name (required, max 70 characters)")
	cmd.Flags().StringVar(&f.email, "email", "", "email address (required, max 60 characters)")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "start date, dd/mm/yyyy")
	cmd.Flags().StringVar(&f.salary, "salary", "", "salary, e.g. 2500.00")
	cmd.Flags().Int64Var(&f.clientID, "client", 0, "id of the client the employee is assigned to")
}

// apply copies the changed flags onto employee. Values that cannot be
// parsed are returned as field errors; store failures as error.
func (f *employeeForm) apply(ctx context.Context, cmd *cobra.Command, services *Services, employee *domain.Employee) (validation.Errors, error) {
	formatErrs := validation.Errors{}
	changed := cmd.Flags().Changed

	if changed("name") {
		employee.Name = f.name
	}
	if changed("email") {
		employee.Email = f.email
	}

	if changed("start-date") {
		if strings.TrimSpace(f.startDate) == "" {
			employee.StartDate = nil
		} else if t, err := domain.ParseDate(f.startDate); err != nil {
			formatErrs[fieldStartDate] = "must be a date in dd/mm/yyyy format"
		} else {
			employee.StartDate = &t
		}
	}

	if changed("salary") {
		if strings.TrimSpace(f.salary) == "" {
			employee.Salary = decimal.NullDecimal{}
		} else if d, err := domain.ParseSalary(f.salary); err != nil {
			formatErrs[fieldSalary] = "must be a number"
		} else {
			employee.Salary = decimal.NewNullDecimal(d)
		}
	}

	switch {
	case f.noClient:
		employee.Client = nil
	case changed("client"):
		client, err := services.ClientService.FindByID(ctx, f.clientID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			formatErrs[fieldClient] = fmt.Sprintf("client %d does not exist", f.clientID)
		case err != nil:
			return nil, err
		default:
			employee.Client = client
		}
	}

	return formatErrs, nil
}

// check merges parse errors with the validator's result.
func check(formatErrs validation.Errors, employee *domain.Employee) error {
	errs := validation.ValidateEmployee(employee)
	for field, msg := range formatErrs {
		errs[field] = msg
	}
	return validation.RaiseIfInvalid(errs)
}

func newEmployeesListCmd(a *app) *cobra.Command {
	var clientID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.initServices(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()

			view := &employeeListView{employees: services.EmployeeService, out: cmd.OutOrStdout()}
			if cmd.Flags().Changed("client") {
				client, err := services.ClientService.FindByID(cmd.Context(), clientID)
				if err != nil {
					return present(fmt.Sprintf("list employees of client %d", clientID), err)
				}
				view.client = client
			}

			return present("list employees", view.Refresh(cmd.Context()))
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "only list employees of this client")

	return cmd
}

func newEmployeesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <employee-id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			services, err := a.initServices(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()

			e, err := services.EmployeeService.FindByID(cmd.Context(), id)
			if err != nil {
				return present(fmt.Sprintf("show employee %d", id), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Employee ID: %d\n", *e.ID)
			fmt.Fprintf(out, "Name:        %s\n", e.Name)
			fmt.Fprintf(out, "Email:       %s\n", e.Email)
			fmt.Fprintf(out, "Start date:  %s\n", e.StartDateText())
			fmt.Fprintf(out, "Salary:      %s\n", e.SalaryText())
			fmt.Fprintf(out, "Client:      %s\n", e.ClientLabel())
			return nil
		},
	}
}

func newEmployeesAddCmd(a *app) *cobra.Command {
	var (
		form  employeeForm
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.initServices(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()

			employee := domain.NewEmployee(form.name, form.email)
			formatErrs, err := form.apply(cmd.Context(), cmd, services, employee)
			if err != nil {
				return present("save employee", err)
			}
			if err := check(formatErrs, employee); err != nil {
				return present("save employee", err)
			}

			if !quiet {
				services.EmployeeChanges.Subscribe(&employeeListView{employees: services.EmployeeService, out: cmd.OutOrStdout()})
			}

			if err := services.Editor.SaveEmployee(cmd.Context(), employee); err != nil {
				return present("save employee", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Employee %d created successfully\n", *employee.ID)
			return nil
		},
	}

	form.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the refreshed employee list")

	return cmd
}

func newEmployeesUpdateCmd(a *app) *cobra.Command {
	var (
		form  employeeForm
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "update <employee-id>",
		Short: "Update an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			services, err := a.initServices(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()

			action := fmt.Sprintf("update employee %d", id)

			employee, err := services.EmployeeService.FindByID(cmd.Context(), id)
			if err != nil {
				return present(action, err)
			}

			formatErrs, err := form.apply(cmd.Context(), cmd, services, employee)
			if err != nil {
				return present(action, err)
			}
			if err := check(formatErrs, employee); err != nil {
				return present(action, err)
			}

			if !quiet {
				services.EmployeeChanges.Subscribe(&employeeListView{employees: services.EmployeeService, out: cmd.OutOrStdout()})
			}

			if err := services.Editor.SaveEmployee(cmd.Context(), employee); err != nil {
				return present(action, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Employee %d updated successfully\n", id)
			return nil
		},
	}

	form.register(cmd)
	cmd.Flags().BoolVar(&form.noClient, "no-client", false, "remove the client assignment")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the refreshed employee list")
	cmd.MarkFlagsMutuallyExclusive("client", "no-client")

	return cmd
}

func newEmployeesDeleteCmd(a *app) *cobra.Command {
	var (
		yes   bool
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "delete <employee-id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			services, err := a.initServices(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()

			action := fmt.Sprintf("delete employee %d", id)

			employee, err := services.EmployeeService.FindByID(cmd.Context(), id)
			if err != nil {
				return present(action, err)
			}

			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Are you sure you want to delete employee '%s'?", employee.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
					return nil
				}
			}

			if !quiet {
				services.EmployeeChanges.Subscribe(&employeeListView{employees: services.EmployeeService, out: cmd.OutOrStdout()})
			}

			if err := services.Editor.RemoveEmployee(cmd.Context(), employee); err != nil {
				return present(action, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Employee %d deleted successfully\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the refreshed employee list")

	return cmd
}
