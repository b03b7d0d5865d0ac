package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/martijn/roster/internal/core/domain"
)

func newClientsCmd(a *app) *cobra.Command {
	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage clients",
		Long:  "Manage client records (organization and project)",
	}

	clientsCmd.AddCommand(newClientsListCmd(a))
	clientsCmd.AddCommand(newClientsShowCmd(a))
	clientsCmd.AddCommand(newClientsAddCmd(a))
	clientsCmd.AddCommand(newClientsUpdateCmd(a))
	clientsCmd.AddCommand(newClientsDeleteCmd(a))

	return clientsCmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

func newClientsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.initServices(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()

			view := &clientListView{clients: services.ClientService, out: cmd.OutOrStdout()}
			return present("list clients", view.Refresh(cmd.Context()))
		},
	}
}

func newClientsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <client-id>",
		Short: "Show one client and its employees",
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

			client, err := services.ClientService.FindByID(cmd.Context(), id)
			if err != nil {
				return present(fmt.Sprintf("show client %d", id), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Client ID:    %d\n", *client.ID)
			fmt.Fprintf(out, "Organization: %s\n", client.Organization)
			fmt.Fprintf(out, "Project:      %s\n\n", client.Project)

			view := &employeeListView{employees: services.EmployeeService, client: client, out: out}
			return present(fmt.Sprintf("list employees of client %d", id), view.Refresh(cmd.Context()))
		},
	}
}

func newClientsAddCmd(a *app) *cobra.Command {
	var (
		organization string
		project      string
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.initServices(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()

			if !quiet {
				services.ClientChanges.Subscribe(&clientListView{clients: services.ClientService, out: cmd.OutOrStdout()})
			}

			client := domain.NewClient(organization, project)
			if err := services.Editor.SaveClient(cmd.Context(), client); err != nil {
				return present("save client", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Client %d created successfully\n", *client.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&organization, "organization", "", "organization name (required, max 40 characters)")
	cmd.Flags().StringVar(&project, "project", "", "project name (required, max 40 characters)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the refreshed client list")

	return cmd
}

func newClientsUpdateCmd(a *app) *cobra.Command {
	var (
		organization string
		project      string
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "update <client-id>",
		Short: "Update a client",
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

			client, err := services.ClientService.FindByID(cmd.Context(), id)
			if err != nil {
				return present(fmt.Sprintf("update client %d", id), err)
			}

			if cmd.Flags().Changed("organization") {
				client.Organization = organization
			}
			if cmd.Flags().Changed("project") {
				client.Project = project
			}

			if !quiet {
				services.ClientChanges.Subscribe(&clientListView{clients: services.ClientService, out: cmd.OutOrStdout()})
			}

			if err := services.Editor.SaveClient(cmd.Context(), client); err != nil {
				return present(fmt.Sprintf("update client %d", id), err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Client %d updated successfully\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&organization, "organization", "", "new organization name")
	cmd.Flags().StringVar(&project, "project", "", "new project name")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the refreshed client list")

	return cmd
}

func newClientsDeleteCmd(a *app) *cobra.Command {
	var (
		yes   bool
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "delete <client-id>",
		Short: "Delete a client",
		Long:  "Delete a client. Clients that still have employees cannot be deleted.",
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

			client, err := services.ClientService.FindByID(cmd.Context(), id)
			if err != nil {
				return present(fmt.Sprintf("delete client %d", id), err)
			}

			// Confirm deletion
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Are you sure you want to delete client '%s'?", client.Label()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
					return nil
				}
			}

			if !quiet {
				services.ClientChanges.Subscribe(&clientListView{clients: services.ClientService, out: cmd.OutOrStdout()})
			}

			if err := services.Editor.RemoveClient(cmd.Context(), client); err != nil {
				return present(fmt.Sprintf("delete client %d", id), err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Client %d deleted successfully\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the refreshed client list")

	return cmd
}
