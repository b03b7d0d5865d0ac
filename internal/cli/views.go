package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/notify"
	"github.com/martijn/roster/internal/core/service"
)

// clientListView re-reads and prints all clients whenever it is notified.
type clientListView struct {
	clients *service.ClientService
	out     io.Writer
}

func (v *clientListView) OnDataChanged(ctx context.Context, _ notify.Event) error {
	return v.Refresh(ctx)
}

func (v *clientListView) Refresh(ctx context.Context) error {
	clients, err := v.clients.FindAll(ctx)
	if err != nil {
		return err
	}
	renderClients(v.out, clients)
	return nil
}

// employeeListView lists every employee, or only those of client when set.
type employeeListView struct {
	employees *service.EmployeeService
	client    *domain.Client
	out       io.Writer
}

func (v *employeeListView) OnDataChanged(ctx context.Context, _ notify.Event) error {
	return v.Refresh(ctx)
}

func (v *employeeListView) Refresh(ctx context.Context) error {
	var (
		employees []*domain.Employee
		err       error
	)
	if v.client != nil {
		employees, err = v.employees.FindByClient(ctx, v.client)
	} else {
		employees, err = v.employees.FindAll(ctx)
	}
	if err != nil {
		return err
	}
	renderEmployees(v.out, employees)
	return nil
}

func renderClients(out io.Writer, clients []*domain.Client) {
	if len(clients) == 0 {
		fmt.Fprintln(out, "No clients found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tORGANIZATION\tPROJECT")
	for _, client := range clients {
		fmt.Fprintf(w, "%d\t%s\t%s\n", *client.ID, client.Organization, client.Project)
	}
	w.Flush()
}

func renderEmployees(out io.Writer, employees []*domain.Employee) {
	if len(employees) == 0 {
		fmt.Fprintln(out, "No employees found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTART DATE\tSALARY\tCLIENT")
	for _, e := range employees {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			*e.ID,
			e.Name,
			e.Email,
			e.StartDateText(),
			e.SalaryText(),
			e.ClientLabel(),
		)
	}
	w.Flush()
}
