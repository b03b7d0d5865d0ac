package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/notify"
	"github.com/martijn/roster/internal/core/validation"
)

// Editor runs one user action to completion: validate, persist, then tell
// the subscribed views. Views are only notified after a confirmed write.
type Editor struct {
	clients   *ClientService
	employees *EmployeeService

	clientChanges   *notify.Notifier
	employeeChanges *notify.Notifier

	logger zerolog.Logger
}

func NewEditor(
	clients *ClientService,
	employees *EmployeeService,
	clientChanges *notify.Notifier,
	employeeChanges *notify.Notifier,
	logger zerolog.Logger,
) *Editor {
	return &Editor{
		clients:         clients,
		employees:       employees,
		clientChanges:   clientChanges,
		employeeChanges: employeeChanges,
		logger:          logger,
	}
}

// SaveClient validates and stores client. A *validation.Error is returned
// when any field is invalid and nothing is written.
func (e *Editor) SaveClient(ctx context.Context, client *domain.Client) error {
	if e.clients == nil {
		return fmt.Errorf("save client: client service is nil")
	}
	if client == nil {
		return fmt.Errorf("save client: %w", ErrNilEntity)
	}

	if err := validation.RaiseIfInvalid(validation.ValidateClient(client)); err != nil {
		return err
	}

	if err := e.clients.SaveOrUpdate(ctx, client); err != nil {
		return err
	}

	e.notify(ctx, e.clientChanges, notify.NewEvent(domain.KindClient, notify.OpSaved, *client.ID))
	return nil
}

func (e *Editor) RemoveClient(ctx context.Context, client *domain.Client) error {
	if e.clients == nil {
		return fmt.Errorf("remove client: client service is nil")
	}

	if err := e.clients.Remove(ctx, client); err != nil {
		return err
	}

	e.notify(ctx, e.clientChanges, notify.NewEvent(domain.KindClient, notify.OpRemoved, *client.ID))
	return nil
}

func (e *Editor) SaveEmployee(ctx context.Context, employee *domain.Employee) error {
	if e.employees == nil {
		return fmt.Errorf("save employee: employee service is nil")
	}
	if employee == nil {
		return fmt.Errorf("save employee: %w", ErrNilEntity)
	}

	if err := validation.RaiseIfInvalid(validation.ValidateEmployee(employee)); err != nil {
		return err
	}

	if err := e.employees.SaveOrUpdate(ctx, employee); err != nil {
		return err
	}

	e.notify(ctx, e.employeeChanges, notify.NewEvent(domain.KindEmployee, notify.OpSaved, *employee.ID))
	return nil
}

func (e *Editor) RemoveEmployee(ctx context.Context, employee *domain.Employee) error {
	if e.employees == nil {
		return fmt.Errorf("remove employee: employee service is nil")
	}

	if err := e.employees.Remove(ctx, employee); err != nil {
		return err
	}

	e.notify(ctx, e.employeeChanges, notify.NewEvent(domain.KindEmployee, notify.OpRemoved, *employee.ID))
	return nil
}

// notify never fails the action: the write already happened.
func (e *Editor) notify(ctx context.Context, notifier *notify.Notifier, event notify.Event) {
	if notifier == nil {
		return
	}
	if err := notifier.NotifyAll(ctx, event); err != nil {
		e.logger.Error().
			Err(err).
			Str("kind", string(event.Kind)).
			Int64("entity_id", event.EntityID).
			Msg("some views failed to refresh")
	}
}
