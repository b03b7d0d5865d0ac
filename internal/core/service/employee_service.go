package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/repository"
)

type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	logger       zerolog.Logger
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		logger:       logger.With().Str("kind", string(domain.KindEmployee)).Logger(),
	}
}

func (s *EmployeeService) FindAll(ctx context.Context) ([]*domain.Employee, error) {
	return s.employeeRepo.FindAll(ctx)
}

func (s *EmployeeService) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employeeRepo.FindByID(ctx, id)
}

// FindByClient lists the employees assigned to client
func (s *EmployeeService) FindByClient(ctx context.Context, client *domain.Client) ([]*domain.Employee, error) {
	if client == nil {
		return nil, fmt.Errorf("find employees by client: %w", ErrNilEntity)
	}
	if client.IsNew() {
		return nil, fmt.Errorf("find employees by client: %w", ErrNotPersisted)
	}
	return s.employeeRepo.FindByClient(ctx, *client.ID)
}

func (s *EmployeeService) SaveOrUpdate(ctx context.Context, employee *domain.Employee) error {
	if employee == nil {
		return fmt.Errorf("save employee: %w", ErrNilEntity)
	}

	if employee.IsNew() {
		if err := s.employeeRepo.Insert(ctx, employee); err != nil {
			return err
		}
		s.logger.Debug().Int64("id", *employee.ID).Msg("employee inserted")
		return nil
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return err
	}
	s.logger.Debug().Int64("id", *employee.ID).Msg("employee updated")
	return nil
}

func (s *EmployeeService) Remove(ctx context.Context, employee *domain.Employee) error {
	if employee == nil {
		return fmt.Errorf("remove employee: %w", ErrNilEntity)
	}
	if employee.IsNew() {
		return fmt.Errorf("remove employee: %w", ErrNotPersisted)
	}

	if err := s.employeeRepo.DeleteByID(ctx, *employee.ID); err != nil {
		return err
	}
	s.logger.Debug().Int64("id", *employee.ID).Msg("employee removed")
	return nil
}
