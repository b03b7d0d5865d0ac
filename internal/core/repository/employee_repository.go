package repository

import (
	"context"

	"github.com/martijn/roster/internal/core/domain"
)

type EmployeeRepository interface {
	Insert(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	DeleteByID(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]*domain.Employee, error)

	// FindByClient lists the employees assigned to one client
	FindByClient(ctx context.Context, clientID int64) ([]*domain.Employee, error)
}
