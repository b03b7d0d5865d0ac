package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/martijn/roster/internal/core/domain"
)

type mockClientRepository struct {
	mock.Mock
	nextID int64
}

func (m *mockClientRepository) Insert(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	if err := args.Error(0); err != nil {
		return err
	}
	m.nextID++
	id := m.nextID
	client.ID = &id
	return nil
}

func (m *mockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *mockClientRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	client, _ := args.Get(0).(*domain.Client)
	return client, args.Error(1)
}

func (m *mockClientRepository) FindAll(ctx context.Context) ([]*domain.Client, error) {
	args := m.Called(ctx)
	clients, _ := args.Get(0).([]*domain.Client)
	return clients, args.Error(1)
}

type mockEmployeeRepository struct {
	mock.Mock
	nextID int64
}

func (m *mockEmployeeRepository) Insert(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	if err := args.Error(0); err != nil {
		return err
	}
	m.nextID++
	id := m.nextID
	employee.ID = &id
	return nil
}

func (m *mockEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *mockEmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEmployeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	employee, _ := args.Get(0).(*domain.Employee)
	return employee, args.Error(1)
}

func (m *mockEmployeeRepository) FindAll(ctx context.Context) ([]*domain.Employee, error) {
	args := m.Called(ctx)
	employees, _ := args.Get(0).([]*domain.Employee)
	return employees, args.Error(1)
}

func (m *mockEmployeeRepository) FindByClient(ctx context.Context, clientID int64) ([]*domain.Employee, error) {
	args := m.Called(ctx, clientID)
	employees, _ := args.Get(0).([]*domain.Employee)
	return employees, args.Error(1)
}

// ptr is a helper to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}
