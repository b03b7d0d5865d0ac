package repository

import (
	"context"

	"github.com/martijn/roster/internal/core/domain"
)

type ClientRepository interface {
	// Insert stores a new client and writes the assigned ID back onto it.
	Insert(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	// DeleteByID fails with an *IntegrityError while employees still
	// reference the client.
	DeleteByID(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	FindAll(ctx context.Context) ([]*domain.Client, error)
}
