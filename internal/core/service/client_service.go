package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/repository"
)

// ClientService decides between insert and update for clients. It trusts
// its input to be validated already.
type ClientService struct {
	clientRepo repository.ClientRepository
	logger     zerolog.Logger
}

func NewClientService(clientRepo repository.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger.With().Str("kind", string(domain.KindClient)).Logger(),
	}
}

// FindAll lists every client in store order
func (s *ClientService) FindAll(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.FindAll(ctx)
}

// FindByID retrieves a client by ID
func (s *ClientService) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clientRepo.FindByID(ctx, id)
}

// SaveOrUpdate inserts a new client or updates an existing one.
func (s *ClientService) SaveOrUpdate(ctx context.Context, client *domain.Client) error {
	if client == nil {
		return fmt.Errorf("save client: %w", ErrNilEntity)
	}

	if client.IsNew() {
		if err := s.clientRepo.Insert(ctx, client); err != nil {
			return err
		}
		s.logger.Debug().Int64("id", *client.ID).Msg("client inserted")
		return nil
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return err
	}
	s.logger.Debug().Int64("id", *client.ID).Msg("client updated")
	return nil
}

// Remove deletes the client. An *repository.IntegrityError is returned
// unchanged while employees still reference it.
func (s *ClientService) Remove(ctx context.Context, client *domain.Client) error {
	if client == nil {
		return fmt.Errorf("remove client: %w", ErrNilEntity)
	}
	if client.IsNew() {
		return fmt.Errorf("remove client: %w", ErrNotPersisted)
	}

	if err := s.clientRepo.DeleteByID(ctx, *client.ID); err != nil {
		return err
	}
	s.logger.Debug().Int64("id", *client.ID).Msg("client removed")
	return nil
}
