package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/repository"
)

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Insert(ctx context.Context, client *domain.Client) error {
	if client.ID != nil {
		return fmt.Errorf("insert client %d: %w", *client.ID, repository.ErrIdentityAssigned)
	}

	query := r.db.Rebind(`
		INSERT INTO client (organization, project)
		VALUES (?, ?)
		RETURNING id
	`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query, client.Organization, client.Project).Scan(&id)
	if err != nil {
		return repository.NewStoreError("create client", err)
	}
	client.ID = &id

	return nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	if client.ID == nil {
		return fmt.Errorf("update client: %w", repository.ErrIdentityMissing)
	}

	query := r.db.Rebind(`
		UPDATE client
		SET organization = ?, project = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query, client.Organization, client.Project, *client.ID)
	if err != nil {
		return repository.NewStoreError("update client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return repository.NewStoreError("update client", err)
	}
	if rows == 0 {
		return repository.NewStoreError("update client", fmt.Errorf("client %d: %w", *client.ID, repository.ErrNotFound))
	}

	return nil
}

func (r *clientRepository) DeleteByID(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM client WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &repository.IntegrityError{Kind: domain.KindClient, ID: id, Err: err}
		}
		return repository.NewStoreError("delete client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return repository.NewStoreError("delete client", err)
	}
	if rows == 0 {
		return repository.NewStoreError("delete client", fmt.Errorf("client %d: %w", id, repository.ErrNotFound))
	}

	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := r.db.Rebind(`
		SELECT id, organization, project
		FROM client
		WHERE id = ?
	`)
	var client domain.Client
	err := r.db.GetContext(ctx, &client, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.NewStoreError("find client", fmt.Errorf("client %d: %w", id, repository.ErrNotFound))
	}
	if err != nil {
		return nil, repository.NewStoreError("find client", err)
	}

	return &client, nil
}

func (r *clientRepository) FindAll(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, organization, project
		FROM client
		ORDER BY id
	`
	clients := []*domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, repository.NewStoreError("list clients", err)
	}

	return clients, nil
}
