package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/repository"
)

const employeeSelect = `
	SELECT e.id, e.name, e.email, e.start_date, e.salary, e.client_id,
		c.organization AS client_organization, c.project AS client_project
	FROM employee e
	LEFT JOIN client c ON c.id = e.client_id
`

// employeeRow is an employee joined with its client columns.
type employeeRow struct {
	ID                 int64               `db:"id"`
	Name               string              `db:"name"`
	Email              string              `db:"email"`
	StartDate          sql.NullString      `db:"start_date"`
	Salary             decimal.NullDecimal `db:"salary"`
	ClientID           sql.NullInt64       `db:"client_id"`
	ClientOrganization sql.NullString      `db:"client_organization"`
	ClientProject      sql.NullString      `db:"client_project"`
}

func (row employeeRow) toDomain() (*domain.Employee, error) {
	id := row.ID
	employee := &domain.Employee{
		ID:     &id,
		Name:   row.Name,
		Email:  row.Email,
		Salary: row.Salary,
	}

	if row.StartDate.Valid && row.StartDate.String != "" {
		t, err := parseStoredDate(row.StartDate.String)
		if err != nil {
			return nil, fmt.Errorf("employee %d has malformed start_date %q: %w", row.ID, row.StartDate.String, err)
		}
		employee.StartDate = &t
	}

	if row.ClientID.Valid {
		clientID := row.ClientID.Int64
		employee.Client = &domain.Client{
			ID:           &clientID,
			Organization: row.ClientOrganization.String,
			Project:      row.ClientProject.String,
		}
	}

	return employee, nil
}

// parseStoredDate reads start_date as sqlite keeps it (yyyy-mm-dd text) or
// as a postgres DATE arrives through database/sql (RFC 3339).
func parseStoredDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.ISODateLayout, s, time.UTC)
	if err == nil {
		return t, nil
	}
	t, rfcErr := time.Parse(time.RFC3339Nano, s)
	if rfcErr != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

type employeeRepository struct {
	db *DB
}

func NewEmployeeRepository(db *DB) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

func startDateParam(t *time.Time) sql.NullString {
	if t == nil {
		return NullString(nil)
	}
	s := t.Format(domain.ISODateLayout)
	return NullString(&s)
}

// checkClientRef rejects a client that has not been stored yet.
func checkClientRef(employee *domain.Employee) error {
	if employee.Client != nil && employee.Client.ID == nil {
		return fmt.Errorf("client: %w", repository.ErrIdentityMissing)
	}
	return nil
}

func (r *employeeRepository) Insert(ctx context.Context, employee *domain.Employee) error {
	if employee.ID != nil {
		return fmt.Errorf("insert employee %d: %w", *employee.ID, repository.ErrIdentityAssigned)
	}
	if err := checkClientRef(employee); err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO employee (name, email, start_date, salary, client_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		employee.Name,
		employee.Email,
		startDateParam(employee.StartDate),
		employee.Salary,
		NullInt64(employee.ClientID()),
	).Scan(&id)
	if err != nil {
		return repository.NewStoreError("create employee", err)
	}
	employee.ID = &id

	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if employee.ID == nil {
		return fmt.Errorf("update employee: %w", repository.ErrIdentityMissing)
	}
	if err := checkClientRef(employee); err != nil {
		return fmt.Errorf("update employee %d: %w", *employee.ID, err)
	}

	query := r.db.Rebind(`
		UPDATE employee
		SET name = ?, email = ?, start_date = ?, salary = ?, client_id = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		employee.Name,
		employee.Email,
		startDateParam(employee.StartDate),
		employee.Salary,
		NullInt64(employee.ClientID()),
		*employee.ID,
	)
	if err != nil {
		return repository.NewStoreError("update employee", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return repository.NewStoreError("update employee", err)
	}
	if rows == 0 {
		return repository.NewStoreError("update employee", fmt.Errorf("employee %d: %w", *employee.ID, repository.ErrNotFound))
	}

	return nil
}

func (r *employeeRepository) DeleteByID(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM employee WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &repository.IntegrityError{Kind: domain.KindEmployee, ID: id, Err: err}
		}
		return repository.NewStoreError("delete employee", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return repository.NewStoreError("delete employee", err)
	}
	if rows == 0 {
		return repository.NewStoreError("delete employee", fmt.Errorf("employee %d: %w", id, repository.ErrNotFound))
	}

	return nil
}

func (r *employeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := r.db.Rebind(employeeSelect + ` WHERE e.id = ?`)

	var row employeeRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.NewStoreError("find employee", fmt.Errorf("employee %d: %w", id, repository.ErrNotFound))
	}
	if err != nil {
		return nil, repository.NewStoreError("find employee", err)
	}

	employee, err := row.toDomain()
	if err != nil {
		return nil, repository.NewStoreError("find employee", err)
	}
	return employee, nil
}

func (r *employeeRepository) FindAll(ctx context.Context) ([]*domain.Employee, error) {
	return r.list(ctx, "list employees", employeeSelect+` ORDER BY e.id`)
}

func (r *employeeRepository) FindByClient(ctx context.Context, clientID int64) ([]*domain.Employee, error) {
	query := r.db.Rebind(employeeSelect + ` WHERE e.client_id = ? ORDER BY e.id`)
	return r.list(ctx, "list employees by client", query, clientID)
}

func (r *employeeRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]*domain.Employee, error) {
	var rows []employeeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, repository.NewStoreError(op, err)
	}

	employees := make([]*domain.Employee, 0, len(rows))
	for _, row := range rows {
		employee, err := row.toDomain()
		if err != nil {
			return nil, repository.NewStoreError(op, err)
		}
		employees = append(employees, employee)
	}

	return employees, nil
}
