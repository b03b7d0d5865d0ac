package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/notify"
	"github.com/martijn/roster/internal/core/repository"
	"github.com/martijn/roster/internal/core/validation"
	"github.com/martijn/roster/internal/infrastructure/database"
)

// editorEnv wires an Editor over an in-memory store.
type editorEnv struct {
	db              *database.DB
	editor          *Editor
	clients         *ClientService
	employees       *EmployeeService
	clientChanges   *notify.Notifier
	employeeChanges *notify.Notifier
}

func setupEditorEnv(t *testing.T) *editorEnv {
	t.Helper()

	db, err := database.New(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clients := NewClientService(database.NewClientRepository(db), zerolog.Nop())
	employees := NewEmployeeService(database.NewEmployeeRepository(db), zerolog.Nop())
	clientChanges := notify.NewNotifier(zerolog.Nop())
	employeeChanges := notify.NewNotifier(zerolog.Nop())

	return &editorEnv{
		db:              db,
		editor:          NewEditor(clients, employees, clientChanges, employeeChanges, zerolog.Nop()),
		clients:         clients,
		employees:       employees,
		clientChanges:   clientChanges,
		employeeChanges: employeeChanges,
	}
}

// record subscribes a listener that appends name and the event to calls.
func record(n *notify.Notifier, calls *[]string, events *[]notify.Event, name string) {
	n.Subscribe(notify.ListenerFunc(func(ctx context.Context, event notify.Event) error {
		*calls = append(*calls, name)
		if events != nil {
			*events = append(*events, event)
		}
		return nil
	}))
}

func TestEditor_SaveClientInsertsAndNotifies(t *testing.T) {
	env := setupEditorEnv(t)
	ctx := context.Background()

	var calls []string
	var events []notify.Event
	record(env.clientChanges, &calls, &events, "list")
	record(env.clientChanges, &calls, nil, "combo")

	client := domain.NewClient("Acme", "X")
	require.NoError(t, env.editor.SaveClient(ctx, client))
	require.NotNil(t, client.ID)

	assert.Equal(t, []string{"list", "combo"}, calls)
	require.Len(t, events, 1)
	assert.Equal(t, notify.OpSaved, events[0].Op)
	assert.Equal(t, *client.ID, events[0].EntityID)

	all, err := env.clients.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *client.ID, *all[0].ID)
}

func TestEditor_SaveClientUpdateKeepsIdentity(t *testing.T) {
	env := setupEditorEnv(t)
	ctx := context.Background()

	client := domain.NewClient("Acme", "X")
	require.NoError(t, env.editor.SaveClient(ctx, client))
	id := *client.ID

	var calls []string
	record(env.clientChanges, &calls, nil, "list")

	client.Project = "Y"
	require.NoError(t, env.editor.SaveClient(ctx, client))
	assert.Equal(t, id, *client.ID)
	assert.Equal(t, []string{"list"}, calls)

	all, err := env.clients.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Y", all[0].Project)
}

func TestEditor_InvalidEmployeeIsNeverPersisted(t *testing.T) {
	env := setupEditorEnv(t)
	ctx := context.Background()

	var calls []string
	record(env.employeeChanges, &calls, nil, "list")

	employee := domain.NewEmployee("", " ")
	err := env.editor.SaveEmployee(ctx, employee)

	var ve *validation.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{validation.FieldEmail, validation.FieldName}, ve.Errors.Fields())
	assert.Nil(t, employee.ID)
	assert.Empty(t, calls)

	all, err := env.employees.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEditor_RemoveReferencedClient(t *testing.T) {
	env := setupEditorEnv(t)
	ctx := context.Background()

	client := domain.NewClient("Acme", "X")
	require.NoError(t, env.editor.SaveClient(ctx, client))

	employee := domain.NewEmployee("Ana", "ana@acme.com")
	employee.Client = client
	require.NoError(t, env.editor.SaveEmployee(ctx, employee))

	var calls []string
	record(env.clientChanges, &calls, nil, "list")

	err := env.editor.RemoveClient(ctx, client)
	assert.ErrorIs(t, err, repository.ErrIntegrity)
	assert.Empty(t, calls)

	found, err := env.clients.FindByID(ctx, *client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", found.Organization)

	// once the employee is gone the client can be removed
	require.NoError(t, env.editor.RemoveEmployee(ctx, employee))
	require.NoError(t, env.editor.RemoveClient(ctx, client))
	assert.Equal(t, []string{"list"}, calls)
}

func TestEditor_FailingListenerDoesNotFailTheWrite(t *testing.T) {
	env := setupEditorEnv(t)
	ctx := context.Background()

	var calls []string
	env.employeeChanges.Subscribe(notify.ListenerFunc(func(ctx context.Context, event notify.Event) error {
		calls = append(calls, "a")
		return errors.New("window closed")
	}))
	record(env.employeeChanges, &calls, nil, "b")

	employee := domain.NewEmployee("Ana", "ana@acme.com")
	require.NoError(t, env.editor.SaveEmployee(ctx, employee))
	assert.Equal(t, []string{"a", "b"}, calls)

	require.NoError(t, env.editor.RemoveEmployee(ctx, employee))
	assert.Equal(t, []string{"a", "b", "a", "b"}, calls)
}

func TestEditor_StoreFailureSkipsNotification(t *testing.T) {
	repo := &mockClientRepository{}
	repo.On("Update", mock.Anything, mock.Anything).
		Return(repository.NewStoreError("update client", repository.ErrNotFound))

	clientChanges := notify.NewNotifier(zerolog.Nop())
	var calls []string
	record(clientChanges, &calls, nil, "list")

	editor := NewEditor(NewClientService(repo, zerolog.Nop()), nil, clientChanges, nil, zerolog.Nop())

	err := editor.SaveClient(context.Background(), &domain.Client{ID: ptr(int64(7)), Organization: "Acme", Project: "X"})
	assert.ErrorIs(t, err, repository.ErrStore)
	assert.Empty(t, calls)
}

func TestEditor_Misuse(t *testing.T) {
	ctx := context.Background()

	editor := NewEditor(nil, nil, nil, nil, zerolog.Nop())
	assert.Error(t, editor.SaveClient(ctx, domain.NewClient("Acme", "X")))
	assert.Error(t, editor.RemoveClient(ctx, &domain.Client{ID: ptr(int64(1))}))
	assert.Error(t, editor.SaveEmployee(ctx, domain.NewEmployee("Ana", "a@b.com")))
	assert.Error(t, editor.RemoveEmployee(ctx, &domain.Employee{ID: ptr(int64(1))}))

	env := setupEditorEnv(t)
	assert.ErrorIs(t, env.editor.SaveClient(ctx, nil), ErrNilEntity)
	assert.ErrorIs(t, env.editor.SaveEmployee(ctx, nil), ErrNilEntity)
	assert.ErrorIs(t, env.editor.RemoveClient(ctx, nil), ErrNilEntity)
	assert.ErrorIs(t, env.editor.RemoveEmployee(ctx, domain.NewEmployee("Ana", "a@b.com")), ErrNotPersisted)
}
