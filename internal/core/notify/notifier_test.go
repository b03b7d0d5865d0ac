package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martijn/roster/internal/core/domain"
)

// recorder appends its name to calls each time it is notified.
func recorder(calls *[]string, name string) Listener {
	return ListenerFunc(func(ctx context.Context, event Event) error {
		*calls = append(*calls, name)
		return nil
	})
}

func TestNotifier_RegistrationOrder(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	var calls []string

	n.Subscribe(recorder(&calls, "a"))
	n.Subscribe(recorder(&calls, "b"))
	n.Subscribe(recorder(&calls, "c"))

	err := n.NotifyAll(context.Background(), NewEvent(domain.KindClient, OpSaved, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestNotifier_DuplicateSubscription(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	var calls []string

	l := recorder(&calls, "a")
	n.Subscribe(l)
	n.Subscribe(l)

	require.NoError(t, n.NotifyAll(context.Background(), NewEvent(domain.KindClient, OpSaved, 1)))
	assert.Equal(t, []string{"a", "a"}, calls)
}

func TestNotifier_FailingListenerDoesNotBlockOthers(t *testing.T) {
	tests := []struct {
		name    string
		failing Listener
	}{
		{
			name: "returns error",
			failing: ListenerFunc(func(ctx context.Context, event Event) error {
				return errors.New("view closed")
			}),
		},
		{
			name: "panics",
			failing: ListenerFunc(func(ctx context.Context, event Event) error {
				panic("nil table")
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotifier(zerolog.Nop())
			var calls []string

			n.Subscribe(tt.failing)
			n.Subscribe(recorder(&calls, "b"))

			err := n.NotifyAll(context.Background(), NewEvent(domain.KindEmployee, OpRemoved, 4))
			require.Error(t, err)
			assert.Equal(t, []string{"b"}, calls)

			var le *ListenerError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, 0, le.Position)
		})
	}
}

func TestNotifier_EventIsPassedThrough(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	var got Event
	n.Subscribe(ListenerFunc(func(ctx context.Context, event Event) error {
		got = event
		return nil
	}))

	event := NewEvent(domain.KindEmployee, OpSaved, 12)
	require.NoError(t, n.NotifyAll(context.Background(), event))

	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, domain.KindEmployee, got.Kind)
	assert.Equal(t, OpSaved, got.Op)
	assert.Equal(t, int64(12), got.EntityID)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	var calls []string

	l := recorder(&calls, "a")
	first := n.Subscribe(l)
	n.Subscribe(l)
	n.Subscribe(recorder(&calls, "b"))
	require.Equal(t, 3, n.Len())

	first.Unsubscribe()
	first.Unsubscribe()
	assert.Equal(t, 2, n.Len())

	require.NoError(t, n.NotifyAll(context.Background(), NewEvent(domain.KindClient, OpSaved, 1)))
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestNotifier_ListenerMaySubscribeDuringNotify(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	var calls []string

	n.Subscribe(ListenerFunc(func(ctx context.Context, event Event) error {
		calls = append(calls, "outer")
		n.Subscribe(recorder(&calls, "late"))
		return nil
	}))

	require.NoError(t, n.NotifyAll(context.Background(), NewEvent(domain.KindClient, OpSaved, 1)))
	assert.Equal(t, []string{"outer"}, calls)
	assert.Equal(t, 2, n.Len())
}

func TestNotifier_NoListeners(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	assert.NoError(t, n.NotifyAll(context.Background(), NewEvent(domain.KindClient, OpSaved, 1)))
}
