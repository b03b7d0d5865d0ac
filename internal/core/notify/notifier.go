// Package notify fans change notifications out to independent views.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/martijn/roster/internal/core/domain"
)

type Op string

const (
	OpSaved   Op = "saved"
	OpRemoved Op = "removed"
)

// Event describes a successful write or delete.
type Event struct {
	ID       uuid.UUID
	Kind     domain.Kind
	Op       Op
	EntityID int64
	At       time.Time
}

func NewEvent(kind domain.Kind, op Op, entityID int64) Event {
	return Event{
		ID:       uuid.New(),
		Kind:     kind,
		Op:       op,
		EntityID: entityID,
		At:       time.Now(),
	}
}

// Listener refreshes its own view of the record set.
type Listener interface {
	OnDataChanged(ctx context.Context, event Event) error
}

type ListenerFunc func(ctx context.Context, event Event) error

func (f ListenerFunc) OnDataChanged(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// ListenerError records one listener that failed during NotifyAll.
type ListenerError struct {
	Position int // registration order, zero based
	Err      error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d: %v", e.Position, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

type subscription struct {
	id       uint64
	listener Listener
}

// Notifier keeps listeners in registration order. The same listener may be
// subscribed more than once and is then notified once per subscription.
type Notifier struct {
	mu        sync.Mutex
	listeners []subscription
	nextID    uint64
	logger    zerolog.Logger
}

func NewNotifier(logger zerolog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Subscription can be used to detach a listener again.
type Subscription struct {
	notifier *Notifier
	id       uint64
	once     sync.Once
}

func (n *Notifier) Subscribe(listener Listener) *Subscription {
	if listener == nil {
		panic("notify: nil listener")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.listeners = append(n.listeners, subscription{id: n.nextID, listener: listener})
	return &Subscription{notifier: n, id: n.nextID}
}

// Unsubscribe removes this registration only; other registrations of the
// same listener stay.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.remove(s.id)
	})
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, sub := range n.listeners {
		if sub.id == id {
			n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// NotifyAll calls every listener synchronously in registration order. A
// listener that returns an error or panics does not stop the others; the
// failures are logged and returned together once all listeners ran.
func (n *Notifier) NotifyAll(ctx context.Context, event Event) error {
	n.mu.Lock()
	snapshot := make([]subscription, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	var errs []error
	for i, sub := range snapshot {
		if err := invoke(ctx, sub.listener, event); err != nil {
			n.logger.Warn().
				Err(err).
				Int("listener", i).
				Str("kind", string(event.Kind)).
				Str("op", string(event.Op)).
				Int64("entity_id", event.EntityID).
				Str("event_id", event.ID.String()).
				Msg("change listener failed")
			errs = append(errs, &ListenerError{Position: i, Err: err})
		}
	}

	return errors.Join(errs...)
}

func invoke(ctx context.Context, listener Listener, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return listener.OnDataChanged(ctx, event)
}
