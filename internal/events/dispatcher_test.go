package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asdes/report-service/internal/domain"
)

func TestDispatcherRoutesByEventType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, changed []Event
	d.Subscribe(EventReportCreated, func(_ context.Context, e Event) error {
		created = append(created, e)
		return nil
	})
	d.Subscribe(EventReportStatusChanged, func(_ context.Context, e Event) error {
		changed = append(changed, e)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{
		Type:     EventReportCreated,
		ReportID: "r1",
		Actor:    Actor{UserID: "u1", Role: domain.RoleWarga},
	}))

	assert.Len(t, created, 1)
	assert.Empty(t, changed)
	assert.Equal(t, "r1", created[0].ReportID)
}

func TestDispatcherToleratesFailingHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventReportDeleted, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventReportDeleted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventReportDeleted}))
	assert.True(t, reached)
}
