package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	var calls []string
	d.Subscribe(EventWaitlistJoined, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.SubjectID)
		return boom
	})
	d.Subscribe(EventWaitlistJoined, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventContactSubmitted, func(context.Context, Event) error {
		calls = append(calls, "contact")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventWaitlistJoined, "w1", WaitlistJoinedPayload{Email: "a@x.com"}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first:w1", "second:w1"}, calls)
}

func TestDispatcherRecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventContactSubmitted, func(context.Context, Event) error {
		panic("smtp exploded")
	})
	d.Subscribe(EventContactSubmitted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventContactSubmitted, "c1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(EventContactSubmitted))
	assert.Contains(t, err.Error(), "smtp exploded")
	assert.True(t, reached)
}

func TestSubscribeDuringPublish(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventAdminRegistered, func(context.Context, Event) error {
		calls++
		d.Subscribe(EventAdminRegistered, func(context.Context, Event) error {
			calls++
			return nil
		})
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventAdminRegistered, "a1", nil)))
	assert.Equal(t, 1, calls, "handlers added mid-publish run from the next event on")
}

func TestPublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventAdminDeleted, "a1", nil)))
}

func TestNewEventStampsIDAndTime(t *testing.T) {
	a := NewEvent(EventAdminRegistered, "a1", AdminPayload{Username: "root"})
	b := NewEvent(EventAdminRegistered, "a1", AdminPayload{Username: "root"})

	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
	assert.Equal(t, EventAdminRegistered, a.Type)
}
