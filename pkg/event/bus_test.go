package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/folio/pkg/event"
)

func TestBusOrder(t *testing.T) {
	t.Parallel()

	b := event.NewBus()

	var got []string
	b.On("ping", func(e *event.Event) {
		got = append(got, "first:"+e.Payload.(string))
	})
	b.On("ping", func(e *event.Event) {
		got = append(got, "second:"+e.Name)
	})
	b.On("pong", func(*event.Event) {
		got = append(got, "pong")
	})

	assert.True(t, b.Emit("ping", "x"))
	assert.Equal(t, []string{"first:x", "second:ping"}, got)
}

func TestBusPreventDefault(t *testing.T) {
	t.Parallel()

	b := event.NewBus()

	calls := 0
	b.On("req", func(e *event.Event) {
		calls++
		e.PreventDefault()
	})
	b.On("req", func(e *event.Event) {
		calls++
		assert.True(t, e.Prevented())
	})

	assert.False(t, b.Emit("req", nil))
	assert.Equal(t, 2, calls)
	assert.True(t, b.Emit("other", nil))
}

func TestBusUnsubscribe(t *testing.T) {
	t.Parallel()

	b := event.NewBus()

	calls := 0
	off := b.On("tick", func(*event.Event) {
		calls++
	})

	assert.True(t, b.Has("tick"))
	b.Emit("tick", nil)
	off()
	off()
	b.Emit("tick", nil)

	assert.Equal(t, 1, calls)
	assert.False(t, b.Has("tick"))
}

func TestBusSubscribeDuringEmit(t *testing.T) {
	t.Parallel()

	b := event.NewBus()

	calls := 0
	b.On("tick", func(*event.Event) {
		b.On("tick", func(*event.Event) {
			calls++
		})
	})

	b.Emit("tick", nil)
	assert.Equal(t, 0, calls)

	b.Emit("tick", nil)
	assert.Equal(t, 1, calls)

	b.Clear("tick")
	assert.False(t, b.Has("tick"))
}
