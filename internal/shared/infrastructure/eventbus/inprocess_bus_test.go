package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInProcessEventBus_Publish(t *testing.T) {
	t.Run("delivers to subscribed handlers in order", func(t *testing.T) {
		bus := NewInProcessEventBus(nil)

		var got []string
		bus.Subscribe("scores.recalculated", func(_ context.Context, _ string, payload []byte) error {
			got = append(got, "first:"+string(payload))
			return nil
		})
		bus.Subscribe("scores.recalculated", func(_ context.Context, _ string, payload []byte) error {
			got = append(got, "second:"+string(payload))
			return nil
		})

		err := bus.Publish(context.Background(), "scores.recalculated", []byte("hello"))

		require.NoError(t, err)
		assert.Equal(t, []string{"first:hello", "second:hello"}, got)
	})

	t.Run("ignores events without subscribers", func(t *testing.T) {
		bus := NewInProcessEventBus(nil)

		err := bus.Publish(context.Background(), "scores.entity.overdue", []byte("{}"))

		require.NoError(t, err)
	})

	t.Run("handler errors do not fail the publish", func(t *testing.T) {
		bus := NewInProcessEventBus(nil)

		called := false
		bus.Subscribe("scores.recalculated", func(_ context.Context, _ string, _ []byte) error {
			return errors.New("consumer broke")
		})
		bus.Subscribe("scores.recalculated", func(_ context.Context, _ string, _ []byte) error {
			called = true
			return nil
		})

		err := bus.Publish(context.Background(), "scores.recalculated", []byte("{}"))

		require.NoError(t, err)
		assert.True(t, called, "later handlers still run after an error")
	})

	t.Run("keys are isolated", func(t *testing.T) {
		bus := NewInProcessEventBus(nil)

		calls := 0
		bus.Subscribe("scores.recalculated", func(_ context.Context, _ string, _ []byte) error {
			calls++
			return nil
		})

		require.NoError(t, bus.Publish(context.Background(), "scores.entity.overdue", []byte("{}")))
		assert.Zero(t, calls)
	})
}
