package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishPreservesOrder(t *testing.T) {
	b := NewBus(nil)
	e1 := New(TypeProduction, 1, Payload{"value": 0.01})
	e2 := New(TypeExtraction, 1, Payload{"take": 0.008})
	e3 := New(TypeCrisis, 2, nil)

	b.Publish(e1)
	b.Publish(e2)
	b.Publish(e3)

	h := b.History()
	require.Len(t, h, 3)
	assert.True(t, h[0].Equal(e1))
	assert.True(t, h[1].Equal(e2))
	assert.True(t, h[2].Equal(e3))
}

func TestHistoryReturnsCopy(t *testing.T) {
	b := NewBus(nil)
	b.Publish(New(TypeProduction, 1, nil))

	h := b.History()
	h[0] = New(TypeRupture, 99, nil)

	again := b.History()
	require.Len(t, again, 1)
	assert.Equal(t, TypeProduction, again[0].Type)
}

func TestSubscribersInvokedInOrder(t *testing.T) {
	b := NewBus(nil)
	var calls []string
	b.Subscribe(TypeExtraction, func(Event) { calls = append(calls, "first") })
	b.Subscribe(TypeExtraction, func(Event) { calls = append(calls, "second") })
	b.Subscribe(TypeCrisis, func(Event) { calls = append(calls, "crisis") })

	b.Publish(New(TypeExtraction, 1, nil))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPanickingHandlerIsolated(t *testing.T) {
	b := NewBus(nil)
	ran := false
	b.Subscribe(TypeRupture, func(Event) { panic("handler bug") })
	b.Subscribe(TypeRupture, func(Event) { ran = true })

	require.NotPanics(t, func() {
		b.Publish(New(TypeRupture, 5, nil))
	})
	assert.True(t, ran, "later handler must still run")
	assert.Len(t, b.History(), 1, "history must not be corrupted")
}

func TestHistoryRecordedWithZeroSubscribers(t *testing.T) {
	b := NewBus(nil)
	b.Publish(New(TypeEntityDied, 3, Payload{"entity": "worker"}))
	require.Len(t, b.History(), 1)
}

func TestClearKeepsSubscriptions(t *testing.T) {
	b := NewBus(nil)
	count := 0
	b.Subscribe(TypeProduction, func(Event) { count++ })

	b.Publish(New(TypeProduction, 1, nil))
	b.Clear()
	assert.Empty(t, b.History())

	b.Publish(New(TypeProduction, 2, nil))
	assert.Equal(t, 2, count)
	assert.Len(t, b.History(), 1)
}

func TestSinceTick(t *testing.T) {
	b := NewBus(nil)
	b.Publish(New(TypeProduction, 1, nil))
	b.Publish(New(TypeExtraction, 2, nil))
	b.Publish(New(TypeCrisis, 3, nil))

	got := b.SinceTick(2)
	require.Len(t, got, 2)
	assert.Equal(t, TypeExtraction, got[0].Type)
}

func TestEqualIgnoresTimestamp(t *testing.T) {
	a := Event{Type: TypeCrisis, Tick: 9, Payload: Payload{"mean_tension": 0.9}, At: time.Unix(0, 0)}
	b := Event{Type: TypeCrisis, Tick: 9, Payload: Payload{"mean_tension": 0.9}, At: time.Now()}
	assert.True(t, a.Equal(b))

	c := b
	c.Payload = Payload{"mean_tension": 0.1}
	assert.False(t, a.Equal(c))
}
