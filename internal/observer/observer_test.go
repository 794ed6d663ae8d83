package observer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histmat/internal/config"
	"histmat/internal/world"
)

func testState(t *testing.T, tick uint64, log []string) *world.State {
	t.Helper()
	s, err := world.New(tick, []world.Entity{
		{ID: "worker", Name: "Workers", Kind: world.KindWorker, Wealth: 0.5, Survival: 0.95, Active: true},
	}, nil, world.Economy{WageRate: 0.4}, log)
	require.NoError(t, err)
	return s
}

type recordingObserver struct {
	name  string
	calls []string
	fail  error
}

func (r *recordingObserver) Name() string { return r.name }

func (r *recordingObserver) OnSimulationStart(*world.State, config.Config) error {
	r.calls = append(r.calls, "start")
	return r.fail
}

func (r *recordingObserver) OnTick(*world.State, *world.State) error {
	r.calls = append(r.calls, "tick")
	return r.fail
}

func (r *recordingObserver) OnSimulationEnd(*world.State) error {
	r.calls = append(r.calls, "end")
	return r.fail
}

type panickingObserver struct{}

func (panickingObserver) OnSimulationStart(*world.State, config.Config) error { panic("start bug") }
func (panickingObserver) OnTick(*world.State, *world.State) error             { panic("tick bug") }
func (panickingObserver) OnSimulationEnd(*world.State) error                  { panic("end bug") }

type blockingObserver struct{ release chan struct{} }

func (b *blockingObserver) OnSimulationStart(*world.State, config.Config) error { return nil }
func (b *blockingObserver) OnTick(*world.State, *world.State) error {
	<-b.release
	return nil
}
func (b *blockingObserver) OnSimulationEnd(*world.State) error { return nil }

func TestNotificationOrderIsRegistrationOrder(t *testing.T) {
	n := NewNotifier(0, nil)
	var order []string
	a := &recordingObserver{name: "a"}
	b := &recordingObserver{name: "b"}
	n.Register(a)
	n.Register(b)

	prev, next := testState(t, 0, nil), testState(t, 1, nil)
	n.NotifyStart(prev, config.Default())
	n.NotifyTick(prev, next)
	n.NotifyEnd(next)

	assert.Equal(t, []string{"start", "tick", "end"}, a.calls)
	assert.Equal(t, []string{"start", "tick", "end"}, b.calls)
	_ = order
}

func TestObserverErrorSwallowed(t *testing.T) {
	n := NewNotifier(0, nil)
	failing := &recordingObserver{name: "failing", fail: errors.New("narrator offline")}
	after := &recordingObserver{name: "after"}
	n.Register(failing)
	n.Register(after)

	require.NotPanics(t, func() {
		n.NotifyTick(testState(t, 0, nil), testState(t, 1, nil))
	})
	assert.Equal(t, []string{"tick"}, after.calls, "later observers still notified")
}

func TestObserverPanicSwallowed(t *testing.T) {
	n := NewNotifier(0, nil)
	n.Register(panickingObserver{})
	after := &recordingObserver{name: "after"}
	n.Register(after)

	require.NotPanics(t, func() {
		n.NotifyTick(testState(t, 0, nil), testState(t, 1, nil))
	})
	assert.Equal(t, []string{"tick"}, after.calls)
}

func TestStrictModeRepanics(t *testing.T) {
	n := NewNotifier(0, nil)
	n.Strict = true
	n.Register(panickingObserver{})

	assert.Panics(t, func() {
		n.NotifyTick(testState(t, 0, nil), testState(t, 1, nil))
	})
}

func TestBlockingObserverTimesOut(t *testing.T) {
	n := NewNotifier(20*time.Millisecond, nil)
	blocker := &blockingObserver{release: make(chan struct{})}
	after := &recordingObserver{name: "after"}
	n.Register(blocker)
	n.Register(after)

	done := make(chan struct{})
	go func() {
		n.NotifyTick(testState(t, 0, nil), testState(t, 1, nil))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier stalled on a blocking observer")
	}
	close(blocker.release)
	assert.Equal(t, []string{"tick"}, after.calls)
}

func TestStatsObserverSeries(t *testing.T) {
	s := &StatsObserver{}
	initial := testState(t, 0, nil)
	require.NoError(t, s.OnSimulationStart(initial, config.Default()))

	next := testState(t, 1, nil)
	require.NoError(t, s.OnTick(initial, next))

	require.Len(t, s.Samples, 2)
	assert.Equal(t, uint64(1), s.Samples[1].Tick)
	assert.Equal(t, 1, s.Samples[1].Alive)
}

func TestChronicleObserverCollectsNewLines(t *testing.T) {
	c := &ChronicleObserver{}
	prev := testState(t, 0, []string{"genesis"})
	require.NoError(t, c.OnSimulationStart(prev, config.Default()))

	next := testState(t, 1, []string{"genesis", "rent extracted"})
	require.NoError(t, c.OnTick(prev, next))

	assert.Equal(t, []string{"genesis", "rent extracted"}, c.Lines)
}
