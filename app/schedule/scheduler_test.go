package schedule

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/shifty/app/theme"
)

// fakeDecider counts decision calls and can fail on demand.
type fakeDecider struct {
	calls atomic.Int64
	err   error
}

func (f *fakeDecider) ApplyAutoDecision(time.Time) error {
	f.calls.Add(1)
	return f.err
}

func TestScheduler_AppliesImmediatelyAndOnTicks(t *testing.T) {
	decider := &fakeDecider{}
	s := NewScheduler(decider, 25*time.Millisecond)

	s.Start()
	defer s.Stop()

	// immediate decision on start
	require.Eventually(t, func() bool { return decider.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)

	// then more on ticks
	require.Eventually(t, func() bool { return decider.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_DoubleStartSingleLoop(t *testing.T) {
	decider := &fakeDecider{}
	s := NewScheduler(decider, 30*time.Millisecond)

	s.Start()
	s.Start() // no-op, must not spawn a second loop
	time.Sleep(160 * time.Millisecond)
	s.Stop()

	calls := decider.calls.Load()
	// a single loop does 1 immediate + ~5 ticks; two loops would double it
	assert.GreaterOrEqual(t, calls, int64(3))
	assert.LessOrEqual(t, calls, int64(8), "looks like two poll loops are running")
}

func TestScheduler_StopIsPrompt(t *testing.T) {
	decider := &fakeDecider{}
	s := NewScheduler(decider, 10*time.Second) // long interval, stop must not wait for it

	s.Start()
	require.Eventually(t, func() bool { return decider.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	started := time.Now()
	s.Stop()
	assert.Less(t, time.Since(started), time.Second, "stop waited out the poll interval")
}

func TestScheduler_StopIdempotent(t *testing.T) {
	s := NewScheduler(&fakeDecider{}, 10*time.Millisecond)

	s.Stop() // before start, fine
	s.Start()
	s.Stop()
	s.Stop() // repeated, fine

	// after stop, start is a no-op too
	s.Start()
	time.Sleep(30 * time.Millisecond)
}

func TestScheduler_ContinuesOnErrors(t *testing.T) {
	decider := &fakeDecider{err: errors.New("backend down")}
	s := NewScheduler(decider, 15*time.Millisecond)

	s.Start()
	defer s.Stop()

	// failing decisions must not kill the loop
	require.Eventually(t, func() bool { return decider.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_ContinuesOnNoCounterpart(t *testing.T) {
	decider := &fakeDecider{err: fmt.Errorf("%w for Numix", theme.ErrNoCounterpart)}
	s := NewScheduler(decider, 15*time.Millisecond)

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return decider.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestNewScheduler_DefaultInterval(t *testing.T) {
	s := NewScheduler(&fakeDecider{}, 0)
	assert.Equal(t, DefaultPollInterval, s.interval)

	s = NewScheduler(&fakeDecider{}, -time.Second)
	assert.Equal(t, DefaultPollInterval, s.interval)
}
