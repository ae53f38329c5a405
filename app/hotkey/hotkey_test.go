package hotkey

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/umputun/shifty/app/theme"
)

// fakeToggler counts toggles and can fail on demand.
type fakeToggler struct {
	calls atomic.Int64
	err   error
}

func (f *fakeToggler) Toggle() (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return "Adwaita-dark", nil
}

func runSource(t *testing.T, src *SignalSource) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = src.Run(ctx)
	}()
	time.Sleep(50 * time.Millisecond) // let the subscription attach
	return func() {
		cancelCtx()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("signal source did not stop on cancel")
		}
	}
}

func TestSignalSource_TogglesOnSignal(t *testing.T) {
	toggler := &fakeToggler{}
	stop := runSource(t, NewSignalSource(toggler))
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))
	require.Eventually(t, func() bool { return toggler.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestSignalSource_SurvivesToggleErrors(t *testing.T) {
	toggler := &fakeToggler{err: errors.New("backend down")}
	stop := runSource(t, NewSignalSource(toggler))
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))
	require.Eventually(t, func() bool { return toggler.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// failed toggle must not kill the subscription
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))
	require.Eventually(t, func() bool { return toggler.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestSignalSource_NoCounterpartIgnored(t *testing.T) {
	toggler := &fakeToggler{err: fmt.Errorf("%w for Numix", theme.ErrNoCounterpart)}
	stop := runSource(t, NewSignalSource(toggler))
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))
	require.Eventually(t, func() bool { return toggler.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
