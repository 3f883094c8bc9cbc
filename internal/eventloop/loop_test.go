package eventloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoop(t *testing.T) *Loop {
	t.Helper()
	l := New(zerolog.Nop(), 0)
	t.Cleanup(l.Close)
	return l
}

func TestLoop_RunsHandlersInOrder(t *testing.T) {
	t.Parallel()

	l := newTestLoop(t)
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		require.NoError(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Do(context.Background(), func() {}))

	var snapshot []int
	require.NoError(t, l.Do(context.Background(), func() { snapshot = append(snapshot, got...) }))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, snapshot)
}

func TestLoop_PostAfterCloseFails(t *testing.T) {
	t.Parallel()

	l := New(zerolog.Nop(), 0)
	l.Close()
	l.Close()

	assert.ErrorIs(t, l.Post(func() {}), ErrClosed)
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrClosed)
}

func TestLoop_SurvivesPanickingHandler(t *testing.T) {
	t.Parallel()

	l := newTestLoop(t)
	require.NoError(t, l.Post(func() { panic("boom") }))

	ran := false
	require.NoError(t, l.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_DoHonoursContext(t *testing.T) {
	t.Parallel()

	l := newTestLoop(t)
	release := make(chan struct{})
	require.NoError(t, l.Post(func() { <-release }))
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Do(ctx, func() {}), context.DeadlineExceeded)
}

func TestLoop_EveryFiresOnLoopUntilStopped(t *testing.T) {
	t.Parallel()

	l := newTestLoop(t)
	var fires atomic.Int32
	timer := l.Every(5*time.Millisecond, func() { fires.Add(1) })

	require.Eventually(t, func() bool { return fires.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	// Stopping on the loop guarantees no later fire is observed.
	require.NoError(t, l.Do(context.Background(), timer.Stop))
	var afterStop int32
	require.NoError(t, l.Do(context.Background(), func() { afterStop = fires.Load() }))

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, l.Do(context.Background(), func() {}))
	assert.Equal(t, afterStop, fires.Load())
}

func TestLoop_CloseStopsTimers(t *testing.T) {
	t.Parallel()

	l := New(zerolog.Nop(), 0)
	var fires atomic.Int32
	l.Every(time.Millisecond, func() { fires.Add(1) })
	time.Sleep(10 * time.Millisecond)

	l.Close()
	after := fires.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, fires.Load())
}
