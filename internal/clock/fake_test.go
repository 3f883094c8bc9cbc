package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_FiresAtPeriod(t *testing.T) {
	t.Parallel()

	f := NewFake(time.Unix(0, 0))
	var fires int
	f.Every(time.Second, func() { fires++ })

	assert.Equal(t, 0, f.Advance(999*time.Millisecond))
	assert.Equal(t, 1, f.Advance(time.Millisecond))
	assert.Equal(t, 3, f.Advance(3*time.Second))
	assert.Equal(t, 4, fires)
}

func TestFake_StopPreventsFurtherFires(t *testing.T) {
	t.Parallel()

	f := NewFake(time.Unix(0, 0))
	var fires int
	timer := f.Every(time.Second, func() { fires++ })

	f.Advance(2 * time.Second)
	timer.Stop()
	timer.Stop()
	f.Advance(5 * time.Second)

	assert.Equal(t, 2, fires)
	assert.Equal(t, 0, f.Active())
}

func TestFake_TimerStoppedFromCallback(t *testing.T) {
	t.Parallel()

	f := NewFake(time.Unix(0, 0))
	var fires int
	var timer Timer
	timer = f.Every(time.Second, func() {
		fires++
		if fires == 2 {
			timer.Stop()
		}
	})

	f.Advance(10 * time.Second)
	assert.Equal(t, 2, fires)
}

func TestFake_OrdersFiresAcrossTimers(t *testing.T) {
	t.Parallel()

	f := NewFake(time.Unix(0, 0))
	var order []string
	f.Every(2*time.Second, func() { order = append(order, "slow") })
	f.Every(time.Second, func() { order = append(order, "fast") })

	f.Advance(4 * time.Second)
	require.Equal(t, []string{"fast", "slow", "fast", "fast", "slow", "fast"}, order)
	assert.Equal(t, time.Unix(4, 0), f.Now())
}
