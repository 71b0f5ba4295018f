package playback_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/pathviz/playback"
)

func TestManualClock_OrderByDueThenSeq(t *testing.T) {
	c := playback.NewManualClock()
	var got []string
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })

	c.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 15*time.Millisecond, c.Now())

	c.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, c.Pending())
}

func TestManualClock_NestedSchedulingWithinAdvance(t *testing.T) {
	c := playback.NewManualClock()
	var at []time.Duration
	var step func()
	step = func() {
		at = append(at, c.Now())
		if len(at) < 4 {
			c.AfterFunc(10*time.Millisecond, step)
		}
	}
	c.AfterFunc(0, step)

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, []time.Duration{0, 10 * time.Millisecond, 20 * time.Millisecond}, at)
	assert.Equal(t, 1, c.Pending())
}

func TestManualClock_Stop(t *testing.T) {
	c := playback.NewManualClock()
	ran := false
	tm := c.AfterFunc(time.Millisecond, func() { ran = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	c.Advance(time.Second)
	assert.False(t, ran)
}

func TestManualClock_Drain(t *testing.T) {
	c := playback.NewManualClock()
	n := 0
	var step func()
	step = func() {
		n++
		if n < 5 {
			c.AfterFunc(time.Second, step)
		}
	}
	c.AfterFunc(time.Second, step)

	assert.Equal(t, 5*time.Second, c.Drain())
	assert.Equal(t, 5, n)
	assert.Zero(t, c.Drain())
}
