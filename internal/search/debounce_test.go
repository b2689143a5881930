package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const quiet = 30 * time.Millisecond

func TestShortQueryNeverFires(t *testing.T) {
	d := NewDebouncer(quiet, 3)

	var calls atomic.Int32
	d.Input("du", func(string) { calls.Add(1) })

	time.Sleep(4 * quiet)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRapidTypingFiresOnce(t *testing.T) {
	d := NewDebouncer(quiet, 3)

	var calls atomic.Int32
	var got atomic.Value
	fn := func(q string) {
		calls.Add(1)
		got.Store(q)
	}

	d.Input("d", fn)
	d.Input("du", fn)
	d.Input("dup", fn)

	time.Sleep(4 * quiet)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "dup", got.Load())
}

func TestNewerInputReplacesPending(t *testing.T) {
	d := NewDebouncer(quiet, 3)

	var got atomic.Value
	fn := func(q string) { got.Store(q) }

	d.Input("dupont", fn)
	time.Sleep(quiet / 3)
	d.Input("dupond", fn)

	time.Sleep(4 * quiet)
	assert.Equal(t, "dupond", got.Load())
}

func TestTrimsWhitespace(t *testing.T) {
	d := NewDebouncer(quiet, 3)

	var got atomic.Value
	d.Input("  dup  ", func(q string) { got.Store(q) })

	time.Sleep(4 * quiet)
	assert.Equal(t, "dup", got.Load())
}

func TestShorteningBelowMinCancelsPending(t *testing.T) {
	d := NewDebouncer(quiet, 3)

	var calls atomic.Int32
	fn := func(string) { calls.Add(1) }

	d.Input("dup", fn)
	d.Input("du", fn)

	time.Sleep(4 * quiet)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCancel(t *testing.T) {
	d := NewDebouncer(quiet, 3)

	var calls atomic.Int32
	d.Input("dupont", func(string) { calls.Add(1) })
	assert.True(t, d.Pending())

	d.Cancel()
	assert.False(t, d.Pending())

	time.Sleep(4 * quiet)
	assert.Equal(t, int32(0), calls.Load())
}
