package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-ringlight/internal/command"
	"github.com/coreman2200/funtimes-ringlight/internal/led"
	"github.com/coreman2200/funtimes-ringlight/internal/metrics"
	"github.com/coreman2200/funtimes-ringlight/model"
)

func newTestConductor(t *testing.T) (*Conductor, *led.Sim, *bytes.Buffer) {
	t.Helper()
	sim := led.NewSim(nil, false)
	help := &bytes.Buffer{}
	c := NewConductor(Options{Log: zerolog.Nop(), Driver: sim, Help: help})
	return c, sim, help
}

func TestStartsIdle(t *testing.T) {
	c, sim, _ := newTestConductor(t)
	assert.Equal(t, "idle", c.Status().State)
	assert.Equal(t, command.DefaultDelay, c.Delay())

	require.NoError(t, c.Step())
	assert.Equal(t, 1, sim.Count(), "idle ticks still flush")
}

func TestCommandsApplyAtTickBoundary(t *testing.T) {
	c, sim, _ := newTestConductor(t)

	c.Commands() <- '6'
	c.Commands() <- '\n'
	assert.Equal(t, "idle", c.Status().State, "nothing changes before the tick")

	require.NoError(t, c.Step())
	st := c.Status()
	assert.Equal(t, "running", st.State)
	assert.Equal(t, "sweep", st.Pattern)
	assert.Equal(t, "6", st.Key)
	assert.Equal(t, uint64(1), st.Ticks)

	// Init lit slot 0; the same tick's Step moved on to slot 1
	frame := sim.Last()
	assert.Equal(t, model.Black, frame[0])
	assert.Equal(t, model.White, frame[1])
}

func TestSpeedCommands(t *testing.T) {
	c, _, _ := newTestConductor(t)
	c.Handle('+')
	assert.Equal(t, 40*time.Millisecond, c.Delay())
	for i := 0; i < 10; i++ {
		c.Handle('+')
	}
	assert.Equal(t, command.MinDelay, c.Delay())
	for i := 0; i < 30; i++ {
		c.Handle('-')
	}
	assert.Equal(t, command.MaxDelay, c.Delay())
	assert.Equal(t, int64(150), c.Status().DelayMs)
}

func TestUnknownCommandPrintsHelp(t *testing.T) {
	c, _, help := newTestConductor(t)
	require.True(t, c.Select('2'))
	before := c.Status()

	c.Handle('x')
	assert.Contains(t, help.String(), "commands:")
	assert.Equal(t, before, c.Status(), "help changes nothing")

	assert.False(t, c.Select('9'))
	assert.Equal(t, "sync-cw", c.Status().Pattern)
}

func TestReselectStartsFresh(t *testing.T) {
	c, sim, _ := newTestConductor(t)
	c.Handle('2')
	require.NoError(t, c.Step())
	first := sim.Last()
	for i := 0; i < 4; i++ {
		require.NoError(t, c.Step())
	}
	assert.NotEqual(t, first, sim.Last())

	c.Handle('2')
	require.NoError(t, c.Step())
	assert.Equal(t, first, sim.Last(), "a new selection resets the phase")
}

func TestRunStopsOnCancel(t *testing.T) {
	m := metrics.New()
	sim := led.NewSim(nil, false)
	var seen []Status
	c := NewConductor(Options{
		Log:      zerolog.Nop(),
		Driver:   sim,
		Metrics:  m,
		OnStatus: func(s Status) { seen = append(seen, s) },
	})
	c.Commands() <- '4'

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	assert.Eventually(t, func() bool { return sim.Count() >= 5 }, 2*time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}

	for _, d := range sim.Delays() {
		assert.Equal(t, command.DefaultDelay, d)
	}
	expected := `
# HELP ringlight_pattern_switches_total Pattern selections, by pattern name.
# TYPE ringlight_pattern_switches_total counter
ringlight_pattern_switches_total{pattern="palette"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(m, strings.NewReader(expected), "ringlight_pattern_switches_total"))
	require.NotEmpty(t, seen)
	assert.Equal(t, "palette", seen[len(seen)-1].Pattern)
}
