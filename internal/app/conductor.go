package app

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ringlight/internal/command"
	"github.com/coreman2200/funtimes-ringlight/internal/led"
	"github.com/coreman2200/funtimes-ringlight/internal/metrics"
	"github.com/coreman2200/funtimes-ringlight/internal/pattern"
	"github.com/coreman2200/funtimes-ringlight/internal/sequence"
	"github.com/coreman2200/funtimes-ringlight/model"
)

// CommandQueue is how many pending command bytes are buffered.
const CommandQueue = 64

type Options struct {
	Log      zerolog.Logger
	Registry *pattern.Registry
	Driver   led.Driver
	Delay    time.Duration
	// Help receives the help listing on unknown commands.
	Help io.Writer
	// Metrics is optional.
	Metrics *metrics.Metrics
	// OnStatus, if set, is called on the loop goroutine after every change.
	OnStatus func(Status)
}

// Status is a snapshot of the conductor, safe to read from any goroutine.
type Status struct {
	Pattern     string `json:"pattern"`
	Key         string `json:"key"`
	State       string `json:"state"`
	DelayMs     int64  `json:"delay_ms"`
	Ticks       uint64 `json:"ticks"`
	FlushErrors uint64 `json:"flush_errors"`
}

// Conductor is the single writer of the buffer, the scheduler and the speed.
// Command sources only send bytes on Commands(); the loop applies them
// between ticks.
type Conductor struct {
	log      zerolog.Logger
	reg      *pattern.Registry
	sched    *sequence.Scheduler
	driver   led.Driver
	speed    command.Speed
	help     io.Writer
	metrics  *metrics.Metrics
	onStatus func(Status)

	cmds   chan byte
	key    rune
	status atomic.Pointer[Status]
}

func NewConductor(o Options) *Conductor {
	c := &Conductor{
		log:      o.Log,
		reg:      o.Registry,
		driver:   o.Driver,
		speed:    command.NewSpeed(o.Delay),
		help:     o.Help,
		metrics:  o.Metrics,
		onStatus: o.OnStatus,
		cmds:     make(chan byte, CommandQueue),
	}
	if c.reg == nil {
		c.reg = pattern.Default(o.Log)
	}

	var h sequence.Hooks
	if m := o.Metrics; m != nil {
		h = sequence.Hooks{
			OnTick:   func(s sequence.State) { m.Tick(string(s)) },
			OnFlush:  m.Flush,
			OnSwitch: m.Switch,
		}
		m.SetDelay(c.speed.Delay().Seconds())
	}
	c.sched = sequence.NewScheduler(model.NewBuffer(), o.Driver, o.Log.With().Str("component", "scheduler").Logger(), h)
	c.publish()
	return c
}

// Commands is the write end of the command queue.
func (c *Conductor) Commands() chan<- byte {
	return c.cmds
}

// Handle applies one command byte immediately. Only the loop goroutine may
// call it.
func (c *Conductor) Handle(b byte) {
	cmd := command.Parse(b)
	switch cmd.Kind {
	case command.Ignore:
		return
	case command.Faster:
		if c.speed.Faster() {
			c.log.Info().Dur("delay", c.speed.Delay()).Msg("faster")
		}
		c.delayChanged()
	case command.Slower:
		if c.speed.Slower() {
			c.log.Info().Dur("delay", c.speed.Delay()).Msg("slower")
		}
		c.delayChanged()
	case command.Select:
		c.Select(cmd.Key)
	default:
		if c.help != nil {
			fmt.Fprint(c.help, command.HelpText(c.reg))
		}
	}
	c.publish()
}

// Select builds a fresh pattern for key, runs Init on the buffer and makes it
// active.
func (c *Conductor) Select(key rune) bool {
	p, ok := c.reg.New(key)
	if !ok {
		c.log.Debug().Str("key", string(key)).Msg("no pattern for key")
		return false
	}
	p.Init(c.sched.Buffer())
	c.sched.SetPattern(p)
	c.key = key
	c.log.Info().Str("key", string(key)).Str("pattern", p.Name()).Msg("pattern selected")
	c.publish()
	return true
}

// Step drains every pending command, then runs one tick.
func (c *Conductor) Step() error {
drain:
	for {
		select {
		case b := <-c.cmds:
			c.Handle(b)
		default:
			break drain
		}
	}
	err := c.sched.Tick()
	c.publish()
	return err
}

// Run ticks until ctx is done. Flush errors are logged by the scheduler and
// do not stop the loop.
func (c *Conductor) Run(ctx context.Context) error {
	c.log.Info().Dur("delay", c.speed.Delay()).Msg("conductor starting")
	defer c.log.Info().Uint64("ticks", c.sched.Ticks()).Msg("conductor stopped")
	for {
		if ctx.Err() != nil {
			return nil
		}
		_ = c.Step()
		c.driver.Delay(c.speed.Delay())
	}
}

func (c *Conductor) Delay() time.Duration {
	return c.speed.Delay()
}

// Status returns the last published snapshot.
func (c *Conductor) Status() Status {
	return *c.status.Load()
}

// StatusMap is Status in the shape /health merges.
func (c *Conductor) StatusMap() map[string]any {
	s := c.Status()
	return map[string]any{
		"pattern":      s.Pattern,
		"key":          s.Key,
		"state":        s.State,
		"delay_ms":     s.DelayMs,
		"ticks":        s.Ticks,
		"flush_errors": s.FlushErrors,
	}
}

func (c *Conductor) delayChanged() {
	if c.metrics != nil {
		c.metrics.SetDelay(c.speed.Delay().Seconds())
	}
}

func (c *Conductor) publish() {
	s := Status{
		State:       string(c.sched.State),
		DelayMs:     c.speed.Delay().Milliseconds(),
		Ticks:       c.sched.Ticks(),
		FlushErrors: c.sched.FlushErrors(),
	}
	if p := c.sched.Active(); p != nil {
		s.Pattern = p.Name()
		s.Key = string(c.key)
	}
	prev := c.status.Swap(&s)
	if c.onStatus != nil && (prev == nil || prev.Pattern != s.Pattern || prev.DelayMs != s.DelayMs) {
		c.onStatus(s)
	}
}
