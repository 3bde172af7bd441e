// Package sequence owns the active pattern and pushes one frame per tick.
package sequence

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ringlight/internal/led"
	"github.com/coreman2200/funtimes-ringlight/internal/pattern"
	"github.com/coreman2200/funtimes-ringlight/model"
)

// State enumerates scheduler states.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
)

// Hooks are optional callbacks, e.g. for metrics.
type Hooks struct {
	OnTick   func(s State)
	OnFlush  func(err error)
	OnSwitch func(name string)
}

// Scheduler runs the active pattern against one buffer and driver. It is not
// safe for concurrent use; a single goroutine owns it.
type Scheduler struct {
	State State

	log    zerolog.Logger
	buf    *model.Buffer
	driver led.Driver
	active pattern.Pattern
	hooks  Hooks

	ticks     uint64
	flushErrs atomic.Uint64
}

func NewScheduler(buf *model.Buffer, d led.Driver, log zerolog.Logger, h Hooks) *Scheduler {
	return &Scheduler{
		State:  Idle,
		log:    log,
		buf:    buf,
		driver: d,
		hooks:  h,
	}
}

// SetPattern makes p active and moves to Running. It does not call Init; the
// caller does that first. A nil pattern returns to Idle.
func (s *Scheduler) SetPattern(p pattern.Pattern) {
	s.active = p
	if p == nil {
		s.State = Idle
		return
	}
	s.State = Running
	if s.hooks.OnSwitch != nil {
		s.hooks.OnSwitch(p.Name())
	}
}

// Active returns the current pattern, or nil when idle.
func (s *Scheduler) Active() pattern.Pattern {
	return s.active
}

// Tick steps the active pattern, if any, then flushes. While idle it only
// flushes. A flush error is returned and counted; the next tick goes ahead
// regardless.
func (s *Scheduler) Tick() error {
	if s.State == Running && s.active != nil {
		s.active.Step(s.buf)
	}
	s.ticks++
	if s.hooks.OnTick != nil {
		s.hooks.OnTick(s.State)
	}

	err := s.driver.Flush(s.buf)
	if err != nil {
		s.flushErrs.Add(1)
		s.log.Warn().Err(err).Uint64("tick", s.ticks).Msg("flush failed")
	}
	if s.hooks.OnFlush != nil {
		s.hooks.OnFlush(err)
	}
	return err
}

func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// FlushErrors is safe to read from any goroutine.
func (s *Scheduler) FlushErrors() uint64 {
	return s.flushErrs.Load()
}

func (s *Scheduler) Buffer() *model.Buffer {
	return s.buf
}
