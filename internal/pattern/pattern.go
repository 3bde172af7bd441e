// Package pattern holds the animations selectable by command digit. Each
// pattern value owns its own counters; the Registry builds a fresh value on
// every selection so nothing carries over between switches.
package pattern

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ringlight/model"
)

// Pattern paints the buffer. Init is called once on selection, Step once per
// tick.
type Pattern interface {
	Name() string
	Init(buf *model.Buffer)
	Step(buf *model.Buffer)
}

// Factory builds a fresh pattern value.
type Factory func(log zerolog.Logger) Pattern

type entry struct {
	name string
	new  Factory
}

// Registry maps command digits to pattern factories.
type Registry struct {
	log     zerolog.Logger
	entries map[rune]entry
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{log: log, entries: map[rune]entry{}}
}

// Default returns the registry with the eight stock patterns on 0..7.
func Default(log zerolog.Logger) *Registry {
	r := NewRegistry(log)
	r.Register('0', "blackout", func(zerolog.Logger) Pattern { return Blackout{} })
	r.Register('1', "touch", NewTouchTick)
	r.Register('2', "sync-cw", func(l zerolog.Logger) Pattern { return NewSync(l, model.Clockwise) })
	r.Register('3', "sync-ccw", func(l zerolog.Logger) Pattern { return NewSync(l, model.CounterClockwise) })
	r.Register('4', "palette", func(zerolog.Logger) Pattern { return NewPalettePulse() })
	r.Register('5', "bump-streak", NewBumpStreak)
	r.Register('6', "sweep", func(zerolog.Logger) Pattern { return NewSweep() })
	r.Register('7', "collide", NewCollide)
	return r
}

func (r *Registry) Register(key rune, name string, f Factory) {
	if f == nil {
		return
	}
	r.entries[key] = entry{name: name, new: f}
}

// New builds a fresh pattern for key. The caller runs Init.
func (r *Registry) New(key rune) (Pattern, bool) {
	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return e.new(r.log.With().Str("pattern", e.name).Logger()), true
}

// Keys lists the registered keys in order.
func (r *Registry) Keys() []rune {
	out := make([]rune, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NameOf returns the registered name for key, or "".
func (r *Registry) NameOf(key rune) string {
	return r.entries[key].name
}

// Blackout clears both rings and then holds still.
type Blackout struct{}

func (Blackout) Name() string { return "blackout" }

func (Blackout) Init(buf *model.Buffer) {
	buf.Fill(model.Black)
}

func (Blackout) Step(*model.Buffer) {}

// Colors shared by the streak patterns.
var (
	StreakHead = model.NewColor(0xFFFFFF)
	StreakTail = model.NewColor(0x100020)
	Background = model.NewColor(0x000000)

	InnerHead = model.NewColor(0x00FFC0)
	InnerTail = model.NewColor(0x001008)
	OuterHead = model.NewColor(0xFF6000)
	OuterTail = model.NewColor(0x100200)
)

// debug logs a geometry error; the primitives have already clamped or
// dropped the draw.
func debug(log zerolog.Logger, err error, what string) {
	if err != nil {
		log.Debug().Err(err).Msg(what)
	}
}
