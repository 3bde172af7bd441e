package pattern

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ringlight/internal/gear"
	"github.com/coreman2200/funtimes-ringlight/internal/render"
	"github.com/coreman2200/funtimes-ringlight/model"
)

// Sync turns a streak on each ring in the same visual direction, geared so
// both heads sweep the same angle per cycle. The heads start side by side.
type Sync struct {
	log          zerolog.Logger
	dir          model.Direction
	outer, inner int
	gear         gear.Gear
}

func NewSync(log zerolog.Logger, d model.Direction) *Sync {
	if d == model.Clockwise {
		return &Sync{log: log, dir: d, outer: gear.SyncOuterStreak, inner: gear.SyncInnerStreak}
	}
	return &Sync{log: log, dir: d, outer: gear.SyncCCWOuterStreak, inner: gear.SyncCCWInnerStreak}
}

func (p *Sync) Name() string {
	return "sync-" + p.dir.String()
}

func (p *Sync) Init(buf *model.Buffer) {
	p.gear.Reset()
	render.MakeStreak(buf, model.Outer, p.dir, p.outer, OuterHead, OuterTail, Background)
	render.MakeStreak(buf, model.Inner, p.dir, p.inner, InnerHead, InnerTail, Background)
	for i := 0; i < p.inner; i++ {
		render.RotateRing(buf, model.Inner, p.dir)
	}
}

func (p *Sync) Step(buf *model.Buffer) {
	outer, inner := p.gear.Advance()
	if outer {
		render.RotateRing(buf, model.Outer, p.dir)
	}
	if inner {
		render.RotateRing(buf, model.Inner, p.dir)
	}
}

// BumpStreak turns an inner bump counter-clockwise against an outer streak
// running clockwise, on the same gear.
type BumpStreak struct {
	log  zerolog.Logger
	gear gear.Gear
}

const (
	bumpStreakRadius = 3
	bumpStreakLength = 8
)

func NewBumpStreak(log zerolog.Logger) Pattern {
	return &BumpStreak{log: log}
}

func (p *BumpStreak) Name() string { return "bump-streak" }

func (p *BumpStreak) Init(buf *model.Buffer) {
	p.gear.Reset()
	debug(p.log, render.MakeBump(buf, model.Inner, bumpStreakRadius, Background, InnerHead), "inner bump")
	render.MakeClockwiseStreak(buf, model.Outer, bumpStreakLength, OuterHead, OuterTail, Background)
}

func (p *BumpStreak) Step(buf *model.Buffer) {
	outer, inner := p.gear.Advance()
	if outer {
		render.RotateRing(buf, model.Outer, model.Clockwise)
	}
	if inner {
		render.RotateRing(buf, model.Inner, model.CounterClockwise)
	}
}
