package pattern

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ringlight/internal/gear"
	"github.com/coreman2200/funtimes-ringlight/internal/render"
	"github.com/coreman2200/funtimes-ringlight/model"
)

const (
	touchInnerStreak = 4
	touchOuterStreak = 6
)

// TouchTick turns the outer ring clockwise one slot every tick. The inner
// ring only moves when it is touched: each time the outer position reaches
// the inner one in the alignment table the inner ring steps once clockwise.
// The next table entry is two or three slots on, so without the cooldown the
// inner ring would be dragged along by the outer one.
type TouchTick struct {
	log     zerolog.Logger
	touch   gear.Touch
	touches int
}

func NewTouchTick(log zerolog.Logger) Pattern {
	return &TouchTick{log: log}
}

func (p *TouchTick) Name() string { return "touch" }

func (p *TouchTick) Init(buf *model.Buffer) {
	p.touch.Reset()
	p.touches = 0
	render.MakeClockwiseStreak(buf, model.Inner, touchInnerStreak, InnerHead, InnerTail, Background)
	render.MakeClockwiseStreak(buf, model.Outer, touchOuterStreak, OuterHead, OuterTail, Background)
}

func (p *TouchTick) Step(buf *model.Buffer) {
	p.touch.Tick()

	render.RotateRing(buf, model.Outer, model.Clockwise)
	p.touch.MoveOuter(1)

	if p.touch.Check() {
		p.touches++
		in, out := p.touch.Positions()
		p.log.Trace().Int("inner", in).Int("outer", out).Msg("touch")
		render.RotateRing(buf, model.Inner, model.Clockwise)
		p.touch.MoveInner(1)
	}
}

// Touches is the number of touches fired since Init.
func (p *TouchTick) Touches() int {
	return p.touches
}
