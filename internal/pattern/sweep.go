package pattern

import (
	"github.com/coreman2200/funtimes-ringlight/model"
)

// SweepHold is how many ticks each color of the RGB phase is held.
const SweepHold = 8

var sweepColors = []model.Color{
	model.NewColor(0xFF0000),
	model.NewColor(0x00FF00),
	model.NewColor(0x0000FF),
}

// Sweep is the wiring check: one slot lit at a time across the whole buffer,
// then red, green and blue over everything.
type Sweep struct {
	t int
}

func NewSweep() *Sweep {
	return &Sweep{}
}

func (p *Sweep) Name() string { return "sweep" }

// Period is the length of one sweep in ticks.
func (p *Sweep) Period() int {
	return model.BufferLength + len(sweepColors)*SweepHold
}

func (p *Sweep) Init(buf *model.Buffer) {
	p.t = 0
	p.paint(buf)
}

func (p *Sweep) Step(buf *model.Buffer) {
	p.t = (p.t + 1) % p.Period()
	p.paint(buf)
}

func (p *Sweep) paint(buf *model.Buffer) {
	if p.t < model.BufferLength {
		buf.Fill(model.Black)
		buf.Set(p.t, model.White)
		return
	}
	buf.Fill(sweepColors[(p.t-model.BufferLength)/SweepHold])
}
