package pattern

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ringlight/internal/render"
	"github.com/coreman2200/funtimes-ringlight/model"
)

type pair struct {
	ring                model.Ring
	length              int
	fwd, back           int
	startFwd, startBack int
}

// Collide runs two streaks per ring toward each other: one moving up the
// index, one moving down, passing through each other.
type Collide struct {
	log   zerolog.Logger
	pairs []pair
}

func NewCollide(log zerolog.Logger) Pattern {
	return &Collide{
		log: log,
		pairs: []pair{
			{ring: model.Inner, length: 4, startFwd: 0, startBack: 8},
			{ring: model.Outer, length: 6, startFwd: 0, startBack: 12},
		},
	}
}

func (p *Collide) Name() string { return "collide" }

func (p *Collide) Init(buf *model.Buffer) {
	for i := range p.pairs {
		p.pairs[i].fwd = p.pairs[i].startFwd
		p.pairs[i].back = p.pairs[i].startBack
		p.draw(buf, &p.pairs[i])
	}
}

func (p *Collide) Step(buf *model.Buffer) {
	for i := range p.pairs {
		s := &p.pairs[i]
		s.fwd = s.ring.Wrap(s.fwd + 1)
		s.back = s.ring.Wrap(s.back - 1)
		p.draw(buf, s)
	}
}

// Starts returns the current forward and backward streak starts for r.
func (p *Collide) Starts(r model.Ring) (fwd, back int) {
	for _, s := range p.pairs {
		if s.ring == r {
			return s.fwd, s.back
		}
	}
	return 0, 0
}

// draw repaints the ring. The forward streak leads with its last slot and the
// backward one with its first.
func (p *Collide) draw(buf *model.Buffer, s *pair) {
	render.FillSolid(buf.Slots(s.ring), Background)
	debug(p.log, render.DrawWrappedStreak(buf, s.ring, s.fwd, s.length, InnerTail, InnerHead), "forward streak")
	debug(p.log, render.DrawWrappedStreak(buf, s.ring, s.back, s.length, OuterHead, OuterTail), "backward streak")
}
