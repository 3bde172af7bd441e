package pattern

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/funtimes-ringlight/internal/render"
	"github.com/coreman2200/funtimes-ringlight/model"
)

// PaletteSize is the number of precomputed palette entries.
const PaletteSize = 16

var paletteStops = []string{"#FF0040", "#FFB000", "#00C060", "#0040FF"}

// Palette is the cyclic palette blended in HCL between the stops.
var Palette = func() (p [PaletteSize]model.Color) {
	stops := make([]colorful.Color, len(paletteStops))
	for i, h := range paletteStops {
		stops[i] = mustHex(h)
	}
	per := PaletteSize / len(stops)
	for i := range p {
		seg := i / per
		t := float64(i%per) / float64(per)
		c := stops[seg].BlendHcl(stops[(seg+1)%len(stops)], t).Clamped()
		p[i].R, p[i].G, p[i].B = c.RGB255()
	}
	return p
}()

// mustHex parses a constant palette stop.
func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(err)
	}
	return c
}

// PalettePulse fills each ring with one palette color per tick, the outer
// ring half a palette ahead of the inner.
type PalettePulse struct {
	idx int
}

func NewPalettePulse() *PalettePulse {
	return &PalettePulse{}
}

func (p *PalettePulse) Name() string { return "palette" }

func (p *PalettePulse) Init(buf *model.Buffer) {
	p.idx = 0
	p.paint(buf)
}

func (p *PalettePulse) Step(buf *model.Buffer) {
	p.idx = (p.idx + 1) % PaletteSize
	p.paint(buf)
}

func (p *PalettePulse) paint(buf *model.Buffer) {
	render.FillSolid(buf.Slots(model.Inner), Palette[p.idx])
	render.FillSolid(buf.Slots(model.Outer), Palette[(p.idx+PaletteSize/2)%PaletteSize])
}
