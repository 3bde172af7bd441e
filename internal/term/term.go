// Package term previews the rings in a terminal with tcell and reads
// single-key commands from the same screen.
package term

import (
	"context"
	"errors"
	"image"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ringlight/internal/led"
	"github.com/coreman2200/funtimes-ringlight/model"
)

const (
	InnerRadius = 4
	OuterRadius = 7

	pixel = '●'
)

// ErrQuit is returned by Keys when the user presses Ctrl+C or Esc.
var ErrQuit = errors.New("quit requested")

// Screen draws both rings as circles, each slot at its visual angle.
type Screen struct {
	*led.Output

	log    zerolog.Logger
	mu     sync.Mutex
	screen tcell.Screen
	cells  [model.BufferLength]image.Point
	status string
}

// New takes ownership of s and initializes it.
func New(s tcell.Screen, log zerolog.Logger) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	d := &Screen{Output: led.NewOutput(), log: log, screen: s}
	for _, r := range model.Rings {
		radius := InnerRadius
		if r == model.Outer {
			radius = OuterRadius
		}
		for i := 0; i < r.Len; i++ {
			d.cells[r.Start+i] = Cell(r, i, radius)
		}
	}
	return d, nil
}

// Cell returns where ring index i sits on screen. Columns are doubled so the
// circle looks round in a terminal.
func Cell(r model.Ring, i, radius int) image.Point {
	theta := 2 * math.Pi * r.Angle(i)
	cx, cy := 2*OuterRadius+1, OuterRadius+1
	return image.Point{
		X: cx + int(math.Round(2*float64(radius)*math.Sin(theta))),
		Y: cy - int(math.Round(float64(radius)*math.Cos(theta))),
	}
}

// SetStatus sets the line drawn under the rings.
func (d *Screen) SetStatus(s string) {
	d.mu.Lock()
	d.status = s
	d.mu.Unlock()
}

func (d *Screen) Flush(buf *model.Buffer) error {
	frame := d.Frame(buf)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.screen.Clear()
	for i, c := range frame {
		p := d.cells[i]
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		d.screen.SetContent(p.X, p.Y, pixel, nil, style)
	}
	y := 2*OuterRadius + 3
	for x, ch := range d.status {
		d.screen.SetContent(x, y, ch, nil, tcell.StyleDefault)
	}
	d.screen.Show()
	return nil
}

// Keys forwards key presses to out as command bytes until the screen is
// closed, ctx is done, or the user quits.
func (d *Screen) Keys(ctx context.Context, out chan<- byte) error {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return nil
		}
		k, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		var b byte
		switch k.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return ErrQuit
		case tcell.KeyEnter:
			b = '\r'
		case tcell.KeyRune:
			r := k.Rune()
			if r > 0x7F {
				continue
			}
			b = byte(r)
		default:
			continue
		}
		select {
		case out <- b:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (d *Screen) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.screen.Fini()
	return nil
}
