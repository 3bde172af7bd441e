package led

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coreman2200/funtimes-ringlight/model"
)

// Sim keeps every flushed frame in memory and optionally prints a compact
// summary of each one. Useful for headless runs and tests.
type Sim struct {
	*Output

	mu       sync.Mutex
	w        io.Writer
	realTime bool
	frames   [][]model.Color
	delays   []time.Duration
	keep     int
	count    int
	closed   bool
}

// NewSim returns a sim driver. w may be nil. With realTime unset, Delay only
// records the requested duration.
func NewSim(w io.Writer, realTime bool) *Sim {
	return &Sim{Output: NewOutput(), w: w, realTime: realTime, keep: 256}
}

func (d *Sim) Flush(buf *model.Buffer) error {
	frame := d.Frame(buf)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return fmt.Errorf("sim driver closed")
	}
	d.count++
	d.frames = append(d.frames, frame)
	if len(d.frames) > d.keep {
		d.frames = d.frames[len(d.frames)-d.keep:]
	}
	if d.w != nil {
		var r, g, b int
		for _, c := range frame {
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
		}
		n := len(frame)
		if n == 0 {
			n = 1
		}
		fmt.Fprintf(d.w, "[frame %04d] avg=(%d,%d,%d) inner0=%s outer0=%s\n",
			d.count, r/n, g/n, b/n, frame[model.Inner.Start], frame[model.Outer.Start])
	}
	return nil
}

func (d *Sim) Delay(t time.Duration) {
	d.mu.Lock()
	d.delays = append(d.delays, t)
	d.mu.Unlock()
	if d.realTime {
		d.Output.Delay(t)
	}
}

// Count is the number of frames flushed so far.
func (d *Sim) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Last returns the most recent frame, or nil.
func (d *Sim) Last() []model.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// Frames returns the retained frames, oldest first.
func (d *Sim) Frames() [][]model.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]model.Color(nil), d.frames...)
}

// Delays returns every delay requested so far.
func (d *Sim) Delays() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Duration(nil), d.delays...)
}

func (d *Sim) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}
