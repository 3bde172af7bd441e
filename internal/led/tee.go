package led

import (
	"errors"
	"time"

	"github.com/coreman2200/funtimes-ringlight/model"
)

// Tee fans each call out to several drivers, e.g. hardware plus a preview.
// Delay only runs on the first driver so the tick is not slept twice.
type Tee struct {
	drivers []Driver
}

func NewTee(drivers ...Driver) *Tee {
	out := make([]Driver, 0, len(drivers))
	for _, d := range drivers {
		if d != nil {
			out = append(out, d)
		}
	}
	return &Tee{drivers: out}
}

// Flush flushes every driver, even after one fails, and joins the errors.
func (t *Tee) Flush(buf *model.Buffer) error {
	var errs []error
	for _, d := range t.drivers {
		if err := d.Flush(buf); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Tee) SetBrightness(level uint8) {
	for _, d := range t.drivers {
		d.SetBrightness(level)
	}
}

func (t *Tee) SetColorCorrection(c Correction) {
	for _, d := range t.drivers {
		d.SetColorCorrection(c)
	}
}

func (t *Tee) Delay(d time.Duration) {
	if len(t.drivers) > 0 {
		t.drivers[0].Delay(d)
	}
}

func (t *Tee) Close() error {
	var errs []error
	for _, d := range t.drivers {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
