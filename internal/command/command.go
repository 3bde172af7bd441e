// Package command turns single bytes from a serial-style text channel into
// engine commands.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/coreman2200/funtimes-ringlight/internal/pattern"
)

type Kind int

const (
	// Ignore is for line endings.
	Ignore Kind = iota
	Faster
	Slower
	Select
	Help
)

func (k Kind) String() string {
	switch k {
	case Ignore:
		return "ignore"
	case Faster:
		return "faster"
	case Slower:
		return "slower"
	case Select:
		return "select"
	default:
		return "help"
	}
}

type Command struct {
	Kind Kind
	// Key is the pattern digit for Select.
	Key rune
}

// Parse maps one input byte. Digits past the last pattern fall through to
// Help like any other unknown byte.
func Parse(b byte) Command {
	switch {
	case b == '\n' || b == '\r':
		return Command{Kind: Ignore}
	case b == '+':
		return Command{Kind: Faster}
	case b == '-':
		return Command{Kind: Slower}
	case b >= '0' && b <= '7':
		return Command{Kind: Select, Key: rune(b)}
	}
	return Command{Kind: Help}
}

const (
	MinDelay     = 10 * time.Millisecond
	MaxDelay     = 150 * time.Millisecond
	DelayStep    = 10 * time.Millisecond
	DefaultDelay = 50 * time.Millisecond
)

// Speed is the inter-tick delay, kept within [MinDelay, MaxDelay].
type Speed struct {
	delay time.Duration
}

// NewSpeed snaps d to the nearest DelayStep and clamps it to the bounds.
// Zero or negative picks DefaultDelay.
func NewSpeed(d time.Duration) Speed {
	if d <= 0 {
		d = DefaultDelay
	}
	d = d.Round(DelayStep)
	return Speed{delay: min(max(d, MinDelay), MaxDelay)}
}

func (s Speed) Delay() time.Duration {
	return s.delay
}

// Faster shortens the delay by one step. It reports false at the bound.
func (s *Speed) Faster() bool {
	if s.delay-DelayStep < MinDelay {
		return false
	}
	s.delay -= DelayStep
	return true
}

// Slower lengthens the delay by one step. It reports false at the bound.
func (s *Speed) Slower() bool {
	if s.delay+DelayStep > MaxDelay {
		return false
	}
	s.delay += DelayStep
	return true
}

// HelpText lists the commands and the registered patterns.
func HelpText(reg *pattern.Registry) string {
	var b strings.Builder
	b.WriteString("commands:\n")
	fmt.Fprintf(&b, "  +  faster (delay -%s, min %s)\n", DelayStep, MinDelay)
	fmt.Fprintf(&b, "  -  slower (delay +%s, max %s)\n", DelayStep, MaxDelay)
	for _, k := range reg.Keys() {
		fmt.Fprintf(&b, "  %c  %s\n", k, reg.NameOf(k))
	}
	return b.String()
}

// Read copies bytes from r into out until r is exhausted or ctx is done.
// If out is full the read blocks; commands are never dropped.
func Read(ctx context.Context, r io.Reader, out chan<- byte) error {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read commands: %w", err)
		}
		select {
		case out <- b:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
