package inject

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/liz/internal/compiler"
)

// ErrInjection wraps every failure reported by a keyboard backend.
var ErrInjection = errors.New("key injection failed")

// Keyboard is a key-event backend.
type Keyboard interface {
	KeyDown(key string) error
	KeyUp(key string) error
	Type(text string) error
}

// Injector plays a compiled sequence.
type Injector interface {
	Inject(ctx context.Context, seq compiler.Sequence, delay time.Duration) error
}

// Player is the Injector that drives a Keyboard.
type Player struct {
	keyboard Keyboard
	sleep    func(time.Duration)
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithSleep replaces time.Sleep, mostly so tests can observe pacing.
func WithSleep(sleep func(time.Duration)) PlayerOption {
	return func(p *Player) {
		p.sleep = sleep
	}
}

// NewPlayer creates a Player over keyboard.
func NewPlayer(keyboard Keyboard, opts ...PlayerOption) *Player {
	p := &Player{
		keyboard: keyboard,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Inject plays seq. delay is slept before every block, including the first.
// The first backend error stops playback; it is returned wrapped in ErrInjection.
func (p *Player) Inject(ctx context.Context, seq compiler.Sequence, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInjection, err)
	}

	blocks := Blocks(seq)
	slog.Debug("playing sequence",
		"events", len(seq),
		"blocks", len(blocks),
		"delay", delay,
	)

	for _, block := range blocks {
		if delay > 0 {
			p.sleep(delay)
		}
		for _, ev := range block {
			if err := p.send(ev); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInjection, ev, err)
			}
		}
	}
	return nil
}

func (p *Player) send(ev compiler.Event) error {
	switch ev.Action {
	case compiler.Press:
		return p.keyboard.KeyDown(ev.Key)
	case compiler.Release:
		return p.keyboard.KeyUp(ev.Key)
	case compiler.Type:
		return p.keyboard.Type(ev.Text)
	default:
		return fmt.Errorf("unknown action %d", ev.Action)
	}
}

// Blocks splits seq into playback blocks: maximal runs of press/release
// events, with every type event standing alone.
func Blocks(seq compiler.Sequence) []compiler.Sequence {
	var blocks []compiler.Sequence
	var run compiler.Sequence

	for _, ev := range seq {
		if ev.Action == compiler.Type {
			if len(run) > 0 {
				blocks = append(blocks, run)
				run = nil
			}
			blocks = append(blocks, compiler.Sequence{ev})
			continue
		}
		run = append(run, ev)
	}
	if len(run) > 0 {
		blocks = append(blocks, run)
	}
	return blocks
}
