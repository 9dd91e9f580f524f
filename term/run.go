package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/hearts"
)

// DefaultFrameInterval is the frame period Run uses when none is given.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop is what Run drives.
type Loop interface {
	// HandleEvent handles one terminal event. Returning false ends Run.
	HandleEvent(ev tcell.Event) bool
	// Update advances by dt and draws a frame.
	Update(dt time.Duration)
}

// Run pumps screen events into loop and calls loop.Update once per
// interval until loop asks to quit or ctx is done. It finalizes screen
// before returning. The loop's methods all run on one goroutine.
func Run(ctx context.Context, screen tcell.Screen, loop Loop, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})

	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-quit:
				return nil
			}
		}
	})

	g.Go(func() error {
		defer screen.Fini()
		defer close(quit)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-events:
				if !loop.HandleEvent(ev) {
					return nil
				}
			case now := <-ticker.C:
				loop.Update(now.Sub(last))
				last = now
			}
		}
	})

	return g.Wait()
}

// App is a ready-made Loop: it advances a timeline, animates and draws a
// surface, routes mouse events to the surface's targets and quits on
// Escape, Ctrl-C or q.
type App struct {
	Surface  *Surface
	Timeline *hearts.Timeline
	// OnKey, when set, sees every key event first. Returning false quits.
	OnKey func(ev *tcell.EventKey) bool
}

// HandleEvent implements Loop.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if a.OnKey != nil && !a.OnKey(ev) {
			return false
		}
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		}
	case *tcell.EventResize:
		a.Surface.Screen().Sync()
	case *tcell.EventMouse:
		a.Surface.HandleEvent(ev)
	}
	return true
}

// Update implements Loop.
func (a *App) Update(dt time.Duration) {
	if a.Timeline != nil {
		a.Timeline.Advance(dt)
	}
	a.Surface.Update(dt)
	a.Surface.Draw()
}
