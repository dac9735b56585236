package loops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/oklog/run"
)

// number of consecutive failed cycles after which a runner gives up
const maxConsecutiveErrors = 10

// Runner updates a Loop periodically and persists its controller state.
type Runner struct {
	persistence persistence.Persistence
	loop        *Loop
	tickRate    time.Duration
	persistRate time.Duration
}

func NewRunner(p persistence.Persistence, loop *Loop, tickRate time.Duration, persistRate time.Duration) *Runner {
	return &Runner{
		persistence: p,
		loop:        loop,
		tickRate:    tickRate,
		persistRate: persistRate,
	}
}

// Run restores the last saved state of the loop and cycles it until ctx is done
// or the loop fails repeatedly. The controller state is saved before returning.
func (r *Runner) Run(ctx context.Context) error {
	loop := r.loop
	if r.tickRate <= 0 {
		return fmt.Errorf("loop %s: tick rate must be positive, got %v", loop.GetId(), r.tickRate)
	}

	r.restoreState()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui.Info("Starting control loop '%s' (tick rate: %v)", loop.GetId(), r.tickRate)

	var g run.Group
	{
		g.Add(func() error {
			ticker := time.NewTicker(r.tickRate)
			defer ticker.Stop()

			last := time.Now()
			errorCount := 0
			for {
				select {
				case <-ctx.Done():
					return nil
				case now := <-ticker.C:
					dt := now.Sub(last)
					last = now

					_, err := loop.Cycle(dt)
					if err == nil {
						errorCount = 0
						continue
					}

					errorCount++
					ui.Warning("Error in control loop %s (%d/%d): %v", loop.GetId(), errorCount, maxConsecutiveErrors, err)
					if errorCount >= maxConsecutiveErrors {
						return err
					}
				}
			}
		}, func(err error) {
			cancel()
		})
	}
	if r.persistRate > 0 && r.persistence != nil {
		g.Add(func() error {
			ticker := time.NewTicker(r.persistRate)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					r.saveState()
				}
			}
		}, func(err error) {
			cancel()
		})
	}

	err := g.Run()
	r.saveState()
	return err
}

func (r *Runner) restoreState() {
	if r.persistence == nil {
		return
	}
	loop := r.loop
	state, err := r.persistence.LoadControllerState(loop.GetId())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			ui.Warning("Unable to load controller state of loop %s: %v", loop.GetId(), err)
		}
		return
	}
	loop.Restore(state.State)
	ui.Info("Restored controller state of loop '%s' saved at %s", loop.GetId(), state.SavedAt.Format(time.RFC3339))
}

func (r *Runner) saveState() {
	if r.persistence == nil {
		return
	}
	loop := r.loop
	err := r.persistence.SaveControllerState(loop.GetId(), loop.ControllerState())
	if err != nil {
		ui.Warning("Unable to save controller state of loop %s: %v", loop.GetId(), err)
	}
}
