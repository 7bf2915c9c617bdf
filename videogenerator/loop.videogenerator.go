package videogenerator

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"saxvideo/scheduler"
)

var ErrLoopAborted = errors.New("render loop aborted")

// Run drives sched to completion, drawing and presenting one frame per tick.
// It stops early when ctx is cancelled or the canvas asks to close; the
// frame of the tick in progress is still presented. gov may be nil.
func Run(ctx context.Context, sched *scheduler.Scheduler, r *Renderer, c Canvas, gov Governor) (err error) {
	defer func() {
		if p := recover(); p != nil {
			logrus.WithFields(logrus.Fields{
				"panic": p,
				"frame": sched.Frame(),
			}).Error("render loop panicked")
			err = errors.Wrapf(ErrLoopAborted, "frame %d: %v", sched.Frame(), p)
		}
	}()

	if sched.State() == scheduler.Idle {
		if err := sched.Start(); err != nil {
			return err
		}
	}

	var closer, canClose = c.(CloseRequester)

	for {
		var stop = ctx.Err() != nil || (canClose && closer.CloseRequested())

		var state = sched.Tick()
		current, ok := sched.Current()
		r.DrawFrame(c, sched.Active(), current, ok)
		if err := c.Present(); err != nil {
			return errors.Wrapf(err, "present frame %d", sched.Frame())
		}

		if stop {
			logrus.WithField("frame", sched.Frame()).Info("render loop stopped")
			return ctx.Err()
		}
		if state == scheduler.Finished {
			return nil
		}

		if gov != nil {
			if err := gov.Wait(ctx); err != nil {
				return err
			}
		}
	}
}

// RateGovernor paces the loop to a fixed number of iterations per second.
type RateGovernor struct {
	ticker *time.Ticker
}

func NewRateGovernor(fps int) *RateGovernor {
	return &RateGovernor{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (g *RateGovernor) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.ticker.C:
		return nil
	}
}

func (g *RateGovernor) Stop() {
	g.ticker.Stop()
}
