package window

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"saxvideo/scheduler"
	"saxvideo/videogenerator"
)

const title = "Saxophone MIDI Visualizer"

// Game plays a scheduler in a live window. Update advances one tick, Draw
// renders the state that tick produced.
type Game struct {
	ctx      context.Context
	sched    *scheduler.Scheduler
	renderer *videogenerator.Renderer
	canvas   *canvas
	debug    bool
	err      error
}

func NewGame(ctx context.Context, sched *scheduler.Scheduler, r *videogenerator.Renderer, debug bool) *Game {
	return &Game{
		ctx:      ctx,
		sched:    sched,
		renderer: r,
		canvas:   newCanvas(),
		debug:    debug,
	}
}

func (g *Game) Update() (err error) {
	defer func() {
		if p := recover(); p != nil {
			logrus.WithField("panic", p).Error("window update panicked")
			err = errors.Wrapf(videogenerator.ErrLoopAborted, "%v", p)
		}
	}()

	if g.err != nil {
		return g.err
	}
	if g.ctx.Err() != nil || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if g.sched.State() == scheduler.Idle {
		if err := g.sched.Start(); err != nil {
			return err
		}
	}
	if g.sched.Tick() == scheduler.Finished {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	defer func() {
		if p := recover(); p != nil {
			g.err = errors.Wrapf(videogenerator.ErrLoopAborted, "draw: %v", p)
		}
	}()

	g.canvas.dst = screen
	current, ok := g.sched.Current()
	g.renderer.DrawFrame(g.canvas, g.sched.Active(), current, ok)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FRAME %05d  TPS %0.1f  active %d", g.sched.Frame(), ebiten.ActualTPS(), len(g.sched.Active())))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	var res = g.renderer.Settings().Resolution
	return int(res.Width()), int(res.Height())
}

// Play opens a window and runs the scheduler in real time until every note
// has scrolled past, the window is closed or ctx is cancelled.
func Play(ctx context.Context, sched *scheduler.Scheduler, r *videogenerator.Renderer, debug bool) error {
	var res = r.Settings().Resolution
	ebiten.SetWindowSize(int(res.Width()), int(res.Height()))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(sched.Config().FPS)

	var g = NewGame(ctx, sched, r, debug)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "window")
	}
	if sched.TimedOut() {
		logrus.Warn("playback ended on the safety timeout")
	}
	return nil
}
