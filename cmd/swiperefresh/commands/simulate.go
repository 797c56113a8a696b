package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/zoobzio/clockz"

	"github.com/agiangrant/swiperefresh"
	"github.com/agiangrant/swiperefresh/animation"
	"github.com/agiangrant/swiperefresh/nested"
)

// traceIndicator records settle hooks for the trace.
type traceIndicator struct {
	*swiperefresh.BaseIndicator
	events []string
}

func (t *traceIndicator) OnStartSettleAnimation() { t.events = append(t.events, "settle-start") }
func (t *traceIndicator) OnEndSettleAnimation()   { t.events = append(t.events, "settle-end") }

type simulation struct {
	pull     float64
	steps    int
	useWheel bool
	hold     time.Duration
	every    int
	frames   int
	realtime bool
}

type stillContent struct{}

func (stillContent) CanScrollUp() bool            { return false }
func (stillContent) NestedScrollingEnabled() bool { return true }

// NewSimulateCmd replays a scripted pull and prints a frame trace. The clock
// is simulated unless --realtime is set.
func NewSimulateCmd() *cobra.Command {
	var sim simulation

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a pull headlessly and print a frame trace",
		Long: `Pull the indicator by a given overscroll, release, and step the
animations frame by frame on a simulated clock, or on the wall clock with
--realtime. The refresh is stopped after --hold once the refresh callback
has run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return sim.run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().Float64Var(&sim.pull, "pull", 120, "Overscroll to pull by, in pixels")
	cmd.Flags().IntVar(&sim.steps, "steps", 6, "Moves used to reach the pull")
	cmd.Flags().BoolVar(&sim.useWheel, "nested", false, "Pull with nested scroll deltas instead of touch events")
	cmd.Flags().DurationVar(&sim.hold, "hold", 500*time.Millisecond, "How long the refresh runs before it is stopped")
	cmd.Flags().IntVar(&sim.every, "every", 2, "Print every n-th frame")
	cmd.Flags().IntVar(&sim.frames, "frames", 200, "Maximum frames to step")
	cmd.Flags().BoolVar(&sim.realtime, "realtime", false, "Pace frames on the wall clock")
	return cmd
}

func (s simulation) run(ctx context.Context, out io.Writer, cfg swiperefresh.Config) error {
	if s.steps < 1 || s.every < 1 {
		return fmt.Errorf("--steps and --every must be at least 1")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var clock clockz.Clock = clockz.RealClock
	var fake animation.FakeClock
	if !s.realtime {
		fake = clockz.NewFakeClock()
		clock = fake
	}
	ind := &traceIndicator{BaseIndicator: swiperefresh.NewBaseIndicator(0)}
	var refreshedAt time.Time

	layout, err := swiperefresh.New(ind,
		swiperefresh.WithConfig(cfg),
		swiperefresh.WithClock(clock),
		swiperefresh.WithContent(stillContent{}),
		swiperefresh.WithLogger(log.New(out, "swiperefresh: ", 0)),
		swiperefresh.WithOnRefresh(func() {
			refreshedAt = clock.Now()
			ind.events = append(ind.events, "refresh")
		}),
	)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "frame\tms\tphase\ttop\tscale\trotation\tevents")
	start := clock.Now()
	frame := 0
	row := func() {
		sx, _ := ind.Scale()
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%.2f\t%.0f\t%v\n",
			frame, clock.Now().Sub(start).Milliseconds(), layout.Phase(), ind.Top(), sx, ind.Rotation(), ind.events)
		ind.events = ind.events[:0]
	}

	if s.useWheel {
		s.pullNested(layout)
	} else if err := s.pullTouch(layout, cfg.TouchSlop()); err != nil {
		return err
	}
	row()
	if s.useWheel {
		layout.StopNestedScroll(nested.TypeTouch)
	} else if err := layout.EndDrag(s.releaseY(cfg.TouchSlop(), cfg.Gesture.DragRate)); err != nil {
		return err
	}
	row()

	interval := time.Duration(cfg.Animation.FrameMS) * time.Millisecond
	registry := layout.Registry()
	step := func(now time.Time) bool {
		frame++
		if !refreshedAt.IsZero() && layout.IsRefreshing() && now.Sub(refreshedAt) >= s.hold {
			layout.SetRefreshing(false)
			ind.events = append(ind.events, "stop")
		}
		if frame%s.every == 0 || len(ind.events) > 0 {
			row()
		}
		return frame < s.frames && (registry.HasFinite() || layout.IsRefreshing())
	}

	if s.realtime {
		err := animation.NewDriver(registry, interval).Run(ctx, step)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else {
		for {
			animation.Step(fake, registry, interval, 1)
			if !step(fake.Now()) {
				break
			}
		}
	}
	return tw.Flush()
}

func (s simulation) releaseY(slop, dragRate float64) float64 {
	return slop + s.pull/dragRate
}

func (s simulation) pullTouch(l *swiperefresh.Layout, slop float64) error {
	if err := l.BeginDrag(0); err != nil {
		return err
	}
	end := s.releaseY(slop, l.Config().Gesture.DragRate)
	for i := 1; i <= s.steps; i++ {
		if err := l.Drag(end * float64(i) / float64(s.steps)); err != nil {
			return err
		}
	}
	return nil
}

func (s simulation) pullNested(l *swiperefresh.Layout) {
	if !l.StartNestedScroll(nested.AxisVertical, nested.TypeTouch) {
		return
	}
	l.NestedScrollAccepted(nested.AxisVertical, nested.TypeTouch)
	per := int(s.pull) / s.steps
	for i := 0; i < s.steps; i++ {
		var consumed nested.Delta
		l.NestedScroll(0, 0, 0, -per, nested.TypeTouch, &consumed)
	}
}
