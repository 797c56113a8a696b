package swiperefresh

import (
	"time"

	"github.com/agiangrant/swiperefresh/animation"
)

// Phase is the indicator animation currently running.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseScalingUp
	PhaseScalingDown
	PhaseAnimatingToTrigger
	PhaseAnimatingToStart
	PhaseScalingDownToStart
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseScalingUp:
		return "scaling-up"
	case PhaseScalingDown:
		return "scaling-down"
	case PhaseAnimatingToTrigger:
		return "animating-to-trigger"
	case PhaseAnimatingToStart:
		return "animating-to-start"
	case PhaseScalingDownToStart:
		return "scaling-down-to-start"
	default:
		return "unknown"
	}
}

// completion is what runs when a phase finishes.
type completion uint8

const (
	// completeSettle fires the refresh when still refreshing, else resets.
	completeSettle completion = iota

	// completeTrigger moves a scaled-up indicator into its settled phase.
	completeTrigger

	// completeScaleDown hides a returned indicator by scaling it out.
	completeScaleDown

	// completeReset hides the indicator at its original offset.
	completeReset
)

// phaseListener is the snapshot a phase carries to its completion.
type phaseListener struct {
	c      *phaseController
	gen    uint64
	phase  Phase
	from   int
	notify bool
	then   completion

	started bool
	ended   bool
}

func (pl *phaseListener) Phase() Phase {
	return pl.phase
}

func (pl *phaseListener) OnAnimationStart() {
	if pl.started || !pl.current() {
		return
	}
	pl.started = true
	if pl.phase == PhaseAnimatingToTrigger {
		pl.c.l.ind.OnStartSettleAnimation()
	}
}

// OnAnimationEnd runs the completion once, and only while the phase has not
// been superseded.
func (pl *phaseListener) OnAnimationEnd() {
	if pl.ended || !pl.current() {
		return
	}
	pl.ended = true
	pl.c.finish(pl)
}

func (pl *phaseListener) current() bool {
	return pl.c.listener == pl && pl.c.gen == pl.gen
}

// timings are the phase durations and easings.
type timings struct {
	scaleUp   time.Duration
	scaleDown time.Duration
	trigger   time.Duration
	toStart   time.Duration
	rotation  time.Duration

	triggerEasing animation.EasingFunc
	returnEasing  animation.EasingFunc
	scaleEasing   animation.EasingFunc
}

func (c Config) timings() timings {
	return timings{
		scaleUp:       ms(c.Animation.ScaleUpMS),
		scaleDown:     ms(c.Animation.ScaleDownMS),
		trigger:       ms(c.Animation.TriggerMS),
		toStart:       ms(c.Animation.ReturnMS),
		rotation:      ms(c.Animation.RotationMS),
		triggerEasing: animation.EasingByName(c.Animation.TriggerEasing),
		returnEasing:  animation.EasingByName(c.Animation.ReturnEasing),
		scaleEasing:   animation.EasingByName(c.Animation.ScaleEasing),
	}
}

// ============================================================================
// Phase Controller
// ============================================================================

// phaseController runs at most one phase tween and one rotation loop.
type phaseController struct {
	l        *Layout
	registry *animation.Registry
	timings  timings

	gen      uint64
	phase    Phase
	current  *animation.Animation
	listener *phaseListener
	rotation *animation.Animation
}

func newPhaseController(l *Layout, r *animation.Registry, t timings) *phaseController {
	return &phaseController{l: l, registry: r, timings: t}
}

// begin supersedes the running phase and starts a tween for it.
func (c *phaseController) begin(listener phaseListener, d time.Duration, easing animation.EasingFunc, update func(p float64)) {
	c.cancel()

	c.gen++
	pl := &listener
	pl.c = c
	pl.gen = c.gen
	c.listener = pl

	ind := c.l.ind
	ind.ClearAnimation()
	ind.SetAnimationListener(pl)
	c.setPhase(pl.phase, d)

	c.current = c.registry.Animate().
		Duration(d).
		Easing(easing).
		OnComplete(pl.OnAnimationEnd).
		Custom(update)

	pl.OnAnimationStart()
}

// cancel drops the running phase. Its completion never runs and offsets
// stay where the last frame left them. A trigger that already told the
// indicator it is settling is closed with OnEndSettleAnimation.
func (c *phaseController) cancel() {
	if c.current != nil {
		c.current.Cancel()
		c.registry.Remove(c.current.ID())
		c.current = nil
	}
	if pl := c.listener; pl != nil && pl.phase == PhaseAnimatingToTrigger && pl.started && !pl.ended {
		pl.ended = true
		c.l.ind.OnEndSettleAnimation()
	}
	c.listener = nil
}

// stop cancels the running phase and returns to PhaseNone.
func (c *phaseController) stop() {
	c.cancel()
	c.setPhase(PhaseNone, 0)
}

func (c *phaseController) finish(pl *phaseListener) {
	c.current = nil
	c.listener = nil
	c.setPhase(PhaseNone, 0)

	l := c.l
	l.ind.ClearAnimation()
	switch pl.phase {
	case PhaseAnimatingToTrigger:
		l.ind.OnEndSettleAnimation()
	case PhaseScalingDown:
		l.ind.SetRotation(0)
		c.stopRotation()
	}

	switch pl.then {
	case completeSettle:
		l.onSettle(pl.notify)
	case completeTrigger:
		c.startTrigger(l.geom.CurrentOffset, pl.notify)
	case completeScaleDown:
		c.startScaleDown(completeReset)
	case completeReset:
		l.reset()
	}
}

func (c *phaseController) setPhase(p Phase, d time.Duration) {
	if c.phase == p {
		return
	}
	old := c.phase
	c.phase = p
	c.l.emitPhase(old, p, d)
}

// ============================================================================
// Rotation
// ============================================================================

// startRotation spins the indicator from its current rotation to a full
// turn, repeating until stopped. A running loop is replaced.
func (c *phaseController) startRotation() {
	c.stopRotation()
	ind := c.l.ind
	c.rotation = c.registry.Animate().
		Duration(c.timings.rotation).
		Easing(animation.EaseLinear).
		Loop().
		Float(ind.Rotation(), 360, ind.SetRotation)
}

func (c *phaseController) stopRotation() {
	if c.rotation == nil {
		return
	}
	c.rotation.Cancel()
	c.registry.Remove(c.rotation.ID())
	c.rotation = nil
}

func (c *phaseController) rotating() bool {
	return c.rotation != nil && !c.rotation.IsCancelled()
}

// ============================================================================
// Phases
// ============================================================================

// startTrigger moves the indicator from `from` to its settled position and
// starts the rotation loop.
func (c *phaseController) startTrigger(from int, notify bool) {
	l := c.l
	listener := phaseListener{
		phase:  PhaseAnimatingToTrigger,
		from:   from,
		notify: notify,
		then:   completeSettle,
	}
	c.begin(listener, c.timings.trigger, c.timings.triggerEasing, func(p float64) {
		end := l.geom.SettleTarget()
		target := from + int(float64(end-from)*p)
		l.applyOffset(target - l.ind.Top())
	})
	c.startRotation()
}

// startScaleUp shows the indicator and grows it to full size.
func (c *phaseController) startScaleUp(then completion, notify bool) {
	l := c.l
	l.setVisible(true)
	listener := phaseListener{
		phase:  PhaseScalingUp,
		from:   l.geom.CurrentOffset,
		notify: notify,
		then:   then,
	}
	c.begin(listener, c.timings.scaleUp, c.timings.scaleEasing, l.setScale)
}

// startScaleDown shrinks the indicator to nothing. On completion the
// rotation is zeroed and the loop stopped before then runs.
func (c *phaseController) startScaleDown(then completion) {
	l := c.l
	listener := phaseListener{
		phase: PhaseScalingDown,
		from:  l.geom.CurrentOffset,
		then:  then,
	}
	c.begin(listener, c.timings.scaleDown, c.timings.scaleEasing, func(p float64) {
		l.setScale(1 - p)
	})
}

// startReturnToStart moves the indicator back to its original offset,
// shrinking it at the same time in scale mode.
func (c *phaseController) startReturnToStart(from int, then completion) {
	l := c.l
	l.returningToStart = true

	if l.scale {
		starting := l.scaleValue
		listener := phaseListener{phase: PhaseScalingDownToStart, from: from, then: then}
		c.begin(listener, c.timings.scaleDown, c.timings.scaleEasing, func(p float64) {
			l.setScale(starting - starting*p)
			l.moveToStart(from, p)
		})
		return
	}

	listener := phaseListener{phase: PhaseAnimatingToStart, from: from, then: then}
	c.begin(listener, c.timings.toStart, c.timings.returnEasing, func(p float64) {
		l.moveToStart(from, p)
	})
}
