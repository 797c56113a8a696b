// Package swiperefresh implements a pull-to-refresh controller.
//
// A Layout sits between a scrollable Content and the container above it. It
// watches vertical drags, either as raw touch events or as nested scroll
// deltas handed up by the content, moves a pluggable Indicator along a
// damped rubber-band curve, and calls the refresh callback once per pull
// that is released past the trigger distance.
//
// All methods must be called from one goroutine, the same one that ticks
// the animation registry.
package swiperefresh

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/agiangrant/swiperefresh/animation"
	"github.com/agiangrant/swiperefresh/gesture"
	"github.com/agiangrant/swiperefresh/nested"
)

const (
	sourceGesture = "gesture"
	sourceNested  = "nested"
	sourceAPI     = "api"
)

// nestedSession is the overscroll handed to the layout by a nested
// scrolling descendant between accept and stop.
type nestedSession struct {
	inProgress      bool
	totalUnconsumed float64
}

type dispatchTarget uint8

const (
	dispatchNone dispatchTarget = iota
	dispatchChild
	dispatchSelf
	dispatchDropped
)

// Layout is the pull-to-refresh controller.
type Layout struct {
	id     string
	ctx    context.Context
	logger Logger
	cfg    Config

	ind           Indicator
	content       Content
	parent        InterceptParent
	onRefresh     func()
	childScrollUp ChildScrollUpFunc

	enabled        bool
	scale          bool
	legacyDisallow bool
	dragRate       float64
	circleDiameter int
	geom           Geometry

	visible    bool
	scaleValue float64

	refreshing       bool
	notify           bool
	returningToStart bool

	tracker           *gesture.Tracker
	dispatch          dispatchTarget
	disallowIntercept bool

	nested       nestedSession
	nestedParent nested.ParentHelper
	nestedChild  *nested.ChildHelper
	parentOffset nested.Delta

	registry *animation.Registry
	phases   *phaseController
}

var (
	_ nested.Parent     = (*Layout)(nil)
	_ nested.Scrollable = (*Layout)(nil)
)

// New creates a layout around ind.
func New(ind Indicator, opts ...Option) (*Layout, error) {
	if ind == nil {
		return nil, &ConfigurationError{Field: "indicator", Err: ErrNoIndicator}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := DefaultConfig()
	if o.config != nil {
		cfg = *o.config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Layout{
		id:            uuid.NewString(),
		ctx:           o.ctx,
		logger:        o.logger,
		ind:           ind,
		content:       o.content,
		parent:        o.parent,
		onRefresh:     o.onRefresh,
		childScrollUp: o.childScrollUp,
		registry:      o.registry,
		scaleValue:    1,
	}
	if l.ctx == nil {
		l.ctx = context.Background()
	}
	if l.logger == nil {
		l.logger = log.New(log.Writer(), "swiperefresh: ", log.Flags())
	}
	if l.registry == nil {
		l.registry = animation.NewRegistry(o.clock)
	}

	l.tracker = gesture.NewTracker(0)
	l.tracker.SetLogger(l.logger)
	l.nestedChild = nested.NewChildHelper(o.ancestors, o.locate)
	l.phases = newPhaseController(l, l.registry, timings{})
	l.configure(cfg)

	return l, nil
}

// NewWithFactory creates a layout with an indicator built by factory.
func NewWithFactory(factory func() (Indicator, error), opts ...Option) (*Layout, error) {
	if factory == nil {
		return nil, &ConfigurationError{Field: "indicator", Err: ErrNoIndicator}
	}
	ind, err := factory()
	if err != nil {
		return nil, &ConfigurationError{Field: "indicator", Err: fmt.Errorf("%w: %w", ErrNoIndicator, err)}
	}
	return New(ind, opts...)
}

// configure applies cfg and puts the indicator at rest.
func (l *Layout) configure(cfg Config) {
	l.cfg = cfg
	l.enabled = cfg.Enabled
	l.scale = cfg.Indicator.Scale
	l.legacyDisallow = cfg.Gesture.LegacyRequestDisallowIntercept
	l.dragRate = cfg.Gesture.DragRate
	l.circleDiameter = cfg.CircleDiameter()
	l.geom = cfg.Geometry()
	l.tracker.SetSlop(cfg.TouchSlop())
	l.nestedChild.SetEnabled(cfg.Gesture.NestedScrolling)
	l.phases.timings = cfg.timings()

	if cfg.Indicator.BackgroundColor != "" {
		l.SetProgressBackgroundColor(cfg.Indicator.BackgroundColor)
	}
	l.hardReset()
}

// ApplyConfig replaces the configuration. The indicator returns to rest and
// any refresh in progress is dropped without a callback.
func (l *Layout) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	l.configure(cfg)
	return nil
}

// ============================================================================
// Accessors
// ============================================================================

// ID returns the layout's unique identifier, carried on every signal.
func (l *Layout) ID() string { return l.id }

// Indicator returns the progress indicator.
func (l *Layout) Indicator() Indicator { return l.ind }

// Registry returns the animation registry the host must tick.
func (l *Layout) Registry() *animation.Registry { return l.registry }

// Config returns the configuration last applied.
func (l *Layout) Config() Config { return l.cfg }

// Geometry returns a copy of the indicator geometry.
func (l *Layout) Geometry() Geometry { return l.geom }

// Phase returns the running animation phase.
func (l *Layout) Phase() Phase { return l.phases.phase }

// CurrentOffset returns the indicator top as of the last applied offset.
func (l *Layout) CurrentOffset() int { return l.geom.CurrentOffset }

// Rotating reports whether the rotation loop is running.
func (l *Layout) Rotating() bool { return l.phases.rotating() }

// Dragging reports whether a touch drag is in progress.
func (l *Layout) Dragging() bool { return l.tracker.Dragging() }

// NestedScrollInProgress reports whether a nested scroll session is open.
func (l *Layout) NestedScrollInProgress() bool { return l.nested.inProgress }

// IsRefreshing reports whether the layout is refreshing.
func (l *Layout) IsRefreshing() bool { return l.refreshing }

// IsEnabled reports whether gestures are accepted.
func (l *Layout) IsEnabled() bool { return l.enabled }

// SetContent attaches the scrollable content.
func (l *Layout) SetContent(c Content) { l.content = c }

// Content returns the attached content, or nil.
func (l *Layout) Content() Content { return l.content }

// SetOnRefresh sets the callback run when a pull settles.
func (l *Layout) SetOnRefresh(fn func()) { l.onRefresh = fn }

// SetChildScrollUpFunc overrides content scroll detection. Nil restores
// Content.CanScrollUp.
func (l *Layout) SetChildScrollUpFunc(fn ChildScrollUpFunc) { l.childScrollUp = fn }

// CanChildScrollUp reports whether the content can scroll further up.
func (l *Layout) CanChildScrollUp() bool {
	if l.childScrollUp != nil {
		return l.childScrollUp(l, l.content)
	}
	if l.content == nil {
		return false
	}
	return l.content.CanScrollUp()
}

// ============================================================================
// Configuration Surface
// ============================================================================

// SetEnabled turns gesture handling on or off. Disabling returns the
// indicator to rest immediately and ends any refresh.
func (l *Layout) SetEnabled(enabled bool) {
	l.enabled = enabled
	if !enabled {
		l.hardReset()
	}
}

// SetProgressViewOffset sets scale mode and the start and end offsets of
// the indicator. The start becomes a custom start and the layout resets.
func (l *Layout) SetProgressViewOffset(scale bool, start, end int) {
	l.scale = scale
	l.geom.OriginalOffset = start
	l.geom.EndOffset = end
	l.geom.UsingCustomStart = true
	l.hardReset()
}

// SetProgressViewEndTarget sets scale mode and the refreshing offset.
func (l *Layout) SetProgressViewEndTarget(scale bool, end int) {
	l.geom.EndOffset = end
	l.scale = scale
}

// ProgressViewStartOffset returns the resting offset.
func (l *Layout) ProgressViewStartOffset() int { return l.geom.OriginalOffset }

// ProgressViewEndOffset returns the refreshing offset.
func (l *Layout) ProgressViewEndOffset() int { return l.geom.EndOffset }

// ProgressCircleDiameter returns the indicator diameter in pixels.
func (l *Layout) ProgressCircleDiameter() int { return l.circleDiameter }

// SetSlingshotDistance overrides the slingshot distance. Values of zero or
// less derive it from the offsets.
func (l *Layout) SetSlingshotDistance(px int) {
	l.geom.CustomSlingshotDistance = px
}

// SetDistanceToTriggerSync sets the overscroll that arms a refresh.
func (l *Layout) SetDistanceToTriggerSync(px int) {
	l.geom.TotalDragDistance = float64(px)
}

// SetProgressBackgroundColor sets the indicator background when it
// supports one.
func (l *Layout) SetProgressBackgroundColor(color string) {
	if bc, ok := l.ind.(BackgroundColorer); ok {
		bc.SetBackgroundColor(color)
	}
}

// SetLegacyRequestDisallowInterceptTouchEventEnabled makes the layout drop
// disallow-intercept requests from content that does not nested scroll,
// instead of forwarding them to its parent.
func (l *Layout) SetLegacyRequestDisallowInterceptTouchEventEnabled(enabled bool) {
	l.legacyDisallow = enabled
}

// CanRequestInterceptBeConfined reports whether a disallow-intercept request
// from the content stops at this layout.
func (l *Layout) CanRequestInterceptBeConfined() bool {
	return l.legacyDisallow && l.content != nil && !nested.Enabled(l.content)
}

// RequestDisallowInterceptTouchEvent is called by the content to keep the
// layout and its ancestors from stealing the touch sequence. Content that
// does not nested scroll cannot stop the layout; its request is forwarded
// to the parent, or dropped in legacy mode.
func (l *Layout) RequestDisallowInterceptTouchEvent(disallow bool) {
	if l.content != nil && !nested.Enabled(l.content) {
		if l.legacyDisallow {
			return
		}
		if l.parent != nil {
			l.parent.RequestDisallowInterceptTouchEvent(disallow)
		}
		return
	}
	if l.disallowIntercept == disallow {
		return
	}
	l.disallowIntercept = disallow
	if l.parent != nil {
		l.parent.RequestDisallowInterceptTouchEvent(disallow)
	}
}

// ============================================================================
// Refresh State
// ============================================================================

// SetRefreshing starts or stops a refresh from code. Starting shows the
// indicator at its refreshing position and scales it in; the refresh
// callback is not called. Stopping scales it out. Setting the current
// value does nothing.
func (l *Layout) SetRefreshing(refreshing bool) error {
	if l.content == nil {
		return ErrNotReady
	}
	if refreshing && !l.refreshing {
		l.refreshing = true
		l.applyOffset(l.geom.RefreshTarget() - l.geom.CurrentOffset)
		l.notify = false
		l.emitStarted(sourceAPI)
		l.phases.startScaleUp(completeTrigger, false)
		return nil
	}
	l.setRefreshingNotify(refreshing, false, sourceAPI)
	return nil
}

func (l *Layout) setRefreshingNotify(refreshing, notify bool, source string) {
	if l.refreshing == refreshing {
		return
	}
	l.notify = notify
	l.refreshing = refreshing
	if refreshing {
		l.emitStarted(source)
		l.phases.startTrigger(l.geom.CurrentOffset, notify)
		return
	}
	l.emitStopped(source)
	l.phases.startScaleDown(completeSettle)
}

// onSettle runs when a settle or scale-down phase completes.
func (l *Layout) onSettle(notify bool) {
	if !l.refreshing {
		l.reset()
		return
	}
	l.geom.CurrentOffset = l.ind.Top()
	l.emitSettled()
	if notify && l.onRefresh != nil {
		l.onRefresh()
	}
}

// Detach returns the layout to rest when its host goes away.
func (l *Layout) Detach() {
	l.hardReset()
}

// ============================================================================
// Offsets
// ============================================================================

// applyOffset moves the indicator by delta and raises it. It is the only
// place CurrentOffset changes besides settle bookkeeping.
func (l *Layout) applyOffset(delta int) {
	if fb, ok := l.ind.(FrontBringer); ok {
		fb.BringToFront()
	}
	l.ind.OffsetTop(delta)
	l.geom.CurrentOffset = l.ind.Top()
}

func (l *Layout) moveToStart(from int, p float64) {
	target := from + int(float64(l.geom.OriginalOffset-from)*p)
	l.applyOffset(target - l.ind.Top())
}

func (l *Layout) setScale(s float64) {
	l.scaleValue = s
	l.ind.SetScale(s, s)
}

func (l *Layout) setVisible(v bool) {
	l.visible = v
	l.ind.SetVisible(v)
}

// moveSpinner follows a drag or nested overscroll.
func (l *Layout) moveSpinner(overscrollTop float64) {
	off := ComputeOffset(overscrollTop, l.geom)
	if !l.visible {
		l.setVisible(true)
	}
	if l.scale {
		l.setScale(off.Progress)
	} else {
		l.setScale(1)
	}
	l.applyOffset(off.Target - l.geom.CurrentOffset)
}

// finishSpinner refreshes when the overscroll passed the trigger distance
// and returns the indicator otherwise.
func (l *Layout) finishSpinner(overscrollTop float64, source string) {
	if overscrollTop > l.geom.TotalDragDistance {
		l.emitTriggered(source)
		l.setRefreshingNotify(true, true, source)
		return
	}
	l.refreshing = false
	then := completeReset
	if !l.scale {
		then = completeScaleDown
	}
	l.phases.startReturnToStart(l.geom.CurrentOffset, then)
}

// reset hides the indicator at its original offset.
func (l *Layout) reset() {
	l.phases.stop()
	l.ind.ClearAnimation()
	l.setVisible(false)
	l.ind.SetBackgroundAlpha(MaxAlpha)
	if l.scale {
		l.setScale(0)
	}
	l.applyOffset(l.geom.OriginalOffset - l.ind.Top())
	l.returningToStart = false
	l.emitReset()
}

// hardReset is reset plus ending every session.
func (l *Layout) hardReset() {
	l.phases.stopRotation()
	l.ind.SetRotation(0)
	if l.refreshing {
		l.refreshing = false
		l.emitStopped(sourceAPI)
	}
	l.notify = false
	l.tracker.PointerUpOrCancel()
	l.dispatch = dispatchNone
	l.disallowIntercept = false
	if l.nested.inProgress {
		l.nestedChild.Stop(nested.TypeTouch)
	}
	l.nested = nestedSession{}
	l.reset()
}

func (l *Layout) logf(format string, args ...any) {
	l.logger.Printf(format, args...)
}
