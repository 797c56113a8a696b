package swiperefresh

import "github.com/agiangrant/swiperefresh/gesture"

// ============================================================================
// Indicator Contract
// ============================================================================

// Indicator is the progress view the layout moves, scales and spins. The
// layout never draws; implementations render however they like.
type Indicator interface {
	SetVisible(visible bool)
	SetScale(x, y float64)
	SetRotation(degrees float64)
	Rotation() float64

	// OffsetTop moves the indicator by delta pixels.
	OffsetTop(delta int)

	// Top returns the absolute top in pixels.
	Top() int

	SetBackgroundAlpha(alpha uint8)

	// SetAnimationListener attaches the listener for the phase about to
	// start. ClearAnimation detaches it.
	SetAnimationListener(l AnimationListener)
	ClearAnimation()

	// OnStartSettleAnimation runs when the indicator starts moving to its
	// refreshing position; OnEndSettleAnimation when it arrives.
	OnStartSettleAnimation()
	OnEndSettleAnimation()
}

// FrontBringer is implemented by indicators that can be raised above the
// content. The layout raises the indicator on every offset change.
type FrontBringer interface {
	BringToFront()
}

// BackgroundColorer is implemented by indicators with a background color.
type BackgroundColorer interface {
	SetBackgroundColor(color string)
}

// AnimationListener observes one animation phase.
type AnimationListener interface {
	Phase() Phase
	OnAnimationStart()
	OnAnimationEnd()
}

// Content is the scrollable view hosted by the layout.
type Content interface {
	// CanScrollUp reports whether the content is scrolled away from its top.
	CanScrollUp() bool
}

// TouchHandler is implemented by content that consumes touch events the
// layout does not intercept.
type TouchHandler interface {
	TouchEvent(ev *gesture.MotionEvent) bool
}

// ChildScrollUpFunc overrides Content.CanScrollUp.
type ChildScrollUpFunc func(l *Layout, content Content) bool

// InterceptParent is the container above the layout. Disallow-intercept
// requests the layout does not handle itself are forwarded to it.
type InterceptParent interface {
	RequestDisallowInterceptTouchEvent(disallow bool)
}

// ============================================================================
// Base Indicator
// ============================================================================

// BaseIndicator holds indicator state and implements everything in
// Indicator except the settle hooks. Embed it and add OnStartSettleAnimation
// and OnEndSettleAnimation to get a complete Indicator.
type BaseIndicator struct {
	visible  bool
	scaleX   float64
	scaleY   float64
	rotation float64
	top      int
	alpha    uint8
	color    string
	listener AnimationListener
}

// NewBaseIndicator creates a hidden indicator at top.
func NewBaseIndicator(top int) *BaseIndicator {
	return &BaseIndicator{
		scaleX: 1,
		scaleY: 1,
		top:    top,
		alpha:  MaxAlpha,
	}
}

func (b *BaseIndicator) SetVisible(visible bool)        { b.visible = visible }
func (b *BaseIndicator) Visible() bool                  { return b.visible }
func (b *BaseIndicator) SetScale(x, y float64)          { b.scaleX, b.scaleY = x, y }
func (b *BaseIndicator) Scale() (x, y float64)          { return b.scaleX, b.scaleY }
func (b *BaseIndicator) SetRotation(degrees float64)    { b.rotation = degrees }
func (b *BaseIndicator) Rotation() float64              { return b.rotation }
func (b *BaseIndicator) OffsetTop(delta int)            { b.top += delta }
func (b *BaseIndicator) Top() int                       { return b.top }
func (b *BaseIndicator) SetBackgroundAlpha(alpha uint8) { b.alpha = alpha }
func (b *BaseIndicator) BackgroundAlpha() uint8         { return b.alpha }
func (b *BaseIndicator) SetBackgroundColor(c string)    { b.color = c }
func (b *BaseIndicator) BackgroundColor() string        { return b.color }

func (b *BaseIndicator) SetAnimationListener(l AnimationListener) {
	b.listener = l
}

func (b *BaseIndicator) ClearAnimation() {
	b.listener = nil
}

// CurrentPhase returns the phase of the attached listener, or PhaseNone.
func (b *BaseIndicator) CurrentPhase() Phase {
	if b.listener == nil {
		return PhaseNone
	}
	return b.listener.Phase()
}
