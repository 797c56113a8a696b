package swiperefresh

import (
	"context"

	"github.com/zoobzio/clockz"

	"github.com/agiangrant/swiperefresh/animation"
	"github.com/agiangrant/swiperefresh/nested"
)

// Logger receives diagnostic messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Option configures a Layout.
type Option func(*options)

type options struct {
	config        *Config
	clock         clockz.Clock
	registry      *animation.Registry
	logger        Logger
	ctx           context.Context
	content       Content
	ancestors     func() []nested.Parent
	locate        nested.Locator
	parent        InterceptParent
	onRefresh     func()
	childScrollUp ChildScrollUpFunc
}

// WithConfig sets the layout configuration. The default is DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithClock sets the clock animations are stamped with.
// Ignored when WithRegistry is also given.
func WithClock(clock clockz.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRegistry shares an animation registry with the host's frame loop.
func WithRegistry(r *animation.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets where diagnostics go.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithContext sets the context lifecycle signals are emitted with.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithContent attaches the scrollable content at construction.
func WithContent(c Content) Option {
	return func(o *options) {
		o.content = c
	}
}

// WithNestedParents sets the nested scrolling ancestors, nearest first.
func WithNestedParents(ancestors func() []nested.Parent) Option {
	return func(o *options) {
		o.ancestors = ancestors
	}
}

// WithWindowLocator reports the layout's window position to nested
// scrolling dispatches.
func WithWindowLocator(locate nested.Locator) Option {
	return func(o *options) {
		o.locate = locate
	}
}

// WithInterceptParent sets the container above the layout.
func WithInterceptParent(p InterceptParent) Option {
	return func(o *options) {
		o.parent = p
	}
}

// WithOnRefresh sets the refresh callback.
func WithOnRefresh(fn func()) Option {
	return func(o *options) {
		o.onRefresh = fn
	}
}

// WithChildScrollUp overrides content scroll detection.
func WithChildScrollUp(fn ChildScrollUpFunc) Option {
	return func(o *options) {
		o.childScrollUp = fn
	}
}
