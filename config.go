package swiperefresh

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/swiperefresh/animation"
)

// Layout defaults in density independent pixels and milliseconds.
const (
	DefaultDragRate           = 0.5
	DefaultCircleDiameterDP   = 30
	DefaultCircleTargetDP     = 64
	DefaultSlingshotDistance  = -1
	DefaultScaleUpMS          = 400
	DefaultScaleDownMS        = 150
	DefaultAnimateToTriggerMS = 200
	DefaultAnimateToStartMS   = 200
	DefaultRotationMS         = 1500
	MaxAlpha                  = 255
)

// Config is the TOML-backed layout configuration.
type Config struct {
	Enabled bool `toml:"enabled"`

	// Density converts dp values to pixels.
	Density float64 `toml:"density"`

	Gesture   GestureConfig   `toml:"gesture"`
	Indicator IndicatorConfig `toml:"indicator"`
	Animation AnimationConfig `toml:"animation"`
}

type GestureConfig struct {
	TouchSlopDP float64 `toml:"touch_slop_dp"`
	DragRate    float64 `toml:"drag_rate"`

	// Drop disallow-intercept requests from non nested-scrolling content
	// instead of forwarding them to the parent.
	LegacyRequestDisallowIntercept bool `toml:"legacy_request_disallow_intercept"`

	// Take part in nested scrolling as a child of the layout's ancestors.
	NestedScrolling bool `toml:"nested_scrolling"`
}

type IndicatorConfig struct {
	DiameterDP int  `toml:"diameter_dp"`
	Scale      bool `toml:"scale"`

	// StartOffset in pixels. Unset means the indicator rests one diameter
	// above the top edge.
	StartOffset *int `toml:"start_offset,omitempty"`

	EndOffsetDP int `toml:"end_offset_dp"`

	// TriggerDistance in pixels. Zero means the end offset.
	TriggerDistance int `toml:"trigger_distance"`

	// SlingshotDistance in pixels. -1 derives it from the end offset.
	SlingshotDistance int `toml:"slingshot_distance"`

	BackgroundColor string `toml:"background_color"`
}

type AnimationConfig struct {
	ScaleUpMS   int `toml:"scale_up_ms"`
	ScaleDownMS int `toml:"scale_down_ms"`
	TriggerMS   int `toml:"trigger_ms"`
	ReturnMS    int `toml:"return_ms"`
	RotationMS  int `toml:"rotation_ms"`
	FrameMS     int `toml:"frame_ms"`

	TriggerEasing string `toml:"trigger_easing"`
	ReturnEasing  string `toml:"return_easing"`
	ScaleEasing   string `toml:"scale_easing"`
}

// DefaultConfig returns the stock layout configuration for the current
// platform.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Density: 1,
		Gesture: GestureConfig{
			TouchSlopDP:     DefaultTouchSlopDP(),
			DragRate:        DefaultDragRate,
			NestedScrolling: true,
		},
		Indicator: IndicatorConfig{
			DiameterDP:        DefaultCircleDiameterDP,
			EndOffsetDP:       DefaultCircleTargetDP,
			SlingshotDistance: DefaultSlingshotDistance,
		},
		Animation: AnimationConfig{
			ScaleUpMS:     DefaultScaleUpMS,
			ScaleDownMS:   DefaultScaleDownMS,
			TriggerMS:     DefaultAnimateToTriggerMS,
			ReturnMS:      DefaultAnimateToStartMS,
			RotationMS:    DefaultRotationMS,
			FrameMS:       int(animation.DefaultFrameInterval / time.Millisecond),
			TriggerEasing: "decelerate",
			ReturnEasing:  "decelerate",
			ScaleEasing:   "accelerate-decelerate",
		},
	}
}

// Validate checks ranges and easing names.
func (c Config) Validate() error {
	switch {
	case c.Density <= 0:
		return configErr("density", "must be positive, got %v", c.Density)
	case c.Gesture.TouchSlopDP < 0:
		return configErr("gesture.touch_slop_dp", "must not be negative, got %v", c.Gesture.TouchSlopDP)
	case c.Gesture.DragRate <= 0 || c.Gesture.DragRate > 1:
		return configErr("gesture.drag_rate", "must be in (0, 1], got %v", c.Gesture.DragRate)
	case c.Indicator.DiameterDP <= 0:
		return configErr("indicator.diameter_dp", "must be positive, got %d", c.Indicator.DiameterDP)
	case c.Indicator.EndOffsetDP <= 0:
		return configErr("indicator.end_offset_dp", "must be positive, got %d", c.Indicator.EndOffsetDP)
	case c.Indicator.TriggerDistance < 0:
		return configErr("indicator.trigger_distance", "must not be negative, got %d", c.Indicator.TriggerDistance)
	case c.Indicator.SlingshotDistance < DefaultSlingshotDistance:
		return configErr("indicator.slingshot_distance", "must be -1 or more, got %d", c.Indicator.SlingshotDistance)
	}

	durations := []struct {
		field string
		ms    int
	}{
		{"animation.scale_up_ms", c.Animation.ScaleUpMS},
		{"animation.scale_down_ms", c.Animation.ScaleDownMS},
		{"animation.trigger_ms", c.Animation.TriggerMS},
		{"animation.return_ms", c.Animation.ReturnMS},
		{"animation.rotation_ms", c.Animation.RotationMS},
		{"animation.frame_ms", c.Animation.FrameMS},
	}
	for _, d := range durations {
		if d.ms <= 0 {
			return configErr(d.field, "must be positive, got %d", d.ms)
		}
	}

	easings := []struct {
		field string
		name  string
	}{
		{"animation.trigger_easing", c.Animation.TriggerEasing},
		{"animation.return_easing", c.Animation.ReturnEasing},
		{"animation.scale_easing", c.Animation.ScaleEasing},
	}
	for _, e := range easings {
		if animation.EasingByName(e.name) == nil {
			return configErr(e.field, "unknown easing %q", e.name)
		}
	}
	return nil
}

// px converts density independent pixels to pixels, truncating.
func (c Config) px(dp float64) int {
	return int(dp * c.Density)
}

// TouchSlop returns the touch slop in pixels.
func (c Config) TouchSlop() float64 {
	return float64(c.px(c.Gesture.TouchSlopDP))
}

// CircleDiameter returns the indicator diameter in pixels.
func (c Config) CircleDiameter() int {
	return c.px(float64(c.Indicator.DiameterDP))
}

// Geometry derives the indicator geometry in pixels.
func (c Config) Geometry() Geometry {
	end := c.px(float64(c.Indicator.EndOffsetDP))
	g := Geometry{
		OriginalOffset:          -c.CircleDiameter(),
		EndOffset:               end,
		TotalDragDistance:       float64(end),
		CustomSlingshotDistance: c.Indicator.SlingshotDistance,
	}
	if c.Indicator.StartOffset != nil {
		g.OriginalOffset = *c.Indicator.StartOffset
		g.UsingCustomStart = true
	}
	if c.Indicator.TriggerDistance > 0 {
		g.TotalDragDistance = float64(c.Indicator.TriggerDistance)
	}
	g.CurrentOffset = g.OriginalOffset
	return g
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// ============================================================================
// Loading
// ============================================================================

// ParseConfig decodes a TOML document over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// WatchConfig reloads path whenever it is written or replaced and passes
// the result to fn until ctx ends. Editors that save by rename are handled
// by watching the parent directory. fn runs on the watcher goroutine.
func WatchConfig(ctx context.Context, path string, fn func(Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	name := filepath.Clean(path)

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				fn(LoadConfig(path))

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fn(Config{}, fmt.Errorf("watch config: %w", err))
			}
		}
	}()

	return nil
}
