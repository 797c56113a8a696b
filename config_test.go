package swiperefresh

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	doc := []byte(`
density = 2.0

[gesture]
touch_slop_dp = 4.0
drag_rate = 0.25

[indicator]
scale = true
start_offset = 12
end_offset_dp = 80

[animation]
trigger_easing = "linear"
`)

	cfg, err := ParseConfig(doc)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.TouchSlop() != 8 {
		t.Errorf("TouchSlop() = %v, want 8", cfg.TouchSlop())
	}
	if cfg.Gesture.DragRate != 0.25 {
		t.Errorf("DragRate = %v, want 0.25", cfg.Gesture.DragRate)
	}
	// Unset keys keep their defaults.
	if cfg.Animation.ScaleUpMS != DefaultScaleUpMS {
		t.Errorf("ScaleUpMS = %d, want default", cfg.Animation.ScaleUpMS)
	}

	g := cfg.Geometry()
	if !g.UsingCustomStart || g.OriginalOffset != 12 {
		t.Errorf("start = %d custom %v, want 12 custom", g.OriginalOffset, g.UsingCustomStart)
	}
	if g.EndOffset != 160 || g.TotalDragDistance != 160 {
		t.Errorf("end %d, distance %v, want 160", g.EndOffset, g.TotalDragDistance)
	}
}

func TestDefaultGeometry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Density = 1.5
	g := cfg.Geometry()

	if g.OriginalOffset != -45 {
		t.Errorf("OriginalOffset = %d, want -45", g.OriginalOffset)
	}
	if g.EndOffset != 96 {
		t.Errorf("EndOffset = %d, want 96", g.EndOffset)
	}
	if g.UsingCustomStart {
		t.Error("default geometry uses a custom start")
	}
	if g.CustomSlingshotDistance != DefaultSlingshotDistance {
		t.Errorf("CustomSlingshotDistance = %d", g.CustomSlingshotDistance)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(c *Config)
		field string
	}{
		{"density", func(c *Config) { c.Density = 0 }, "density"},
		{"slop", func(c *Config) { c.Gesture.TouchSlopDP = -1 }, "gesture.touch_slop_dp"},
		{"drag rate", func(c *Config) { c.Gesture.DragRate = 1.5 }, "gesture.drag_rate"},
		{"diameter", func(c *Config) { c.Indicator.DiameterDP = 0 }, "indicator.diameter_dp"},
		{"slingshot", func(c *Config) { c.Indicator.SlingshotDistance = -2 }, "indicator.slingshot_distance"},
		{"duration", func(c *Config) { c.Animation.TriggerMS = 0 }, "animation.trigger_ms"},
		{"easing", func(c *Config) { c.Animation.ScaleEasing = "bounce" }, "animation.scale_easing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("Validate() field = %v, want %s", err, tt.field)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig(missing) error = %v", err)
	}
	if cfg.Gesture.DragRate != DefaultDragRate {
		t.Errorf("missing file did not yield defaults")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[gesture]\ndrag_rate = 3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig(bad) error = %v, want ErrInvalidConfig", err)
	}

	garbled := filepath.Join(dir, "garbled.toml")
	if err := os.WriteFile(garbled, []byte("density = = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(garbled); err == nil {
		t.Error("LoadConfig(garbled) succeeded")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	start := 5
	cfg.Indicator.StartOffset = &start
	cfg.Indicator.BackgroundColor = "#202020"

	data, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig(Encode()) error = %v\n%s", err, data)
	}
	if got.Indicator.StartOffset == nil || *got.Indicator.StartOffset != 5 {
		t.Errorf("StartOffset lost in round trip")
	}
	if got.Indicator.BackgroundColor != "#202020" {
		t.Errorf("BackgroundColor = %q", got.Indicator.BackgroundColor)
	}
}

func TestWatchConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file watcher test in short mode")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "swiperefresh.toml")
	if err := os.WriteFile(path, []byte("density = 1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan Config, 4)
	err := WatchConfig(ctx, path, func(cfg Config, err error) {
		if err == nil {
			reloads <- cfg
		}
	})
	if err != nil {
		t.Fatalf("WatchConfig() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("density = 3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloads:
			if cfg.Density == 3 {
				return
			}
		case <-deadline:
			t.Fatal("no reload after writing the config")
		}
	}
}
