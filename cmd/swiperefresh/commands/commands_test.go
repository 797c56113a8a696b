package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/agiangrant/swiperefresh"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "swiperefresh", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.AddCommand(cmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{cmd.Name()}, args...))
	err := root.Execute()
	return out.String(), err
}

func testConfigFile(t *testing.T) string {
	t.Helper()
	cfg := swiperefresh.DefaultConfig()
	cfg.Gesture.TouchSlopDP = 8
	data, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "swiperefresh.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, NewConfigCmd())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg, err := swiperefresh.ParseConfig([]byte(out))
	if err != nil {
		t.Fatalf("printed config does not parse: %v\n%s", err, out)
	}
	if cfg.Gesture.DragRate != swiperefresh.DefaultDragRate {
		t.Errorf("DragRate = %v", cfg.Gesture.DragRate)
	}
}

func TestConfigCmdBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("density = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, NewConfigCmd(), "--config", path); err == nil {
		t.Error("config accepted an invalid file")
	}
}

func TestSimulateCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantRefresh bool
	}{
		{"touch past trigger", []string{"--pull", "120"}, true},
		{"touch short", []string{"--pull", "30"}, false},
		{"nested past trigger", []string{"--pull", "120", "--nested"}, true},
		{"realtime short", []string{"--pull", "30", "--realtime", "--frames", "30"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", testConfigFile(t)}, tt.args...)
			out, err := execute(t, NewSimulateCmd(), args...)
			if err != nil {
				t.Fatalf("simulate: %v\n%s", err, out)
			}
			if !strings.Contains(out, "frame") {
				t.Errorf("no trace header:\n%s", out)
			}
			if got := strings.Contains(out, "refresh]"); got != tt.wantRefresh {
				t.Errorf("refresh in trace = %v, want %v:\n%s", got, tt.wantRefresh, out)
			}
		})
	}
}

func TestSimulateRejectsBadSteps(t *testing.T) {
	if _, err := execute(t, NewSimulateCmd(), "--steps", "0"); err == nil {
		t.Error("simulate accepted --steps 0")
	}
}
