package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// runCLI executes args with a CLI logging to buf at level.
func runCLI(t *testing.T, buf *bytes.Buffer, level log.Level, args ...string) error {
	t.Helper()
	c := New(buf, level)
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func renderArgs(t *testing.T, extra ...string) []string {
	t.Helper()
	args := []string{"render", "--no-cache", "--rows", "2", "--cols", "2",
		"--width", "80", "--height", "80", "-o", filepath.Join(t.TempDir(), "out")}
	return append(args, extra...)
}

func TestRenderLogsPipelineStages(t *testing.T) {
	captureStdout(t)
	tests := []struct {
		name  string
		level log.Level
		want  []string
		skip  []string
	}{
		{
			name:  "info",
			level: LogInfo,
			want:  []string{"computed layout", "rendered outputs", "Done ("},
		},
		{
			name:  "warn hides progress",
			level: log.WarnLevel,
			skip:  []string{"computed layout", "rendered outputs", "Done ("},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := runCLI(t, &buf, tt.level, renderArgs(t)...); err != nil {
				t.Fatalf("render error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("log %q missing %q", buf.String(), w)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(buf.String(), s) {
					t.Errorf("log %q should not contain %q", buf.String(), s)
				}
			}
		})
	}
}

func TestRenderWarnsOnClamp(t *testing.T) {
	captureStdout(t)
	var buf bytes.Buffer
	if err := runCLI(t, &buf, log.WarnLevel, renderArgs(t, "--gap", "500")...); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(buf.String(), "layout config clamped") {
		t.Errorf("log %q missing clamp warning", buf.String())
	}
}

func TestVerboseReportsDisabledCache(t *testing.T) {
	// A regular file where the cache directory should go makes it unusable.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CACHE_HOME", blocker)
	captureStdout(t)

	args := []string{"layout", "--rows", "2", "--cols", "2", "-o", filepath.Join(t.TempDir(), "l.json")}
	for _, tt := range []struct {
		level log.Level
		want  bool
	}{
		{LogInfo, false},
		{LogDebug, true},
	} {
		var buf bytes.Buffer
		if err := runCLI(t, &buf, tt.level, args...); err != nil {
			t.Fatalf("layout error = %v", err)
		}
		if got := strings.Contains(buf.String(), "cache disabled"); got != tt.want {
			t.Errorf("level %v: cache disabled logged = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, LogInfo)

	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext() did not return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Rendered 2 files")
	if !strings.Contains(buf.String(), "Rendered 2 files (") {
		t.Errorf("progress output %q missing message with duration", buf.String())
	}
}
