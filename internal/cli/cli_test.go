package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/ls-trichart/internal/errors"
)

var birthFlags = []string{
	"--birth-date", "1990-01-01",
	"--birth-time", "12:00",
	"--transit-date", "2024-03-20",
	"--transit-time", "12:00",
}

// isolate keeps config files and earlier viper state out of a test.
func isolate(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

// run executes the command line and returns what it wrote to stdout.
func run(t *testing.T, tty bool, args ...string) (string, error) {
	t.Helper()
	isolate(t)

	var out, errOut bytes.Buffer
	c := New(&out, &errOut)
	c.isTerminal = func() bool { return tty }
	c.now = func() time.Time { return time.Date(2024, 3, 20, 3, 0, 0, 0, time.UTC) }

	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func chartArgs(extra ...string) []string {
	return append(append([]string{"chart"}, birthFlags...), extra...)
}

func TestChart_Text(t *testing.T) {
	out, err := run(t, false, chartArgs()...)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	for _, want := range []string{"Chart @ Tokyo (placidus, builtin)", "Natal", "Progressed", "Transit", "☉ Sun", "ASC "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestChart_JSON(t *testing.T) {
	out, err := run(t, false, chartArgs("--format", "json")...)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	var doc struct {
		Provider string            `json:"provider"`
		Layers   []json.RawMessage `json:"layers"`
		Tables   []json.RawMessage `json:"tables"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Provider != "builtin" || len(doc.Layers) != 3 || len(doc.Tables) != 3 {
		t.Errorf("provider %q, %d layers, %d tables", doc.Provider, len(doc.Layers), len(doc.Tables))
	}
}

func TestChart_SVG(t *testing.T) {
	out, err := run(t, false, chartArgs("--format", "svg", "--size", "300")...)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, `width="300"`) {
		t.Errorf("unexpected svg head: %.120s", out)
	}
	if !strings.Contains(out, "Tokyo 1990-01-01 12:00") {
		t.Error("svg missing title")
	}
}

func TestChart_Wheel(t *testing.T) {
	out, err := run(t, false, chartArgs("--format", "wheel", "--width", "61", "--height", "31")...)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 31 {
		t.Errorf("wheel has %d lines, want 31", lines)
	}
	if !strings.Contains(out, "ASC") || !strings.Contains(out, "MC") {
		t.Error("wheel missing angle labels")
	}
}

func TestChart_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", chartArgs("--format", "pdf"), errors.CodeInputFormat},
		{"bad birth time", []string{"chart", "--birth-date", "1990-01-01", "--birth-time", "25:00"}, errors.CodeInputFormat},
		{"missing birth", []string{"chart"}, errors.CodeInputFormat},
		{"unknown place", chartArgs("--place", "Atlantis"), errors.CodeUnknownPlace},
		{"bad ephemeris", chartArgs("--ephemeris", "oracle"), errors.CodeInvalidConfig},
		{"bad houses", chartArgs("--houses", "koch"), errors.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, false, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestChart_Overrides(t *testing.T) {
	t.Run("flag", func(t *testing.T) {
		out, err := run(t, false, chartArgs("--houses", "equal")...)
		if err != nil {
			t.Fatalf("chart: %v", err)
		}
		if !strings.Contains(out, "(equal, builtin)") {
			t.Errorf("house system flag ignored:\n%s", out)
		}
	})
	t.Run("env", func(t *testing.T) {
		t.Setenv("LSTRICHART_EPHEMERIS_HOUSE_SYSTEM", "whole_sign")
		out, err := run(t, false, chartArgs()...)
		if err != nil {
			t.Fatalf("chart: %v", err)
		}
		if !strings.Contains(out, "(whole_sign, builtin)") {
			t.Errorf("house system env ignored:\n%s", out)
		}
	})
	t.Run("default place", func(t *testing.T) {
		t.Setenv("LSTRICHART_CHART_DEFAULT_PLACE", "Osaka")
		out, err := run(t, false, chartArgs()...)
		if err != nil {
			t.Fatalf("chart: %v", err)
		}
		if !strings.Contains(out, "Chart @ Osaka") {
			t.Errorf("default place ignored:\n%s", out)
		}
	})
}

func TestRoot_NotATerminal(t *testing.T) {
	out, err := run(t, false, birthFlags...)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.HasPrefix(out, "Chart @ Tokyo") {
		t.Errorf("root should print the text chart, got:\n%.200s", out)
	}
}

func TestRoot_NoBirthShowsHelp(t *testing.T) {
	out, err := run(t, true)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.Contains(out, "Usage:") || !strings.Contains(out, "serve") {
		t.Errorf("expected help, got:\n%s", out)
	}
}

func TestNewServer(t *testing.T) {
	isolate(t)
	c := New(&bytes.Buffer{}, &bytes.Buffer{})
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q", c.cfg.Server.Addr)
	}
	if _, err := c.newServer(); err != nil {
		t.Errorf("newServer: %v", err)
	}
}
