package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/boostorg/release-publisher/internal/publish"
)

// stubPipeline replaces the real pipeline and records the parsed options.
func stubPipeline(t *testing.T) *publish.Options {
	t.Helper()
	var got publish.Options
	orig := runPipeline
	runPipeline = func(opts publish.Options) error {
		got = opts
		return nil
	}
	t.Cleanup(func() { runPipeline = orig })
	return &got
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRequiresExactlyOneVersionArgument(t *testing.T) {
	stubPipeline(t)

	if out, err := execute(t); err == nil {
		t.Errorf("expected error with no arguments, output:\n%s", out)
	} else if out == "" {
		t.Errorf("expected usage text with no arguments")
	}

	if out, err := execute(t, "1_76_0", "1_77_0"); err == nil {
		t.Errorf("expected error with two arguments, output:\n%s", out)
	} else if !strings.Contains(out, "Usage") {
		t.Errorf("expected usage text, got:\n%s", out)
	}
}

func TestParsesVersionAndFlags(t *testing.T) {
	got := stubPipeline(t)

	if _, err := execute(t, "1_76_0", "-b", "4", "-r", "2", "-p", "-n"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if got.Version != "1_76_0" {
		t.Errorf("Version = %q, want 1_76_0", got.Version)
	}
	if got.Beta == nil || *got.Beta != 4 {
		t.Errorf("Beta = %v, want 4", got.Beta)
	}
	if got.RC == nil || *got.RC != 2 {
		t.Errorf("RC = %v, want 2", got.RC)
	}
	if !got.Progress || !got.DryRun {
		t.Errorf("Progress/DryRun = %v/%v, want true/true", got.Progress, got.DryRun)
	}
}

func TestModifiersUnsetByDefault(t *testing.T) {
	got := stubPipeline(t)

	if _, err := execute(t, "1_76_0"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got.Beta != nil || got.RC != nil {
		t.Errorf("Beta/RC = %v/%v, want both unset", got.Beta, got.RC)
	}
	if got.Progress || got.DryRun {
		t.Errorf("Progress/DryRun = %v/%v, want both false", got.Progress, got.DryRun)
	}
}
