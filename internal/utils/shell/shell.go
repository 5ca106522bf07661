package shell

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/boostorg/release-publisher/internal/utils/logger"
)

// Result captures the outcome of one external command invocation. The
// pipeline deliberately treats delegated-tool failures as non-fatal, so
// callers inspect and log the result instead of aborting on it.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Options controls how a command is run.
type Options struct {
	// Dir is the working directory for the command; empty means inherit.
	Dir string
	// Env holds extra KEY=VALUE entries appended to the host environment.
	Env []string
}

// Runner executes external commands. The host implementation shells out;
// tests substitute a fake to observe invocations without side effects.
type Runner interface {
	Run(cmdStr string, opts Options) (Result, error)
	CommandExists(name string) bool
}

// HostRunner runs commands through the system shell.
type HostRunner struct{}

// NewHostRunner returns a Runner backed by the local shell.
func NewHostRunner() *HostRunner {
	return &HostRunner{}
}

// getShell returns the preferred shell, falling back to /bin/sh if bash is
// not available.
func getShell() string {
	shells := []string{"/bin/bash", "/usr/bin/bash", "/bin/sh"}
	for _, shell := range shells {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}

// CommandExists checks if a command is resolvable on the current PATH.
func (r *HostRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run executes cmdStr via `sh -c` and returns the captured streams and exit
// code. A non-zero exit is reported both in the Result and as an error so
// call sites can decide whether it is fatal.
func (r *HostRunner) Run(cmdStr string, opts Options) (Result, error) {
	log := logger.Logger()
	log.Debugf("Exec: [%s]", cmdStr)

	cmd := exec.Command(getShell(), "-c", cmdStr)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
		if s := strings.TrimSpace(res.Stderr); s != "" {
			log.Debugf(s)
		}
		return res, fmt.Errorf("failed to exec %s: %w", cmdStr, err)
	}

	if s := strings.TrimSpace(res.Stdout); s != "" {
		log.Debugf(s)
	}
	return res, nil
}
