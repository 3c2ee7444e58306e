package automation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Runner hands a script to the automation backend and blocks until it finishes.
type Runner interface {
	Run(ctx context.Context, source string) (string, error)
}

// RunError is returned by a Runner when the backend reported a failure.
type RunError struct {
	Stderr   string
	ExitCode int
	Err      error
}

func (e *RunError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("osascript exited with %d: %s", e.ExitCode, msg)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// OsascriptRunner pipes the script into `osascript -`.
type OsascriptRunner struct {
	Path string
}

func NewOsascriptRunner(path string) *OsascriptRunner {
	return &OsascriptRunner{Path: path}
}

func (r *OsascriptRunner) Run(ctx context.Context, source string) (string, error) {
	path := strings.TrimSpace(r.Path)
	if path == "" {
		path = "osascript"
	}
	cmd := exec.CommandContext(ctx, path, "-")
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return stdout.String(), &RunError{Stderr: stderr.String(), ExitCode: code, Err: err}
	}
	return stdout.String(), nil
}

// osascript reports errors as "<n>:<m>: execution error: <message> (<code>)".
var executionErrorRE = regexp.MustCompile(`execution error: (.*) \((-?\d+)\)\s*$`)

func parseExecutionError(stderr string) (string, int) {
	stderr = strings.TrimSpace(stderr)
	m := executionErrorRE.FindStringSubmatch(stderr)
	if m == nil {
		return stderr, 0
	}
	code, err := strconv.Atoi(m[2])
	if err != nil {
		return m[1], 0
	}
	return m[1], code
}
