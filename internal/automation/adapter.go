package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"qc/internal/models"
	"qc/internal/result"
)

// Adapter builds and executes the connect script for one VPN client.
type Adapter struct {
	Application string
	Runner      Runner
	// Timeout bounds a single Execute. Zero waits until the script finishes.
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewAdapter(cfg models.Config, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		Application: cfg.Application,
		Runner:      NewOsascriptRunner(cfg.Osascript),
		Timeout:     cfg.Timeout,
		Logger:      logger.Named("automation"),
	}
}

func (a *Adapter) Build(password, network string) result.Result[Script] {
	app := a.Application
	if strings.TrimSpace(app) == "" {
		app = models.DefaultApplication
	}
	return Build(app, password, network)
}

// Execute runs script and maps the backend outcome to a Signal.
func (a *Adapter) Execute(ctx context.Context, script Script) result.Result[models.Signal] {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	a.logger().Debug("running script", zap.Stringer("script", script))
	start := time.Now()
	out, err := a.Runner.Run(ctx, script.Source)
	a.logger().Debug("script finished", zap.Duration("elapsed", time.Since(start)), zap.Bool("failed", err != nil))
	if err != nil {
		failure := toFailure(err)
		failure.Message = models.Redact(failure.Message, script.secret)
		failure.Output = models.Redact(failure.Output, script.secret)
		return result.Fail[models.Signal](models.NewAutomationError(failure))
	}
	return ParseSignal(out)
}

func (a *Adapter) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// ParseSignal reads the script's return value.
func ParseSignal(out string) result.Result[models.Signal] {
	switch strings.ToLower(strings.TrimSpace(out)) {
	case "1", "true":
		return result.Ok(models.SignalDisconnected)
	case "0", "false":
		return result.Ok(models.SignalConnected)
	default:
		return result.Fail[models.Signal](models.NewAutomationError(&models.AutomationFailure{
			Message: fmt.Sprintf("unexpected script result %q", strings.TrimSpace(out)),
			Output:  out,
		}))
	}
}

// Interpret turns a Signal into the confirmation shown to the user.
func Interpret(s models.Signal) string {
	if s == models.SignalDisconnected {
		return "Disconnected from VPN."
	}
	return "Connected to VPN!"
}

func toFailure(err error) *models.AutomationFailure {
	var runErr *RunError
	if !errors.As(err, &runErr) {
		return &models.AutomationFailure{Message: err.Error()}
	}
	switch {
	case errors.Is(runErr.Err, context.DeadlineExceeded):
		return &models.AutomationFailure{Message: "timed out waiting for the VPN client", Output: runErr.Stderr}
	case errors.Is(runErr.Err, context.Canceled):
		return &models.AutomationFailure{Message: "interrupted", Output: runErr.Stderr}
	}
	msg, code := parseExecutionError(runErr.Stderr)
	if msg == "" {
		msg = runErr.Error()
	}
	return &models.AutomationFailure{Message: msg, Code: code, Output: runErr.Stderr}
}
