package main

import (
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"qc/internal/automation"
	"qc/internal/credentials"
	"qc/internal/logging"
	"qc/internal/models"
)

// environment carries the process I/O and the seams tests replace.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	isTerminal func() bool
	backend    func(models.BackendType) (credentials.Backend, error)
	runner     func(models.Config) automation.Runner
	logger     func(verbose bool) (*zap.Logger, error)
}

func newEnvironment() *environment {
	return &environment{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		backend: credentials.NewBackend,
		runner: func(cfg models.Config) automation.Runner {
			return automation.NewOsascriptRunner(cfg.Osascript)
		},
		logger: logging.New,
	}
}
