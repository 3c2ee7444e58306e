package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qc/internal/automation"
	"qc/internal/config"
	"qc/internal/credentials"
	"qc/internal/models"
	"qc/internal/pipeline"
	"qc/internal/result"
	"qc/internal/tui"
	"qc/internal/ui"
)

// app is built once per invocation by the root command's PersistentPreRunE.
type app struct {
	env      *environment
	cfg      models.Config
	logger   *zap.Logger
	store    *credentials.SecureStore
	pipeline *pipeline.Pipeline
}

type rootFlags struct {
	configPath string
	verbose    bool
	plain      bool
	pwd        string
}

func run(ctx context.Context, args []string, env *environment) int {
	a := &app{env: env}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(env.stdin)
	root.SetOut(env.stdout)
	root.SetErr(env.stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err == nil {
		return 0
	}
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(env.stderr, ui.Warn.Render("Setup aborted, nothing saved."))
		return 1
	}
	fmt.Fprintln(env.stderr, ui.Failure(err))
	fmt.Fprintln(env.stderr, ui.Hint.Render(usageLine(cmd)))
	return 1
}

func usageLine(cmd *cobra.Command) string {
	if cmd == nil {
		return "Run 'qc --help' for usage."
	}
	return fmt.Sprintf("Usage: %s\nRun '%s --help' for more.", cmd.UseLine(), cmd.CommandPath())
}

func newRootCmd(a *app) *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:   "qc",
		Short: "Connect to or disconnect from the VPN with stored credentials",
		Long: `qc keeps your VPN password and network in the system keychain and drives
the VPN client to connect or disconnect.

Run without arguments to toggle the connection.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(flags)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("pwd") {
				if err := a.requireStorage(); err != nil {
					return err
				}
				return a.print(a.pipeline.UpdatePassword(pipeline.Optional(flags.pwd)))
			}
			return a.connect(cmd.Context(), flags.plain)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "absolute path to config file (default: $QC_CONFIG or user config dir)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging on stderr")
	root.PersistentFlags().BoolVar(&flags.plain, "plain", false, "disable the spinner and interactive prompts")
	root.Flags().StringVar(&flags.pwd, "pwd", "", "set a new password (same as qc password)")
	_ = root.Flags().MarkDeprecated("pwd", "use 'qc password' instead")

	root.AddCommand(
		newConnectCmd(a, &flags),
		newPasswordCmd(a),
		newNetworkCmd(a),
		newSetupCmd(a, &flags),
		newClearCmd(a),
		newConfigCmd(a, &flags),
	)
	return root
}

func (a *app) init(flags rootFlags) error {
	newLogger := a.env.logger
	if newLogger == nil {
		return fmt.Errorf("no logger configured")
	}
	logger, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	path, err := config.ResolvePath(flags.configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	cfg.ConfigPath = path
	cfg.Verbose = flags.verbose
	a.cfg = cfg

	backend, err := a.env.backend(cfg.Backend)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	adapter := automation.NewAdapter(cfg, logger)
	adapter.Runner = a.env.runner(cfg)
	a.store = credentials.NewSecureStore(cfg.Identifier, backend, logger)
	a.pipeline = pipeline.New(a.store, adapter, logger)
	logger.Debug("initialized",
		zap.String("config", path),
		zap.String("backend", string(cfg.Backend)),
		zap.String("identifier", cfg.Identifier))
	return nil
}

func (a *app) connect(ctx context.Context, plain bool) error {
	if plain || !a.env.isTerminal() {
		return a.print(a.pipeline.Connect(ctx))
	}
	res, err := tui.RunWithSpinner(ctx, a.env.stdin, a.env.stdout, "Talking to "+a.cfg.Application+"…", a.pipeline.Connect)
	if err != nil {
		return err
	}
	return a.print(res)
}

// print writes a confirmation to stdout, or hands the failure back to run.
func (a *app) print(res result.Result[string]) error {
	return result.Match(res,
		func(msg string) error {
			fmt.Fprintln(a.env.stdout, ui.Outcome(msg))
			return nil
		},
		func(e *models.Error) error { return e },
	)
}

// requireStorage fails before any prompt or write when the backend cannot be used.
func (a *app) requireStorage() error {
	if err := a.store.Available(); err != nil {
		return models.NewStorageError(err)
	}
	return nil
}
