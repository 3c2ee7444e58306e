package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"qc/internal/config"
	"qc/internal/pipeline"
	"qc/internal/tui"
	"qc/internal/ui"
)

func newConnectCmd(a *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect, or disconnect when already connected (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect(cmd.Context(), flags.plain)
		},
	}
}

func newPasswordCmd(a *app) *cobra.Command {
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   "password [password]",
		Short: "Store a new VPN password",
		Example: `  qc password 's3cret'
  pass show vpn | qc password --stdin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireStorage(); err != nil {
				return err
			}
			raw, err := argOrStdin(args, fromStdin, a.env.stdin)
			if err != nil {
				return err
			}
			return a.print(a.pipeline.UpdatePassword(raw))
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the password from the first line of stdin")
	return cmd
}

func newNetworkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "network <name>",
		Short:   "Store the VPN network to connect to",
		Example: `  qc network vpn.example.com`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireStorage(); err != nil {
				return err
			}
			raw, err := argOrStdin(args, false, nil)
			if err != nil {
				return err
			}
			return a.print(a.pipeline.UpdateNetwork(raw))
		},
	}
}

func newSetupCmd(a *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively store the network and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireStorage(); err != nil {
				return err
			}
			values := &tui.SetupValues{}
			if network, ok := a.store.Network(); ok {
				values.Network = network
			}
			accessible := flags.plain || !a.env.isTerminal()
			if err := tui.RunSetup(values, accessible); err != nil {
				return err
			}
			res := a.pipeline.Setup(pipeline.Optional(values.Password), pipeline.Optional(values.Network))
			return a.print(res)
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored password and network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(a.pipeline.Clear())
		},
	}
}

func newConfigCmd(a *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the qc config file",
		// The config file may be broken; do not load it.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ResolvePath(flags.configPath)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintln(a.env.stdout, ui.Outcome("Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ResolvePath(flags.configPath)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			fmt.Fprintln(a.env.stdout, path)
			return nil
		},
	}
	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

// argOrStdin returns the positional value, or the first stdin line when
// fromStdin is set. Blank input is reported as absent.
func argOrStdin(args []string, fromStdin bool, stdin io.Reader) (*string, error) {
	if fromStdin {
		if len(args) > 0 {
			return nil, errors.New("pass the value as an argument or with --stdin, not both")
		}
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return pipeline.Optional(strings.TrimRight(line, "\r\n")), nil
	}
	if len(args) == 0 {
		return nil, nil
	}
	return pipeline.Optional(args[0]), nil
}
