package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

var ErrAborted = errors.New("setup aborted")

type SetupValues struct {
	Network  string
	Password string
}

func setupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("qc setup").
				Description("Stored in your system keychain."),
			huh.NewInput().
				Title("Network").
				Description("VPN network to connect to, as shown in the client").
				Value(&v.Network).
				Validate(required("network")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.Password).
				Validate(required("password")),
		),
	)
}

// RunSetup prompts for both credential fields. v carries the current values
// in and the entered values out. The password is never pre-filled.
func RunSetup(v *SetupValues, accessible bool) error {
	v.Password = ""
	err := setupForm(v).WithAccessible(accessible).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	if err != nil {
		return fmt.Errorf("setup form: %w", err)
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
