package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"qc/internal/models"
	"qc/internal/result"
)

func TestProgressModelDone(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := newProgressModel("Connecting", nil, nil)
	updated, cmd := m.Update(doneMsg{res: result.Ok("Connected to VPN!")})
	pm := updated.(progressModel)
	if !pm.done {
		t.Fatalf("expected model to be done")
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if pm.View() != "" {
		t.Fatalf("expected empty view when done, got %q", pm.View())
	}
}

func TestProgressModelCtrlCCancelsOnce(t *testing.T) {
	defer goleak.VerifyNone(t)
	cancels := 0
	m := newProgressModel("Connecting", func() { cancels++ }, nil)
	var model tea.Model = m
	for i := 0; i < 2; i++ {
		var cmd tea.Cmd
		model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd != nil {
			t.Fatalf("ctrl+c must not quit before the run returns")
		}
	}
	if cancels != 1 {
		t.Fatalf("expected one cancel, got %d", cancels)
	}
	if !strings.Contains(model.View(), "Stopping") {
		t.Fatalf("expected stopping view, got %q", model.View())
	}
}

func TestProgressModelView(t *testing.T) {
	m := newProgressModel("Connecting", nil, nil)
	if !strings.Contains(m.View(), "Connecting") {
		t.Fatalf("expected title in view, got %q", m.View())
	}
}

func TestRunWithSpinner(t *testing.T) {
	res, err := RunWithSpinner(context.Background(), nil, &strings.Builder{}, "Connecting", func(ctx context.Context) result.Result[string] {
		return result.Fail[string](models.ErrNetworkNotSet)
	})
	if err != nil {
		t.Fatalf("RunWithSpinner: %v", err)
	}
	if !errors.Is(res.Err(), models.ErrNetworkNotSet) {
		t.Fatalf("expected the run's result to be returned, got %v", res.Err())
	}
}

func TestRequired(t *testing.T) {
	validate := required("network")
	if err := validate("  "); err == nil || !strings.Contains(err.Error(), "network is required") {
		t.Fatalf("expected required error, got %v", err)
	}
	if err := validate("corp"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSetupFormBinds(t *testing.T) {
	v := &SetupValues{Network: "corp"}
	if setupForm(v) == nil {
		t.Fatalf("expected form")
	}
}
