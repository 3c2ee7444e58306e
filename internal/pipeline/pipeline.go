// Package pipeline composes validation, the secure store and the VPN client
// automation into the operations exposed by the CLI.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"qc/internal/automation"
	"qc/internal/models"
	"qc/internal/result"
)

const (
	PasswordUpdated = "Password updated! Run qc to connect."
	NetworkUpdated  = "Network updated! Run qc to connect."
	SettingsSaved   = "Settings saved! Run qc to connect."
	SettingsCleared = "Settings cleared!"
)

// Store is the part of credentials.SecureStore the pipeline needs.
type Store interface {
	Password() (string, bool)
	SetPassword(*string) error
	Network() (string, bool)
	SetNetwork(*string) error
	SetAll(map[string]*string) error
	Clear() error
}

// Automator builds and runs the connect script.
type Automator interface {
	Build(password, network string) result.Result[automation.Script]
	Execute(ctx context.Context, script automation.Script) result.Result[models.Signal]
}

type Pipeline struct {
	store     Store
	automator Automator
	logger    *zap.Logger
}

func New(store Store, automator Automator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{store: store, automator: automator, logger: logger.Named("pipeline")}
}

func (p *Pipeline) UpdatePassword(raw *string) result.Result[string] {
	return update(ValidateRequired(raw, models.KindPasswordNotSet), p.store.SetPassword, PasswordUpdated)
}

func (p *Pipeline) UpdateNetwork(raw *string) result.Result[string] {
	return update(ValidateRequired(raw, models.KindNetworkNotSet), p.store.SetNetwork, NetworkUpdated)
}

// Setup stores both fields after validating them together, in a single write.
// Nothing is stored unless both are present and the write succeeds.
func (p *Pipeline) Setup(password, network *string) result.Result[string] {
	creds := result.Zip(
		ValidateRequired(password, models.KindPasswordNotSet),
		ValidateRequired(network, models.KindNetworkNotSet),
	)
	return result.FlatMap(creds, func(c result.Pair[string, string]) result.Result[string] {
		err := p.store.SetAll(map[string]*string{
			models.KeyPassword: &c.First,
			models.KeyNetwork:  &c.Second,
		})
		return result.FromError(SettingsSaved, err, models.KindStorage)
	})
}

func (p *Pipeline) Clear() result.Result[string] {
	return result.FromError(SettingsCleared, p.store.Clear(), models.KindStorage)
}

// Connect toggles the VPN connection using the stored credential. Both fields
// must be stored before the automation backend is touched.
func (p *Pipeline) Connect(ctx context.Context) result.Result[string] {
	state := models.StateIdle

	creds := result.Zip(
		ValidateRequired(optional(p.store.Password()), models.KindPasswordNotSet),
		ValidateRequired(optional(p.store.Network()), models.KindNetworkNotSet),
	)
	script := result.FlatMap(creds, func(c result.Pair[string, string]) result.Result[automation.Script] {
		return p.automator.Build(c.First, c.Second)
	})
	signal := result.FlatMap(script, func(s automation.Script) result.Result[models.Signal] {
		p.transition(&state, models.StateScriptBuilt)
		p.transition(&state, models.StateExecuting)
		return p.automator.Execute(ctx, s)
	})

	switch sig, ok := signal.Value(); {
	case !ok:
		p.transition(&state, models.StateFailed)
	case sig == models.SignalDisconnected:
		p.transition(&state, models.StateDisconnected)
	default:
		p.transition(&state, models.StateConnected)
	}
	return result.Map(signal, automation.Interpret)
}

func (p *Pipeline) transition(state *models.ConnectState, next models.ConnectState) {
	p.logger.Debug("connect state",
		zap.String("from", string(*state)),
		zap.String("to", string(next)),
		zap.Bool("terminal", next.Terminal()))
	*state = next
}

func update(input result.Result[string], set func(*string) error, confirmation string) result.Result[string] {
	saved := result.FlatMap(input, func(v string) result.Result[string] {
		return persist(set, v)
	})
	return result.Map(saved, func(string) string { return confirmation })
}

func persist(set func(*string) error, v string) result.Result[string] {
	return result.FromError(v, set(&v), models.KindStorage)
}
