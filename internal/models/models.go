package models

import "time"

const (
	DefaultIdentifier  = "qc"
	DefaultApplication = "Cisco AnyConnect Secure Mobility Client"
	DefaultOsascript   = "osascript"
)

// Keys of the credential record.
const (
	KeyPassword = "password"
	KeyNetwork  = "network"
)

type BackendType string

const (
	BackendKeyring BackendType = "keyring"
	BackendEnv     BackendType = "env"
)

type Config struct {
	Identifier  string        `yaml:"identifier"`
	Backend     BackendType   `yaml:"backend"`
	Application string        `yaml:"application"`
	Osascript   string        `yaml:"osascript"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	ConfigPath  string        `yaml:"-"`
	Verbose     bool          `yaml:"-"`
}

// Signal is the terminal flag reported by the automation script.
type Signal int

const (
	// SignalConnected means the client was disconnected and is now connected.
	SignalConnected Signal = iota
	// SignalDisconnected means the client was connected and is now disconnected.
	SignalDisconnected
)

func (s Signal) String() string {
	switch s {
	case SignalConnected:
		return "connected"
	case SignalDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

type ConnectState string

const (
	StateIdle         ConnectState = "IDLE"
	StateScriptBuilt  ConnectState = "SCRIPT_BUILT"
	StateExecuting    ConnectState = "EXECUTING"
	StateConnected    ConnectState = "CONNECTED"
	StateDisconnected ConnectState = "DISCONNECTED"
	StateFailed       ConnectState = "FAILED"
)

func (s ConnectState) Terminal() bool {
	return s == StateConnected || s == StateDisconnected || s == StateFailed
}
