package models

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindPasswordNotSet      Kind = "password_not_set"
	KindNetworkNotSet       Kind = "network_not_set"
	KindCouldNotBuildScript Kind = "could_not_build_script"
	KindAutomation          Kind = "automation_error"
	KindStorage             Kind = "storage_failed"
	KindUnknown             Kind = "unknown"
)

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrPasswordNotSet      = &Error{Kind: KindPasswordNotSet}
	ErrNetworkNotSet       = &Error{Kind: KindNetworkNotSet}
	ErrCouldNotBuildScript = &Error{Kind: KindCouldNotBuildScript}
	ErrAutomation          = &Error{Kind: KindAutomation}
	ErrStorage             = &Error{Kind: KindStorage}
)

// AutomationFailure is the structured payload reported by the automation backend.
type AutomationFailure struct {
	Message string
	// Code is the AppleScript error number, 0 when the backend reported none.
	Code   int
	Output string
}

func (f *AutomationFailure) String() string {
	if f == nil {
		return ""
	}
	if f.Code != 0 {
		return fmt.Sprintf("%s (%d)", f.Message, f.Code)
	}
	return f.Message
}

// Error is the single error type flowing through every pipeline step.
type Error struct {
	Kind Kind
	// Source holds the rejected script for KindCouldNotBuildScript.
	Source  string
	Failure *AutomationFailure
	Err     error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindPasswordNotSet:
		msg = "password not set"
	case KindNetworkNotSet:
		msg = "network not set"
	case KindCouldNotBuildScript:
		msg = "could not build script"
	case KindAutomation:
		msg = "automation failed"
		if s := e.Failure.String(); s != "" {
			msg += ": " + s
		}
	case KindStorage:
		msg = "credential storage failed"
	default:
		msg = string(e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func NewScriptError(source string, err error) *Error {
	return &Error{Kind: KindCouldNotBuildScript, Source: source, Err: err}
}

func NewAutomationError(failure *AutomationFailure) *Error {
	return &Error{Kind: KindAutomation, Failure: failure}
}

func NewStorageError(err error) *Error {
	return &Error{Kind: KindStorage, Err: err}
}

// Redact replaces every occurrence of secret in s.
func Redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "********")
}
