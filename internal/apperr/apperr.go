package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors mirroring the store's failure taxonomy.
var (
	ErrNotFound     = errors.New("not_found")
	ErrUnauthorized = errors.New("unauthorized")
)

// BusinessError carries a machine-readable code for rule violations
// detected before any store call (validation and the like).
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// InvalidTransitionError names the rejected action, the status the
// appointment was in and the actor who attempted it.
type InvalidTransitionError struct {
	Action string
	State  string
	Actor  string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf(
		"invalid transition: %s not allowed from %s for actor %s",
		e.Action, e.State, e.Actor,
	)
}

func InvalidTransition(action, state, actor string) error {
	return InvalidTransitionError{Action: action, State: state, Actor: actor}
}

func IsInvalidTransition(err error) bool {
	var ite InvalidTransitionError
	return errors.As(err, &ite)
}

// StaleStateError signals a concurrent transition won the write; the
// caller must re-fetch before retrying.
type StaleStateError struct {
	ID string
}

func (e StaleStateError) Error() string {
	return fmt.Sprintf("stale state for appointment %s", e.ID)
}

func IsStaleState(err error) bool {
	var sse StaleStateError
	return errors.As(err, &sse)
}

// NetworkError wraps transport failures from the store so callers can
// distinguish them from domain rejections. Write paths are never
// retried on it.
type NetworkError struct {
	Op  string
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

func IsNetwork(err error) bool {
	var ne NetworkError
	return errors.As(err, &ne)
}
