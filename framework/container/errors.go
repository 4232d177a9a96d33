package container

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a container failure.
type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNotInstantiable
	ErrCodeUnresolvableParameter
	ErrCodeCyclicDependency
	ErrCodeInvalidTarget
	ErrCodeFactoryFailed
	ErrCodeConstructionFailed
	ErrCodeConfigLoad
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:               "UNKNOWN",
	ErrCodeNotInstantiable:       "NOT_INSTANTIABLE",
	ErrCodeUnresolvableParameter: "UNRESOLVABLE_PARAMETER",
	ErrCodeCyclicDependency:      "CYCLIC_DEPENDENCY",
	ErrCodeInvalidTarget:         "INVALID_TARGET",
	ErrCodeFactoryFailed:         "FACTORY_FAILED",
	ErrCodeConstructionFailed:    "CONSTRUCTION_FAILED",
	ErrCodeConfigLoad:            "CONFIG_LOAD",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is returned by every failing container operation.
//
// ID names the identifier (or target) being resolved, Param the constructor
// parameter involved, and Chain the identifiers on the resolution path when
// a cycle was found.
type Error struct {
	Code    ErrorCode
	Message string
	ID      string
	Param   string
	Cause   error
	Chain   []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.ID != "" {
		b.WriteString(fmt.Sprintf(" id=%q:", e.ID))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code, so callers can
// write errors.Is(err, &container.Error{Code: container.ErrCodeNotInstantiable}).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func newError(code ErrorCode, id, message string, cause error) *Error {
	return &Error{
		Code:    code,
		ID:      id,
		Message: message,
		Cause:   cause,
	}
}

func errNotInstantiable(name, reason string) *Error {
	return newError(
		ErrCodeNotInstantiable,
		name,
		"not instantiable: "+reason,
		nil,
	)
}

func errUnresolvableParameter(target string, p Param, cause error) *Error {
	e := newError(
		ErrCodeUnresolvableParameter,
		target,
		fmt.Sprintf("can't resolve parameter %s (#%d)", p.Name, p.Index),
		cause,
	)
	e.Param = p.Name
	return e
}

func errCyclicDependency(chain []string) *Error {
	e := newError(
		ErrCodeCyclicDependency,
		chain[len(chain)-1],
		fmt.Sprintf("cyclic dependency detected: %s", strings.Join(chain, " -> ")),
		nil,
	)
	e.Chain = chain
	return e
}

func errInvalidTarget(name, message string) *Error {
	return newError(ErrCodeInvalidTarget, name, message, nil)
}

func errFactoryFailed(id string, cause error) *Error {
	return newError(ErrCodeFactoryFailed, id, "factory returned error", cause)
}

func errConstructionFailed(name, message string, cause error) *Error {
	return newError(ErrCodeConstructionFailed, name, message, cause)
}

func errConfigLoad(path string, cause error) *Error {
	return newError(
		ErrCodeConfigLoad,
		"",
		fmt.Sprintf("failed to load bindings from %s", path),
		cause,
	)
}

// IsNotInstantiable reports whether err (or any error it wraps) is a
// NOT_INSTANTIABLE failure.
func IsNotInstantiable(err error) bool {
	return hasCode(err, ErrCodeNotInstantiable)
}

func IsUnresolvableParameter(err error) bool {
	return hasCode(err, ErrCodeUnresolvableParameter)
}

func IsCyclicDependency(err error) bool {
	return hasCode(err, ErrCodeCyclicDependency)
}

func IsInvalidTarget(err error) bool {
	return hasCode(err, ErrCodeInvalidTarget)
}

func IsConfigLoad(err error) bool {
	return hasCode(err, ErrCodeConfigLoad)
}

// hasCode walks the whole wrap chain; nested resolution failures are wrapped
// in UNRESOLVABLE_PARAMETER, so the root cause can sit several levels down.
func hasCode(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}
