// Package civicerr classifies failures into the kinds the front ends
// care about and formats them for end users.
package civicerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindConfig       // required secret missing
	KindValidation   // user input rejected
	KindUpstream     // network error or non-success upstream status
	KindRateLimited  // deliberate short-circuit, not a failure
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindRateLimited:
		return "rate_limited"
	}
	return "unknown"
}

// Error carries a kind, a user-safe message, and an optional wrapped
// cause. Msg must never contain secrets; callers include upstream
// detail there instead of interpolating arbitrary caught errors.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Config(msg string) error {
	return &Error{Kind: KindConfig, Msg: msg}
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Upstream(msg string, err error) error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

func RateLimited(msg string) error {
	return &Error{Kind: KindRateLimited, Msg: msg}
}

// KindOf returns the kind of err, or KindUnknown for errors that did
// not originate here.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// UserMessage renders err for display. Classified errors keep their
// full detail (message plus wrapped cause); anything else falls back
// to the plain error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return err.Error()
}
