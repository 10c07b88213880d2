package core

import (
	"context"
	"errors"

	"github.com/alexschlessinger/pollytool/tools"
)

// ModelSession is a configured conversation with the language model backend.
// StreamResponse emits cumulative snapshots of the in-progress answer; the
// channel closes when the response is complete or a terminal snapshot carried
// an error. Tool invocations happen inside the session and are invisible to
// the caller.
type ModelSession interface {
	StreamResponse(ctx context.Context, prompt string, opts GenerationOptions) <-chan ResponseSnapshot
}

// SessionFactory builds a fresh ModelSession from instructions and a tool
// registry. The orchestrator calls it on startup and on reconfigure.
type SessionFactory func(instructions string, registry *tools.ToolRegistry) ModelSession

// ImageGenerator produces image bytes for a prompt in a given style.
// A nil slice with a nil error means the backend produced nothing.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, style ImageStyle) ([]byte, error)
}

var (
	ErrHealthDataNotAvailable = errors.New("health data is not available")
	ErrUnauthorized           = errors.New("health data access not authorized")
)

// HealthStore exposes the user's health characteristics. Authorization is
// requested per call; a denial never yields partial data.
type HealthStore interface {
	Available() bool
	RequestAuthorization(ctx context.Context) error
	Profile() (HealthProfile, error)
}
