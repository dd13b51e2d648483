// Package hooks implements the two session lifecycle operations: injecting
// declared credentials into the Claude configuration at session start, and
// stripping them back out at session end.
package hooks

import (
	stderrors "errors"
	"fmt"

	"github.com/astrogilda/credhook/internal/config"
	"github.com/astrogilda/credhook/internal/errors"
)

// Status classifies the outcome for one declaration.
type Status string

const (
	StatusInjected     Status = "Injected"
	StatusFailed       Status = "Failed"
	StatusRemoved      Status = "Removed"
	StatusAlreadyClean Status = "Already clean"
)

// Result is the outcome for a single declaration. Reason is set only for
// failures and never contains the secret value.
type Result struct {
	Label  string
	Status Status
	Reason string
}

// Line renders the result as one status line.
func (r Result) Line() string {
	if r.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", r.Status, r.Label, r.Reason)
	}
	return fmt.Sprintf("%s: %s", r.Status, r.Label)
}

// SecretSource fetches the secret for one declaration.
type SecretSource interface {
	Fetch(cred config.Credential) (string, error)
}

// failureReason turns a lookup or update error into a short, secret-free
// reason for a status line.
func failureReason(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrSecretNotFound):
		return "not in secret store"
	case stderrors.Is(err, errors.ErrStoreUnavailable):
		return "secret store unavailable"
	}

	var hookErr *errors.HookError
	if stderrors.As(err, &hookErr) && hookErr.Issue != "" {
		return hookErr.Issue
	}
	return err.Error()
}
