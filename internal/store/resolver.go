package store

import (
	stderrors "errors"
	"fmt"

	"github.com/astrogilda/credhook/internal/config"
	"github.com/astrogilda/credhook/internal/errors"
)

// ReferenceResolver resolves 1Password op:// secret references.
type ReferenceResolver interface {
	ResolveSecret(reference string) (string, error)
}

// Resolver routes each declaration to its backend: keyring for
// (service, account) pairs, 1Password for op:// references. The 1Password
// client is built on first use so keyring-only users never need a
// service-account token.
type Resolver struct {
	keyring Store
	newOP   func() (ReferenceResolver, error)

	op     ReferenceResolver
	opErr  error
	opInit bool
}

// NewResolver builds a Resolver. newOP may be nil when 1Password support is
// not wired in; declarations with references then fail per-declaration.
func NewResolver(keyring Store, newOP func() (ReferenceResolver, error)) *Resolver {
	return &Resolver{keyring: keyring, newOP: newOP}
}

// Fetch returns the secret for one declaration.
func (r *Resolver) Fetch(cred config.Credential) (string, error) {
	if cred.UsesKeyring() {
		return r.keyring.Lookup(cred.Service, cred.Account)
	}

	op, err := r.onePassword()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}

	secret, err := op.ResolveSecret(cred.Reference)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrSecretNotFound, err)
	}
	return secret, nil
}

func (r *Resolver) onePassword() (ReferenceResolver, error) {
	if r.opInit {
		return r.op, r.opErr
	}
	r.opInit = true

	if r.newOP == nil {
		r.opErr = stderrors.New("1Password integration not configured")
		return nil, r.opErr
	}
	r.op, r.opErr = r.newOP()
	return r.op, r.opErr
}
