package store

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrogilda/credhook/internal/config"
	"github.com/astrogilda/credhook/internal/errors"
)

type fakeKeyring struct {
	secrets map[string]string
}

func (f fakeKeyring) Lookup(service, account string) (string, error) {
	if v, ok := f.secrets[service+"/"+account]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: service %q account %q", errors.ErrSecretNotFound, service, account)
}

type fakeOnePass struct {
	secrets map[string]string
}

func (f fakeOnePass) ResolveSecret(reference string) (string, error) {
	if v, ok := f.secrets[reference]; ok {
		return v, nil
	}
	return "", fmt.Errorf("no item for %s", reference)
}

func TestResolver_RoutesToKeyring(t *testing.T) {
	r := NewResolver(fakeKeyring{secrets: map[string]string{"github/api-key": "ghp_abc123"}}, nil)

	secret, err := r.Fetch(config.Credential{Service: "github", Account: "api-key"})
	require.NoError(t, err)
	assert.Equal(t, "ghp_abc123", secret)
}

func TestResolver_RoutesToOnePassword(t *testing.T) {
	built := 0
	r := NewResolver(fakeKeyring{}, func() (ReferenceResolver, error) {
		built++
		return fakeOnePass{secrets: map[string]string{"op://infra/pg/password": "hunter2"}}, nil
	})

	cred := config.Credential{Reference: "op://infra/pg/password"}

	secret, err := r.Fetch(cred)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret)

	// Second fetch reuses the client.
	_, err = r.Fetch(cred)
	require.NoError(t, err)
	assert.Equal(t, 1, built)
}

func TestResolver_OnePasswordClientIsLazy(t *testing.T) {
	built := 0
	r := NewResolver(fakeKeyring{secrets: map[string]string{"github/api-key": "x"}}, func() (ReferenceResolver, error) {
		built++
		return fakeOnePass{}, nil
	})

	_, err := r.Fetch(config.Credential{Service: "github", Account: "api-key"})
	require.NoError(t, err)
	assert.Zero(t, built, "keyring-only fetch must not build a 1Password client")
}

func TestResolver_OnePasswordUnavailable(t *testing.T) {
	t.Run("client construction fails", func(t *testing.T) {
		calls := 0
		r := NewResolver(fakeKeyring{}, func() (ReferenceResolver, error) {
			calls++
			return nil, fmt.Errorf("no service account token")
		})

		cred := config.Credential{Reference: "op://infra/pg/password"}

		_, err := r.Fetch(cred)
		assert.True(t, stderrors.Is(err, errors.ErrStoreUnavailable), "got %v", err)

		// The failed construction is not retried on every declaration.
		_, _ = r.Fetch(cred)
		assert.Equal(t, 1, calls)
	})

	t.Run("no 1Password wiring", func(t *testing.T) {
		r := NewResolver(fakeKeyring{}, nil)
		_, err := r.Fetch(config.Credential{Reference: "op://infra/pg/password"})
		assert.True(t, stderrors.Is(err, errors.ErrStoreUnavailable), "got %v", err)
	})
}

func TestResolver_UnresolvedReferenceIsNotFound(t *testing.T) {
	r := NewResolver(fakeKeyring{}, func() (ReferenceResolver, error) {
		return fakeOnePass{}, nil
	})

	_, err := r.Fetch(config.Credential{Reference: "op://infra/missing/password"})
	assert.True(t, stderrors.Is(err, errors.ErrSecretNotFound), "got %v", err)
}
