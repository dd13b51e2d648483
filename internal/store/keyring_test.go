package store

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/astrogilda/credhook/internal/errors"
)

func TestKeyring_Lookup(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, keyring.Set("github", "api-key", "ghp_abc123"))

	secret, err := Keyring{}.Lookup("github", "api-key")
	require.NoError(t, err)
	assert.Equal(t, "ghp_abc123", secret)
}

func TestKeyring_Lookup_NotFound(t *testing.T) {
	keyring.MockInit()

	_, err := Keyring{}.Lookup("github", "missing-account")
	assert.True(t, stderrors.Is(err, errors.ErrSecretNotFound), "got %v", err)
}

func TestKeyring_Lookup_EmptySecretIsNotFound(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, keyring.Set("github", "api-key", ""))

	_, err := Keyring{}.Lookup("github", "api-key")
	assert.True(t, stderrors.Is(err, errors.ErrSecretNotFound), "got %v", err)
}

func TestKeyring_Lookup_BackendFailure(t *testing.T) {
	keyring.MockInitWithError(keyring.ErrUnsupportedPlatform)

	_, err := Keyring{}.Lookup("github", "api-key")
	assert.True(t, stderrors.Is(err, errors.ErrStoreUnavailable), "got %v", err)
}

func TestKeyring_Set(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, Keyring{}.Set("github", "api-key", "ghp_abc123"))

	secret, err := keyring.Get("github", "api-key")
	require.NoError(t, err)
	assert.Equal(t, "ghp_abc123", secret)
}

func TestKeyring_Available(t *testing.T) {
	t.Run("working backend", func(t *testing.T) {
		keyring.MockInit()
		assert.NoError(t, Keyring{}.Available())
	})

	t.Run("unsupported platform", func(t *testing.T) {
		keyring.MockInitWithError(keyring.ErrUnsupportedPlatform)
		err := Keyring{}.Available()
		assert.True(t, stderrors.Is(err, errors.ErrStoreUnavailable), "got %v", err)
	})
}
