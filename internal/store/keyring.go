// Package store looks up secrets for credential declarations. The OS keyring
// is the primary backend; declarations carrying an op:// reference resolve
// through 1Password instead.
package store

import (
	stderrors "errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/astrogilda/credhook/internal/errors"
)

// Store is a (service, account) keyed secret lookup.
type Store interface {
	Lookup(service, account string) (string, error)
}

// Keyring reads secrets from the OS keyring: macOS Keychain, the Secret
// Service API (GNOME Keyring, KWallet) on Linux, Credential Manager on
// Windows.
type Keyring struct{}

// Lookup returns the stored secret, errors.ErrSecretNotFound when the entry
// is absent or empty, or errors.ErrStoreUnavailable when the keyring backend
// itself cannot be reached.
func (Keyring) Lookup(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if err != nil {
		if stderrors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: service %q account %q", errors.ErrSecretNotFound, service, account)
		}
		// ErrUnsupportedPlatform and backend failures (e.g. no D-Bus
		// session) both mean the store cannot serve lookups.
		return "", fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	if secret == "" {
		return "", fmt.Errorf("%w: service %q account %q", errors.ErrSecretNotFound, service, account)
	}
	return secret, nil
}

// Set stores a secret, replacing any existing value.
func (Keyring) Set(service, account, secret string) error {
	if err := keyring.Set(service, account, secret); err != nil {
		if stderrors.Is(err, keyring.ErrUnsupportedPlatform) {
			return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
		}
		return err
	}
	return nil
}

// Available probes the keyring backend with a throwaway lookup. A missing
// probe entry is fine; an unreachable backend is not.
func (k Keyring) Available() error {
	_, err := k.Lookup("credhook-probe", "probe")
	if err != nil && stderrors.Is(err, errors.ErrStoreUnavailable) {
		return err
	}
	return nil
}
