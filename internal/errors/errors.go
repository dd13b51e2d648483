package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conditions callers branch on with errors.Is.
var (
	// ErrConfigMissing means the credential declaration file does not exist.
	// Not an error condition for the hooks: there is simply nothing to do.
	ErrConfigMissing = errors.New("credential config not found")

	// ErrSecretNotFound means the secret store has no entry for the
	// (service, account) pair. Per-declaration, never fatal.
	ErrSecretNotFound = errors.New("secret not found in store")

	// ErrStoreUnavailable means the secret store integration cannot run at
	// all on this platform (no keyring backend, missing 1Password token).
	ErrStoreUnavailable = errors.New("secret store unavailable")

	// ErrServerNotFound means the target MCP server has no entry in the
	// Claude configuration file.
	ErrServerNotFound = errors.New("MCP server not configured")
)

// HookError is a structured error with enough context for a single
// human-readable report: what was being done, which component failed,
// and what the user can do about it.
type HookError struct {
	Operation   string   // What operation was being performed
	Component   string   // Which component failed (config, keyring, claude config, ...)
	Issue       string   // The core issue description
	Context     string   // Additional context about the failure
	Suggestions []string // Actionable suggestions to fix the issue
	Cause       error    // Underlying error that caused this
}

func (e *HookError) Error() string {
	var parts []string

	if e.Operation != "" && e.Component != "" {
		parts = append(parts, fmt.Sprintf("ERROR: %s failed in %s", e.Operation, e.Component))
	} else if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("ERROR: %s failed", e.Operation))
	} else {
		parts = append(parts, "ERROR: Operation failed")
	}

	if e.Issue != "" {
		parts = append(parts, fmt.Sprintf("  Issue: %s", e.Issue))
	}

	if e.Context != "" {
		parts = append(parts, fmt.Sprintf("  Context: %s", e.Context))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("  Cause: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		parts = append(parts, "")
		parts = append(parts, "  Suggestions:")
		for i, suggestion := range e.Suggestions {
			parts = append(parts, fmt.Sprintf("  %d. %s", i+1, suggestion))
		}
	}

	return strings.Join(parts, "\n")
}

func (e *HookError) Unwrap() error {
	return e.Cause
}

// Error constructors for common scenarios

// ConfigError creates errors related to the credential declaration file.
func ConfigError(operation, issue string, cause error) *HookError {
	return &HookError{
		Operation: operation,
		Component: "credential config",
		Issue:     issue,
		Cause:     cause,
	}
}

// ConfigValidationError reports schema violations in the declaration file,
// one violation per line under Context.
func ConfigValidationError(path string, violations []string) *HookError {
	return &HookError{
		Operation: "Validating credential config",
		Component: "credential config",
		Issue:     fmt.Sprintf("%d schema violation(s)", len(violations)),
		Context:   fmt.Sprintf("File: %s\n  %s", path, strings.Join(violations, "\n  ")),
		Suggestions: []string{
			"Each entry needs \"env_var\" and \"label\"",
			"Provide either \"service\" and \"account\" (keyring) or \"reference\" (1Password op:// URI)",
			"Check the declaration file against the format in the README",
		},
	}
}

// KeyringError creates errors for OS keyring lookups with remediation that
// depends on whether the backend is missing or just the one entry.
func KeyringError(operation, service, account string, cause error) *HookError {
	suggestions := []string{}

	if errors.Is(cause, ErrStoreUnavailable) {
		suggestions = append(suggestions,
			"Install a keyring backend (GNOME Keyring, KWallet, or macOS Keychain)",
			"On headless Linux, ensure the Secret Service D-Bus API is running",
		)
	} else if errors.Is(cause, ErrSecretNotFound) {
		suggestions = append(suggestions,
			fmt.Sprintf("Store the secret: secret-tool store --label=<label> service %s account %s", service, account),
			fmt.Sprintf("macOS: security add-generic-password -s %s -a %s -w", service, account),
		)
	}

	return &HookError{
		Operation:   operation,
		Component:   "keyring",
		Issue:       fmt.Sprintf("Lookup failed for service %q account %q", service, account),
		Suggestions: suggestions,
		Cause:       cause,
	}
}

// FileOperationError creates errors for reads and writes of the Claude
// configuration file.
func FileOperationError(operation, path, issue string, cause error) *HookError {
	suggestions := []string{}

	if strings.Contains(issue, "permission denied") {
		suggestions = append(suggestions,
			fmt.Sprintf("Check write permissions on '%s'", path),
			fmt.Sprintf("Check directory permissions: ls -la '%s'", dirOf(path)),
		)
	} else if strings.Contains(issue, "no such file or directory") {
		suggestions = append(suggestions,
			fmt.Sprintf("Verify the path is correct: '%s'", path),
		)
	}

	return &HookError{
		Operation:   operation,
		Component:   "file system",
		Issue:       issue,
		Context:     fmt.Sprintf("Target path: %s", path),
		Suggestions: suggestions,
		Cause:       cause,
	}
}

// TokenError creates 1Password service-account token errors with setup
// instructions.
func TokenError(issue, tokenPath string, cause error) *HookError {
	suggestions := []string{
		"Set up your 1Password service account token:",
		"  1. Visit https://my.1password.com/developer-tools/infrastructure-secrets",
		"  2. Create a new service account",
		"  3. Export the token: export OP_SERVICE_ACCOUNT_TOKEN=<token>",
	}
	if tokenPath != "" {
		suggestions = append(suggestions,
			fmt.Sprintf("  4. Or store it in a file: echo '<token>' > %s && chmod 600 %s", tokenPath, tokenPath),
		)
	}

	return &HookError{
		Operation:   "Token access",
		Component:   "1Password integration",
		Issue:       issue,
		Suggestions: suggestions,
		Cause:       cause,
	}
}

// Wrap provides a simple way to wrap existing errors with hook context.
func Wrap(err error, operation, component string) error {
	if err == nil {
		return nil
	}

	return &HookError{
		Operation: operation,
		Component: component,
		Issue:     err.Error(),
		Cause:     err,
	}
}

func dirOf(filePath string) string {
	lastSlash := strings.LastIndex(filePath, "/")
	if lastSlash == -1 {
		return "."
	}
	if lastSlash == 0 {
		return "/"
	}
	return filePath[:lastSlash]
}
