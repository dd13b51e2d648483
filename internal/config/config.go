package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/astrogilda/credhook/internal/errors"
	"github.com/astrogilda/credhook/internal/validation"
)

// Credential describes how to fetch one secret and where to place it.
type Credential struct {
	Key       string // map key in the declaration file; stable identity
	EnvVar    string // environment variable the MCP server expects
	Service   string // keyring service name
	Account   string // keyring account name
	Reference string // 1Password op:// URI, alternative to Service/Account
	Label     string // human-readable name for status lines
	MCPServer string // target server block in the Claude config

	// ServerExplicit records whether mcp_server was named in the file or
	// defaulted from the declaration key. Injection only creates missing
	// server blocks for explicitly named targets.
	ServerExplicit bool
}

// UsesKeyring reports whether the credential is looked up in the OS keyring
// rather than resolved through 1Password.
func (c Credential) UsesKeyring() bool {
	return c.Reference == ""
}

// Config holds the declarations in the order they appear in the file.
type Config struct {
	Credentials []Credential
}

type entry struct {
	EnvVar    string `json:"env_var"`
	Service   string `json:"service"`
	Account   string `json:"account"`
	Reference string `json:"reference"`
	Label     string `json:"label"`
	MCPServer string `json:"mcp_server"`
}

// Load reads and validates the declaration file. A missing file yields
// errors.ErrConfigMissing; anything else wrong with the file is fatal for
// the invocation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrConfigMissing, path)
		}
		return nil, errors.ConfigError("Reading credential config", "File exists but could not be read", err)
	}

	validator, err := validation.New()
	if err != nil {
		return nil, errors.ConfigError("Loading credential config", "Internal schema error", err)
	}
	if err := validator.Validate(path, data); err != nil {
		return nil, err
	}

	return parse(data)
}

// parse decodes the top-level object token by token so declarations keep
// the order they have in the file. A plain map would randomize it.
func parse(data []byte) (*Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.ConfigError("Parsing credential config", "File is not valid JSON", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.ConfigError("Parsing credential config", "Top-level value must be a JSON object", nil)
	}

	cfg := &Config{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.ConfigError("Parsing credential config", "File is not valid JSON", err)
		}
		key := tok.(string)

		var e entry
		if err := dec.Decode(&e); err != nil {
			return nil, errors.ConfigError(
				"Parsing credential config",
				fmt.Sprintf("Entry %q is not a valid declaration", key),
				err,
			)
		}

		cred := Credential{
			Key:            key,
			EnvVar:         e.EnvVar,
			Service:        e.Service,
			Account:        e.Account,
			Reference:      e.Reference,
			Label:          e.Label,
			MCPServer:      e.MCPServer,
			ServerExplicit: e.MCPServer != "",
		}
		if cred.MCPServer == "" {
			cred.MCPServer = key
		}
		cfg.Credentials = append(cfg.Credentials, cred)
	}

	return cfg, nil
}
