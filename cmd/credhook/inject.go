package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"os"

	"github.com/astrogilda/credhook/internal/claudeconfig"
	"github.com/astrogilda/credhook/internal/config"
	"github.com/astrogilda/credhook/internal/errors"
	"github.com/astrogilda/credhook/internal/hookio"
	"github.com/astrogilda/credhook/internal/hooks"
	"github.com/astrogilda/credhook/internal/onepass"
	"github.com/astrogilda/credhook/internal/store"
)

type injectCommand struct {
	fs           *flag.FlagSet
	configFile   string
	claudeConfig string
	tokenFile    string
}

func newInjectCommand() *injectCommand {
	ic := &injectCommand{
		fs: flag.NewFlagSet("inject", flag.ExitOnError),
	}

	ic.fs.StringVar(&ic.configFile, "config", defaultCredentialsPath(), "Path to credential declaration file")
	ic.fs.StringVar(&ic.claudeConfig, "claude-config", defaultClaudeConfigPath(), "Path to Claude configuration file")
	ic.fs.StringVar(&ic.tokenFile, "op-token-file", "", "Path to 1Password service account token file (OP_SERVICE_ACCOUNT_TOKEN takes precedence)")

	ic.fs.Usage = func() {
		fmt.Fprintf(ic.fs.Output(), "Usage: credhook inject [options]\n\n")
		fmt.Fprintf(ic.fs.Output(), "SessionStart hook: look up each declared credential and inject it into\n")
		fmt.Fprintf(ic.fs.Output(), "the target MCP server's env block in the Claude configuration\n\n")
		fmt.Fprintf(ic.fs.Output(), "Options:\n")
		ic.fs.PrintDefaults()
	}

	return ic
}

func (ic *injectCommand) Name() string { return ic.fs.Name() }

func (ic *injectCommand) Init(args []string) error {
	return ic.fs.Parse(args)
}

func (ic *injectCommand) Run() error {
	hookio.Drain(os.Stdin)

	cfg, err := config.Load(ic.configFile)
	if err != nil {
		if stderrors.Is(err, errors.ErrConfigMissing) {
			return nil // nothing declared, nothing to inject
		}
		return err
	}
	if len(cfg.Credentials) == 0 {
		return nil
	}

	file, err := claudeconfig.Load(ic.claudeConfig)
	if err != nil {
		if os.IsNotExist(err) {
			return hookio.Write(os.Stdout, hookio.Response{
				SystemMessage: fmt.Sprintf("WARNING: No Claude configuration found at %s", ic.claudeConfig),
			})
		}
		return err
	}

	// The keyring backend either works for every declaration or for none,
	// so probe once up front instead of failing N times in the loop.
	keyring := store.Keyring{}
	if needsKeyring(cfg) {
		if err := keyring.Available(); err != nil {
			return errors.KeyringError("Probing keyring backend", "credhook-probe", "probe", err)
		}
	}

	resolver := store.NewResolver(keyring, func() (store.ReferenceResolver, error) {
		return onepass.NewClient(ic.tokenFile)
	})

	results := hooks.NewInjector(resolver).Run(cfg, file)

	if file.Changed() {
		if err := file.Save(); err != nil {
			return err
		}
	}

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.Line()
	}
	return hookio.Write(os.Stdout, hookio.Response{
		SystemMessage: hookio.JoinLines(lines),
	})
}

func needsKeyring(cfg *config.Config) bool {
	for _, cred := range cfg.Credentials {
		if cred.UsesKeyring() {
			return true
		}
	}
	return false
}
