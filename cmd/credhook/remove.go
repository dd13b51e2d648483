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
)

type removeCommand struct {
	fs           *flag.FlagSet
	configFile   string
	claudeConfig string
}

func newRemoveCommand() *removeCommand {
	rc := &removeCommand{
		fs: flag.NewFlagSet("remove", flag.ExitOnError),
	}

	rc.fs.StringVar(&rc.configFile, "config", defaultCredentialsPath(), "Path to credential declaration file")
	rc.fs.StringVar(&rc.claudeConfig, "claude-config", defaultClaudeConfigPath(), "Path to Claude configuration file")

	rc.fs.Usage = func() {
		fmt.Fprintf(rc.fs.Output(), "Usage: credhook remove [options]\n\n")
		fmt.Fprintf(rc.fs.Output(), "SessionEnd hook: delete every injected credential from the Claude\n")
		fmt.Fprintf(rc.fs.Output(), "configuration so secrets never outlive the session\n\n")
		fmt.Fprintf(rc.fs.Output(), "Options:\n")
		rc.fs.PrintDefaults()
	}

	return rc
}

func (rc *removeCommand) Name() string { return rc.fs.Name() }

func (rc *removeCommand) Init(args []string) error {
	return rc.fs.Parse(args)
}

func (rc *removeCommand) Run() error {
	hookio.Drain(os.Stdin)

	approve := hookio.Response{Decision: "approve"}

	cfg, err := config.Load(rc.configFile)
	if err != nil {
		if stderrors.Is(err, errors.ErrConfigMissing) {
			return hookio.Write(os.Stdout, approve)
		}
		return err
	}
	if len(cfg.Credentials) == 0 {
		return hookio.Write(os.Stdout, approve)
	}

	file, err := claudeconfig.Load(rc.claudeConfig)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	// A missing Claude configuration is already clean; Remover handles nil.

	results := hooks.Remover{}.Run(cfg, file)

	if file != nil && file.Changed() {
		if err := file.Save(); err != nil {
			return err
		}
	}

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.Line()
	}
	approve.SystemMessage = hookio.JoinLines(lines)
	return hookio.Write(os.Stdout, approve)
}
