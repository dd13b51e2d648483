package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/astrogilda/credhook/internal/config"
	"github.com/astrogilda/credhook/internal/store"
)

type setCommand struct {
	fs         *flag.FlagSet
	configFile string
	key        string
	stdin      io.Reader
}

func newSetCommand() *setCommand {
	sc := &setCommand{
		fs:    flag.NewFlagSet("set", flag.ExitOnError),
		stdin: os.Stdin,
	}

	sc.fs.StringVar(&sc.configFile, "config", defaultCredentialsPath(), "Path to credential declaration file")

	sc.fs.Usage = func() {
		fmt.Fprintf(sc.fs.Output(), "Usage: credhook set [options] <key>\n\n")
		fmt.Fprintf(sc.fs.Output(), "Store the secret for a declared credential in the OS keyring,\n")
		fmt.Fprintf(sc.fs.Output(), "under the service and account the declaration names\n\n")
		fmt.Fprintf(sc.fs.Output(), "Options:\n")
		sc.fs.PrintDefaults()
	}

	return sc
}

func (sc *setCommand) Name() string { return sc.fs.Name() }

func (sc *setCommand) Init(args []string) error {
	if err := sc.fs.Parse(args); err != nil {
		return err
	}

	if sc.fs.NArg() < 1 {
		sc.fs.Usage()
		return fmt.Errorf("declaration key required")
	}

	sc.key = sc.fs.Arg(0)
	return nil
}

func (sc *setCommand) Run() error {
	cfg, err := config.Load(sc.configFile)
	if err != nil {
		return err
	}

	var cred *config.Credential
	for i := range cfg.Credentials {
		if cfg.Credentials[i].Key == sc.key {
			cred = &cfg.Credentials[i]
			break
		}
	}
	if cred == nil {
		return fmt.Errorf("no declaration %q in %s", sc.key, sc.configFile)
	}
	if !cred.UsesKeyring() {
		return fmt.Errorf("declaration %q resolves through 1Password (%s); manage it with the op CLI", sc.key, cred.Reference)
	}

	fmt.Fprintf(os.Stderr, "Please paste the secret for %s (press Enter when done):\n", cred.Label)

	reader := bufio.NewReader(sc.stdin)
	secret, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("error reading input: %w", err)
	}

	secretStr := strings.TrimSpace(secret)
	if secretStr == "" {
		return fmt.Errorf("secret cannot be empty")
	}

	if err := (store.Keyring{}).Set(cred.Service, cred.Account, secretStr); err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Secret for %s stored in keyring (service %q, account %q)\n", cred.Label, cred.Service, cred.Account)
	return nil
}
