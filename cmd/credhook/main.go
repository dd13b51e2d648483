package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type command interface {
	Name() string
	Init([]string) error
	Run() error
}

func main() {
	cmds := []command{
		newInjectCommand(),
		newRemoveCommand(),
		newSetCommand(),
	}

	if len(os.Args) < 2 {
		printUsage(cmds)
		os.Exit(1)
	}

	subcommand := os.Args[1]

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(os.Args[2:]); err != nil {
				log.Fatalf("Failed to initialize %s: %v", cmd.Name(), err)
			}
			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run %s: %v", cmd.Name(), err)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
	printUsage(cmds)
	os.Exit(1)
}

func printUsage(cmds []command) {
	fmt.Fprintf(os.Stderr, "Usage: credhook <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Available commands:\n")
	fmt.Fprintf(os.Stderr, "  inject    SessionStart hook: inject credentials into ~/.claude.json\n")
	fmt.Fprintf(os.Stderr, "  remove    SessionEnd hook: remove injected credentials\n")
	fmt.Fprintf(os.Stderr, "  set       Store a declared credential in the OS keyring\n\n")
	fmt.Fprintf(os.Stderr, "Use 'credhook <command> -h' for command-specific help\n")
}

// defaultCredentialsPath is where the declaration file lives unless
// overridden: ~/.claude/config/mcp-credentials.json.
func defaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mcp-credentials.json"
	}
	return filepath.Join(home, ".claude", "config", "mcp-credentials.json")
}

// defaultClaudeConfigPath is the host's configuration file: ~/.claude.json.
func defaultClaudeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".claude.json"
	}
	return filepath.Join(home, ".claude.json")
}
