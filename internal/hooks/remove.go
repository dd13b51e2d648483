package hooks

import (
	"github.com/astrogilda/credhook/internal/claudeconfig"
	"github.com/astrogilda/credhook/internal/config"
)

// Remover strips injected credentials back out of the Claude configuration.
// Running it against a file that was never injected, or running it twice,
// is a no-op.
type Remover struct{}

// Run processes every declaration in file order. file may be nil when the
// Claude configuration does not exist; everything is then already clean.
func (Remover) Run(cfg *config.Config, file *claudeconfig.File) []Result {
	results := make([]Result, 0, len(cfg.Credentials))

	for _, cred := range cfg.Credentials {
		if file != nil && file.RemoveEnv(cred.MCPServer, cred.EnvVar) {
			results = append(results, Result{Label: cred.Label, Status: StatusRemoved})
			continue
		}
		results = append(results, Result{Label: cred.Label, Status: StatusAlreadyClean})
	}

	return results
}
