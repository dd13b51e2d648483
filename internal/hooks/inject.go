package hooks

import (
	stderrors "errors"
	"fmt"

	"github.com/astrogilda/credhook/internal/claudeconfig"
	"github.com/astrogilda/credhook/internal/config"
	"github.com/astrogilda/credhook/internal/errors"
)

// Injector writes declared credentials into the Claude configuration.
type Injector struct {
	source SecretSource
}

func NewInjector(source SecretSource) *Injector {
	return &Injector{source: source}
}

// Run processes every declaration in file order. A failed lookup or a
// missing server block is recorded and the loop moves on; one broken
// declaration never blocks the others. The caller persists the file.
func (i *Injector) Run(cfg *config.Config, file *claudeconfig.File) []Result {
	results := make([]Result, 0, len(cfg.Credentials))

	for _, cred := range cfg.Credentials {
		secret, err := i.source.Fetch(cred)
		if err != nil {
			results = append(results, Result{
				Label:  cred.Label,
				Status: StatusFailed,
				Reason: failureReason(err),
			})
			continue
		}

		// Server blocks are only created for explicitly named targets;
		// a defaulted target that is absent is the user misnaming the
		// declaration key, not a server Claude will lazily create.
		if err := file.SetEnv(cred.MCPServer, cred.EnvVar, secret, cred.ServerExplicit); err != nil {
			reason := failureReason(err)
			if stderrors.Is(err, errors.ErrServerNotFound) {
				reason = fmt.Sprintf("MCP server %q not found", cred.MCPServer)
			}
			results = append(results, Result{
				Label:  cred.Label,
				Status: StatusFailed,
				Reason: reason,
			})
			continue
		}

		results = append(results, Result{Label: cred.Label, Status: StatusInjected})
	}

	return results
}
