package onepass

import (
	"context"
	"os"
	"strings"

	"github.com/1password/onepassword-sdk-go"

	"github.com/astrogilda/credhook/internal/errors"
)

type Client struct {
	op *onepassword.Client
}

// NewClient authenticates against 1Password with a service account token
// taken from OP_SERVICE_ACCOUNT_TOKEN or, failing that, the given token file.
func NewClient(tokenFile string) (*Client, error) {
	token, err := GetToken(tokenFile)
	if err != nil {
		return nil, err
	}

	client, err := onepassword.NewClient(context.Background(),
		onepassword.WithServiceAccountToken(token),
		onepassword.WithIntegrationInfo("credhook MCP credential hooks", "v1.0.0"),
	)
	if err != nil {
		return nil, errors.TokenError("Failed to authenticate with 1Password", tokenFile, err)
	}

	return &Client{op: client}, nil
}

// ResolveSecret resolves an op://vault/item/field reference.
func (c *Client) ResolveSecret(reference string) (string, error) {
	return c.op.Secrets.Resolve(context.Background(), reference)
}

// GetToken returns the service account token from the environment or a file.
func GetToken(tokenFile string) (string, error) {
	if token := os.Getenv("OP_SERVICE_ACCOUNT_TOKEN"); token != "" {
		return strings.TrimSpace(token), nil
	}

	if tokenFile != "" {
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return "", errors.TokenError("Failed to read token file", tokenFile, err)
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return "", errors.TokenError("Token file is empty", tokenFile, nil)
		}
		return token, nil
	}

	return "", errors.TokenError("No token provided: set OP_SERVICE_ACCOUNT_TOKEN or provide a token file", tokenFile, nil)
}
