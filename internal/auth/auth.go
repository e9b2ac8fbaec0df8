// Package auth resolves and checks the credentials used by the remote
// datastore.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hy4ri/taskdex/internal/api"
	"github.com/hy4ri/taskdex/internal/config"
)

// verifyTimeout bounds the request made by Verify.
const verifyTimeout = 15 * time.Second

// ErrNoKey is returned when no source provides an API key.
var ErrNoKey = errors.New("no API key configured")

// ErrRejected is returned when the datastore refuses the key.
var ErrRejected = errors.New("API key rejected")

// ResolveKey returns the API key for the remote datastore, looking at the
// environment, the system keyring, the credentials file and cfg in that
// order.
func ResolveKey(cfg *config.Config) (string, error) {
	key, err := config.GetAPIKey(cfg)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", fmt.Errorf("%w. Please either:\n"+
			"  1. Run 'taskdex login' to store a key in the system keyring, or\n"+
			"  2. Set the %s environment variable, or\n"+
			"  3. Add 'api_key' under 'store' in the config file", ErrNoKey, config.APIKeyEnv)
	}
	return key, nil
}

// Verify reads at most one row of collection to check that the client's
// key is accepted.
func Verify(ctx context.Context, c *api.Client, collection string) error {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	var rows []api.TodoRow
	err := c.SelectLimit(ctx, collection, "id.asc", 1, &rows)
	if err == nil {
		return nil
	}
	if apiErr, ok := api.IsAPIError(err); ok && (apiErr.IsUnauthorized() || apiErr.IsForbidden()) {
		return fmt.Errorf("%w: %s", ErrRejected, apiErr.Message)
	}
	return fmt.Errorf("failed to reach %s: %w", c.BaseURL(), err)
}
