// Package whitelist reads the server's whitelist file, a JSON array of
// records with a "name" field.
package whitelist

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/craftstats/mclogalyzer/internal/domain"
)

type entry struct {
	Name string `json:"name"`
}

// Load returns the whitelisted usernames in file order. A file that is not
// valid JSON, not a list, or contains an entry without a name is an error;
// the report must not silently drop whitelisted players.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read whitelist %s: %w", path, err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse whitelist %s: %w", path, err)
	}

	names := make([]string, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d in %s", domain.ErrWhitelistShape, i, path)
		}
		names = append(names, e.Name)
	}
	return names, nil
}
