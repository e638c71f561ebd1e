package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type whitelistEntry struct {
	Uuid string `json:"uuid"`
	Name string `json:"name"`
}

// NewWhitelistSource reads a server whitelist. Since Minecraft 1.7.6 the
// whitelist is a json document with names and uuids; anything that does not
// parse as json is treated as the old plaintext format with one name per
// line.
func NewWhitelistSource(path string) (Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read the whitelist: %w", err)
	}

	var parsed []whitelistEntry
	if err := json.Unmarshal(content, &parsed); err == nil {
		entries := make([]*Entry, len(parsed))
		for i, whitelisted := range parsed {
			entries[i] = &Entry{
				Username:  whitelisted.Name,
				ProfileId: whitelisted.Uuid,
			}
		}

		return &sliceSource{entries: entries}, nil
	}

	var entries []*Entry
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entries = append(entries, &Entry{Username: line})
	}

	return &sliceSource{entries: entries}, nil
}
