package exporter

import (
	"encoding/json"

	"github.com/nlohse/stash/internal/model"
)

// ExportJSON exports the bookmark array as pretty-printed JSON.
func ExportJSON(store *model.Store) (string, error) {
	data, err := json.MarshalIndent(store.Bookmarks, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
