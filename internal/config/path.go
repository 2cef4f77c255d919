package config

import (
	"os"
	"path/filepath"
	"strings"
)

// envKeyReplacer maps nested keys such as database.path onto
// EXPENSES_DATABASE_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// ExpandPath expands a leading ~ and $VAR references in a file path.
// SQLite's :memory: is returned unchanged.
func ExpandPath(path string) string {
	if path == "" || path == ":memory:" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return os.ExpandEnv(path)
}
