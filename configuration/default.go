package configuration

import (
	"os"
	"path/filepath"
)

const DefaultFilename = ".bmoney.bms"

// Default places the file in the home directory. Lang is left empty so the
// language stored in the file can be used.
func Default() Configuration {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return Configuration{
		File: filepath.Join(home, DefaultFilename),
	}
}
