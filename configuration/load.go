package configuration

import (
	"errors"
	"io/fs"

	"github.com/fulldump/goconfig"
	"github.com/joho/godotenv"
)

// environment nests the configuration so goconfig looks for BMONEY_FILE,
// BMONEY_LANG and so on instead of FILE or LANG.
type environment struct {
	Bmoney Configuration
}

// Load reads the optional .env file of the working directory and then the
// BMONEY_* environment variables. Command line flags belong to the cli.
func Load() (Configuration, error) {
	e := environment{Bmoney: Default()}

	err := LoadEnv()
	if err != nil {
		return e.Bmoney, err
	}

	err = goconfig.FillEnvironments(&e)
	if err != nil {
		return e.Bmoney, err
	}

	return e.Bmoney, nil
}

// LoadEnv exports the variables of the given env files, .env by default.
// Missing files are ignored.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
