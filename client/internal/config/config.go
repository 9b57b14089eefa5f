package config

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = ".resale.yml"

type Config struct {
	// Host is the base URL of the resale server, e.g. https://admin.example.com/
	Host string `yaml:"host"`
}

// Parse reads the config from the working directory, falling back to the
// user's home directory. A missing file yields a zero Config, not an error:
// every command except login works against the host flag default too.
func Parse() (Config, error) {
	c := Config{}
	fi, err := os.Open(fileName)
	if os.IsNotExist(err) {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return c, nil
		}
		fi, err = os.Open(filepath.Join(home, fileName))
		if os.IsNotExist(err) {
			return c, nil
		}
	}
	if err != nil {
		return c, err
	}
	defer fi.Close()

	value, err := io.ReadAll(fi)
	if err != nil {
		return c, err
	}
	if err = yaml.Unmarshal(value, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Write saves the config to the user's home directory.
func Write(c Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	value, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(home, fileName), value, 0o600)
}
