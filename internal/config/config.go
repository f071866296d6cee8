// Package config reads and writes the repository's "[user]" TOML config
// file (spec §6): name is required, email is optional.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/nopeNoshishi/nss/internal/nsserr"
)

// Config mirrors ".nss/config"'s single [user] table.
type Config struct {
	User User `toml:"user"`
}

// User identifies the commit author/committer.
type User struct {
	Name  string `toml:"name"`
	Email string `toml:"email,omitempty"`
}

// Read loads and parses the config file at path. A missing file yields a
// zero-value Config rather than an error, mirroring the teacher's habit of
// creating an empty placeholder config on init.
func Read(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, nsserr.Wrap("config: reading config file", err)
	}
	if len(data) == 0 {
		return Config{}, nil
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, nsserr.Wrap("config: parsing config TOML", err)
	}
	return c, nil
}

// Write serializes cfg and overwrites path.
func Write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nsserr.Wrap("config: encoding config TOML", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nsserr.Wrap("config: writing temp config file", err)
	}
	return nsserr.Wrap("config: renaming temp config file into place", os.Rename(tmp, path))
}

// Signature renders "name <email>" for use as a commit author/committer
// field, or just "name" when email is unset.
func (c Config) Signature() string {
	if c.User.Email == "" {
		return c.User.Name
	}
	return c.User.Name + " <" + c.User.Email + ">"
}
