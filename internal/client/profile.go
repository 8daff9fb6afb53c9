package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultServerURL is used when no profile names a server
const DefaultServerURL = "http://localhost:8080"

// Profile is the CLI's saved connection settings
type Profile struct {
	ServerURL string `toml:"server_url"`
	Token     string `toml:"token,omitempty"`
	Email     string `toml:"email,omitempty"`
	NATSURL   string `toml:"nats_url,omitempty"`
}

// DefaultProfilePath returns $XDG_CONFIG_HOME/descctl/config.toml or the
// platform equivalent
func DefaultProfilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "descctl", "config.toml"), nil
}

// LoadProfile reads the profile at path. A missing file yields the defaults.
func LoadProfile(path string) (Profile, error) {
	p := Profile{ServerURL: DefaultServerURL}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{ServerURL: DefaultServerURL}, nil
		}
		return Profile{}, err
	}
	if p.ServerURL == "" {
		p.ServerURL = DefaultServerURL
	}
	return p, nil
}

// SaveProfile writes p to path, creating the directory. The file holds a
// token so it is only readable by the owner.
func SaveProfile(path string, p Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}
