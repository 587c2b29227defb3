package profile

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const (
	profileDir = ".config/mongo-bootstrap"
)

// HomeDir returns the CLI home directory
func HomeDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, profileDir), nil
}
