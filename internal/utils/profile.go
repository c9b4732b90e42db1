package utils

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/fittrack/internal/models"
)

// ErrNoProfile is returned when nobody has signed up on this machine yet.
var ErrNoProfile = errors.New("no active profile, run `fittrack signup` first")

func getProfilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.toml"), nil
}

// SaveActiveProfile records which profile the CLI acts as.
func SaveActiveProfile(p *models.Profile) error {
	path, err := getProfilePath()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(p)
}

func LoadActiveProfile() (*models.Profile, error) {
	path, err := getProfilePath()
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	if p.ID == "" {
		return nil, ErrNoProfile
	}

	return &p, nil
}

// ClearActiveProfile forgets the active profile. It is not an error when
// none is set.
func ClearActiveProfile() error {
	path, err := getProfilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
