package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/fittrack/internal/models"
)

func getDraftPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "current_workout.toml"), nil
}

func SaveDraft(draft *models.WorkoutDraft) error {
	path, err := getDraftPath()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(draft)
}

func LoadDraft() (*models.WorkoutDraft, error) {
	path, err := getDraftPath()
	if err != nil {
		return nil, err
	}

	var draft models.WorkoutDraft
	if _, err := toml.DecodeFile(path, &draft); err != nil {
		return nil, err
	}

	return &draft, nil
}

func ClearDraft() error {
	path, err := getDraftPath()
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func DraftExists() bool {
	path, err := getDraftPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return !os.IsNotExist(err)
}

// ParseWorkoutFromTOML reads a workout description to import in one go.
func ParseWorkoutFromTOML(path string) (*models.WorkoutImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var w models.WorkoutImport
	if err := toml.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	return &w, nil
}
