package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	appDir    = "ticktimer"
	prefsFile = "prefs.json"
)

// Prefs is the small amount of state remembered between runs.
type Prefs struct {
	LastPreset string    `json:"last_preset,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func prefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, appDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFile), nil
}

func save(p Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load returns the stored prefs, or the zero value when none were saved yet.
func Load() (Prefs, error) {
	path, err := prefsPath()
	if err != nil {
		return Prefs{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Prefs{}, nil
		}
		return Prefs{}, err
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, err
	}
	return p, nil
}

// SaveLastPreset remembers name as the preset to select on the next launch.
func SaveLastPreset(name string) error {
	p, err := Load()
	if err != nil {
		// A corrupt file is replaced rather than blocking the save.
		p = Prefs{}
	}
	p.LastPreset = strings.TrimSpace(name)
	p.UpdatedAt = time.Now().UTC()
	return save(p)
}

// LoadLastPreset returns the remembered preset name, "" when there is none.
func LoadLastPreset() (string, error) {
	p, err := Load()
	if err != nil {
		return "", err
	}
	return p.LastPreset, nil
}
