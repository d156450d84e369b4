// Package prefs persists small per-user view choices between runs.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const viewFile = "view.json"

// View is what the list screen remembers.
type View struct {
	Sort string `json:"sort"`
}

func viewPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "dalil")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, viewFile), nil
}

// SaveView writes v atomically.
func SaveView(v View) error {
	path, err := viewPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadView returns the saved view, or the zero View when nothing was saved.
func LoadView() (View, error) {
	path, err := viewPath()
	if err != nil {
		return View{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return View{}, nil
		}
		return View{}, err
	}
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, err
	}
	return v, nil
}
