package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the project manifest file looked for at the root.
const ManifestName = "mojomls.toml"

// FindManifest walks up from startDir to locate mojomls.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the workspace root for startDir. A directory
// carrying mojomls.toml wins; otherwise a chromium checkout is recognized by
// a directory named "src" whose parent contains ".gclient". Falls back to
// startDir itself.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	if manifestPath, found, err := FindManifest(startDir); err != nil {
		return "", false, err
	} else if found {
		return filepath.Dir(manifestPath), true, nil
	}
	if root, found := findChromiumRoot(startDir); found {
		return root, true, nil
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	return abs, false, nil
}

// findChromiumRoot walks up looking for .../src with a sibling .gclient.
func findChromiumRoot(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		if filepath.Base(dir) == "src" {
			gclient := filepath.Join(filepath.Dir(dir), ".gclient")
			if st, err := os.Stat(gclient); err == nil && !st.IsDir() {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
