package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed mojomls.toml.
type Manifest struct {
	Project ProjectSection `toml:"project"`
	Check   CheckSection   `toml:"check"`
}

// ProjectSection names the project and optionally re-roots import
// resolution to a subdirectory.
type ProjectSection struct {
	Name string `toml:"name"`
	Root string `toml:"root"`
}

// CheckSection tunes batch checking.
type CheckSection struct {
	MaxErrors uint     `toml:"max_errors"`
	Exclude   []string `toml:"exclude"`
}

// LoadManifest parses a mojomls.toml file.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("project", "root") {
		root := strings.TrimSpace(m.Project.Root)
		if filepath.IsAbs(root) {
			return Manifest{}, fmt.Errorf("%s: [project].root must be relative", path)
		}
		m.Project.Root = filepath.Clean(root)
	}
	return m, nil
}

// ImportRoot resolves the directory import paths are relative to, given the
// directory the manifest lives in.
func (m Manifest) ImportRoot(manifestDir string) string {
	if m.Project.Root == "" || m.Project.Root == "." {
		return manifestDir
	}
	return filepath.Join(manifestDir, m.Project.Root)
}

// Excluded reports whether a path is under one of the excluded directories.
func (m Manifest) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, ex := range m.Check.Exclude {
		ex = strings.Trim(filepath.ToSlash(ex), "/")
		if ex == "" {
			continue
		}
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return true
		}
	}
	return false
}
