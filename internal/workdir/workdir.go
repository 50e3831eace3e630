// Package workdir locates the .dlg state of a project and the files kept in
// it, so every git worktree and subdirectory of a project shares one forms
// database and log.
package workdir

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/marcus/dialog/internal/config"
)

const (
	rootFile = ".dlg-root"
	stateDir = ".dlg"
)

// Layout is the resolved location of a project's state.
type Layout struct {
	// Base is the directory that holds (or will hold) .dlg.
	Base string
}

// Find returns the layout for a command started in dir.
//
// Starting at dir and walking up to the git top level, the first directory
// carrying a .dlg-root redirect or a .dlg directory wins. Outside git only dir
// itself is checked. With no marker anywhere, Base is dir so the first
// command creates .dlg where it was run.
func Find(dir string) Layout {
	if dir == "" {
		return Layout{}
	}
	dir = filepath.Clean(dir)

	for _, d := range candidates(dir) {
		if target, ok := readRootFile(d); ok {
			return Layout{Base: target}
		}
		if hasStateDir(d) {
			return Layout{Base: d}
		}
	}
	return Layout{Base: dir}
}

// candidates lists dir and its parents up to and including the git top level.
func candidates(dir string) []string {
	dirs := []string{dir}

	top, err := gitTopLevel(dir)
	if err != nil || top == "" {
		return dirs
	}
	top = filepath.Clean(top)

	rel, err := filepath.Rel(top, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		// dir is not below the reported top level; check both, nothing between.
		if top != dir {
			dirs = append(dirs, top)
		}
		return dirs
	}

	for d := dir; d != top; {
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		dirs = append(dirs, parent)
		d = parent
	}
	return dirs
}

// Path resolves a config path against Base. Absolute paths are kept.
func (l Layout) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Base, p)
}

// DBPath returns the database path: override when set, else the configured one.
func (l Layout) DBPath(cfg *config.Config, override string) string {
	if override != "" {
		return l.Path(override)
	}
	return l.Path(cfg.DBPath)
}

// OpenLog opens the configured log file for appending, creating its
// directory on first use.
func (l Layout) OpenLog(cfg *config.Config) (*os.File, error) {
	path := l.Path(cfg.LogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// readRootFile returns the directory named in dir/.dlg-root, relative paths
// resolved against dir.
func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}

func hasStateDir(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, stateDir))
	return err == nil && fi.IsDir()
}

// gitTopLevel is replaced in tests.
var gitTopLevel = func(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
