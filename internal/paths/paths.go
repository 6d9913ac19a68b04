// Package paths provides canonical path handling for the engine.
// File identity throughout the graphs is a slash-normalized path; two input
// paths naming the same filesystem entity must compare equal regardless of
// separator style.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize converts a path to a canonical absolute path with forward
// slashes. Symlinks are resolved when the file exists.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			resolved = abs
		} else {
			return "", err
		}
	}
	return filepath.ToSlash(resolved), nil
}

// RepoRelative converts an absolute path to a repo-relative canonical path
// with forward slashes.
func RepoRelative(absolutePath string, repoRoot string) (string, error) {
	resolved, err := Canonicalize(absolutePath)
	if err != nil {
		return "", err
	}
	rootResolved, err := Canonicalize(repoRoot)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(filepath.FromSlash(rootResolved), filepath.FromSlash(resolved))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Normalize converts separators to forward slashes without touching the
// filesystem. Windows-style backslashes are normalized too, so identical
// inputs in either separator style produce the same result.
func Normalize(path string) string {
	return filepath.ToSlash(strings.ReplaceAll(path, "\\", "/"))
}

// IsWithinRepo checks if a path is within the repository root
func IsWithinRepo(path string, repoRoot string) bool {
	rel, err := RepoRelative(path, repoRoot)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// JoinRepo joins a repo root with a slash-normalized relative path using the
// OS separator.
func JoinRepo(repoRoot string, relPath string) string {
	parts := strings.Split(Normalize(relPath), "/")
	return filepath.Join(append([]string{repoRoot}, parts...)...)
}
