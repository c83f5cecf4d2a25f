package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	m "keylens.dev/pkg/keylens/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on when scanning user projects. It intentionally hides
// direct `os` access so the workflow logic can be tested without touching
// the disk.
type SourceFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a stable fingerprint (SHA-256) for the file at path.
	HashFile(path m.Path) (string, error)

	// DetectTestFile attempts to find the Dart test file that covers the
	// provided source file, following the Flutter convention of a test/
	// tree mirroring lib/. Returns "" when no companion test exists.
	DetectTestFile(sourcePath m.Path) (m.Path, error)

	// FileInfo returns metadata for a path so the domain can check
	// existence or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// FindProjectRoot searches for pubspec.yaml walking up the directory tree.
	FindProjectRoot(startPath m.Path) (m.Path, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into
// the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the concrete implementation backed by the local
// filesystem.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be
// wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// DetectTestFile finds the companion *_test.dart file for a source path.
// For lib/foo/bar.dart it checks test/foo/bar_test.dart under the project
// root; outside lib/ it falls back to a sibling bar_test.dart.
func (a *LocalSourceFSAdapter) DetectTestFile(sourcePath m.Path) (m.Path, error) {
	source := string(sourcePath)
	if filepath.Ext(source) != ".dart" {
		return "", nil
	}

	if strings.HasSuffix(source, "_test.dart") {
		return "", nil
	}

	base := strings.TrimSuffix(filepath.Base(source), ".dart")

	if root, err := a.FindProjectRoot(sourcePath); err == nil {
		rel, relErr := filepath.Rel(string(root), source)
		if relErr == nil {
			relSlash := filepath.ToSlash(rel)
			if inLib, ok := strings.CutPrefix(relSlash, "lib/"); ok {
				mirrored := filepath.Join(string(root), "test", filepath.Dir(filepath.FromSlash(inLib)), base+"_test.dart")
				if _, statErr := os.Stat(mirrored); statErr == nil {
					return m.Path(mirrored), nil
				}
			}
		}
	}

	sibling := filepath.Join(filepath.Dir(source), base+"_test.dart")

	if _, err := os.Stat(sibling); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", err
	}

	return m.Path(sibling), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FindProjectRoot searches for pubspec.yaml walking up the directory tree.
func (a *LocalSourceFSAdapter) FindProjectRoot(startPath m.Path) (m.Path, error) {
	dir := string(startPath)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		pubspecPath := filepath.Join(dir, "pubspec.yaml")
		if _, err := os.Stat(pubspecPath); err == nil {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("pubspec.yaml not found in any parent directory of %s", startPath)
		}

		dir = parent
	}
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
