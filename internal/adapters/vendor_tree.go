package adapters

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"

	"vendorsync/internal/ports"
)

// defaultIncludePatterns is the fixed set of paths vendored for every
// package, matched before any per-package include patterns.
var defaultIncludePatterns = []string{
	"cmake/",
	"CMakeLists.txt",
	"include/",
	"LICENSE",
	"source/",
}

// VendorTreeAdapter populates vendored directories from upstream
// checkouts via whole-directory replacement.
type VendorTreeAdapter struct{}

func NewVendorTreeAdapter() VendorTreeAdapter {
	return VendorTreeAdapter{}
}

func (a VendorTreeAdapter) Replace(checkoutDir string, vendorDir string, includes []string, excludes []string) error {
	if _, err := os.Stat(vendorDir); err == nil {
		if err := os.RemoveAll(vendorDir); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to remove vendored directory").
				WithCause(err)
		}
	}

	patterns := append(append([]string(nil), defaultIncludePatterns...), includes...)
	for _, pattern := range patterns {
		matches, err := globTree(checkoutDir, pattern)
		if err != nil {
			return err
		}
		for _, rel := range matches {
			if err := moveEntry(filepath.Join(checkoutDir, rel), filepath.Join(vendorDir, rel)); err != nil {
				return err
			}
		}
	}

	// Excludes are a post-filter over the populated destination; they
	// never prevent a path from being moved in the first place.
	for _, pattern := range excludes {
		matches, err := globTree(vendorDir, pattern)
		if err != nil {
			return err
		}
		for _, rel := range matches {
			if err := os.RemoveAll(filepath.Join(vendorDir, rel)); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to prune excluded path").
					WithCause(err)
			}
		}
	}
	return nil
}

// globTree matches a glob pattern against root, returning relative
// paths. A trailing slash restricts matches to directories.
func globTree(root string, pattern string) ([]string, error) {
	trimmed := strings.TrimSuffix(pattern, "/")
	if trimmed == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty glob pattern")
	}
	matches, err := doublestar.Glob(os.DirFS(root), trimmed)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid glob pattern " + pattern).
			WithCause(err)
	}
	if trimmed == pattern {
		return matches, nil
	}
	var dirs []string
	for _, match := range matches {
		info, err := os.Stat(filepath.Join(root, match))
		if err != nil {
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, match)
		}
	}
	return dirs, nil
}

// moveEntry relocates a file or directory, replacing any existing
// destination. Rename is tried first; a copy-and-delete fallback
// covers temp directories on a different filesystem.
func moveEntry(src string, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create vendored parent directory").
			WithCause(err)
	}
	if _, err := os.Stat(dst); err == nil {
		if err := os.RemoveAll(dst); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to replace existing vendored path").
				WithCause(err)
		}
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyTree(src, dst); err != nil {
		return err
	}
	if err := os.RemoveAll(src); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove moved source path").
			WithCause(err)
	}
	return nil
}

func copyTree(src string, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat source path").
			WithCause(err)
	}
	switch {
	case info.IsDir():
		if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create destination directory").
				WithCause(err)
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read source directory").
				WithCause(err)
		}
		for _, entry := range entries {
			if err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read symlink").
				WithCause(err)
		}
		if err := os.Symlink(target, dst); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to recreate symlink").
				WithCause(err)
		}
		return nil
	default:
		return copyFile(src, dst, info.Mode().Perm())
	}
}

func copyFile(src string, dst string, perm os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open source file").
			WithCause(err)
	}
	defer srcFile.Close()
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create destination file").
			WithCause(err)
	}
	defer dstFile.Close()
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy file").
			WithCause(err)
	}
	return nil
}

var _ ports.VendorTreePort = VendorTreeAdapter{}
