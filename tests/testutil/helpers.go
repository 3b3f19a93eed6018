// Package testutil provides shared test helpers used across
// integration and unit test packages.
package testutil

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RunGit runs the git binary in dir with a fixed identity, failing the
// test on a nonzero exit.
func RunGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=vendorsync",
		"GIT_AUTHOR_EMAIL=dev@example.com",
		"GIT_COMMITTER_NAME=vendorsync",
		"GIT_COMMITTER_EMAIL=dev@example.com",
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
}

// TreeSnapshot walks root and returns a map of slash-separated
// relative file paths to file contents, for byte-level tree
// comparisons.
func TreeSnapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	snapshot := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		snapshot[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return snapshot
}
