package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorsync/internal/app"
	"vendorsync/tests/testutil"
)

// newUpstreamRepo builds the fixture upstream repository: source/,
// include/, tests/ and docs/ trees, tagged v1.2.0.
func newUpstreamRepo(t *testing.T) string {
	t.Helper()
	repoDir := t.TempDir()
	files := map[string]string{
		"CMakeLists.txt":    "project(foo)",
		"LICENSE":           "Apache-2.0",
		"source/foo.c":      "int foo(void) { return 42; }",
		"include/foo/foo.h": "#pragma once\nint foo(void);",
		"tests/foo_test.c":  "void test_foo(void) {}",
		"docs/index.md":     "# foo",
	}
	for rel, content := range files {
		path := filepath.Join(repoDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	testutil.RunGit(t, repoDir, "init", "--initial-branch=main")
	testutil.RunGit(t, repoDir, "add", ".")
	testutil.RunGit(t, repoDir, "commit", "-m", "init")
	testutil.RunGit(t, repoDir, "tag", "v1.2.0")
	return repoDir
}

func newBindingsRoot(t *testing.T, upstream string) string {
	t.Helper()
	root := t.TempDir()
	pkgDir := filepath.Join(root, "foo-sys")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	manifest := fmt.Sprintf(`
[package]
name = "foo-sys"
version = "1.2.0+v1.2.0"
links = "foo"

[package.metadata.aws-c-builder]
repo = %q
include_patterns = ["tests/"]
`, upstream)
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "Cargo.toml"), []byte(manifest), 0644))
	return root
}

func newService(out *bytes.Buffer) app.Service {
	service := app.NewService()
	service.Out = out
	return service
}

func TestApplyEndToEnd(t *testing.T) {
	upstream := newUpstreamRepo(t)
	root := newBindingsRoot(t, upstream)

	out := &bytes.Buffer{}
	result, err := newService(out).Apply(t.Context(), app.ApplyRequest{BindingsRoot: root})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Contains(t, out.String(), "package: foo-sys\n")

	vendorDir := filepath.Join(root, "foo-sys", "foo")
	assert.FileExists(t, filepath.Join(vendorDir, "CMakeLists.txt"))
	assert.FileExists(t, filepath.Join(vendorDir, "LICENSE"))
	assert.FileExists(t, filepath.Join(vendorDir, "source", "foo.c"))
	assert.FileExists(t, filepath.Join(vendorDir, "include", "foo", "foo.h"))
	assert.FileExists(t, filepath.Join(vendorDir, "tests", "foo_test.c"))
	assert.NoDirExists(t, filepath.Join(vendorDir, "docs"))
	assert.NoDirExists(t, filepath.Join(vendorDir, ".git"))
}

func TestApplyIsIdempotentOnStableTag(t *testing.T) {
	upstream := newUpstreamRepo(t)
	root := newBindingsRoot(t, upstream)
	vendorDir := filepath.Join(root, "foo-sys", "foo")

	_, err := newService(&bytes.Buffer{}).Apply(t.Context(), app.ApplyRequest{BindingsRoot: root})
	require.NoError(t, err)
	first := testutil.TreeSnapshot(t, vendorDir)

	_, err = newService(&bytes.Buffer{}).Apply(t.Context(), app.ApplyRequest{BindingsRoot: root})
	require.NoError(t, err)
	second := testutil.TreeSnapshot(t, vendorDir)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("vendored tree changed between applies (-first +second):\n%s", diff)
	}
}

func TestApplyReplacesStaleVendoredContent(t *testing.T) {
	upstream := newUpstreamRepo(t)
	root := newBindingsRoot(t, upstream)
	vendorDir := filepath.Join(root, "foo-sys", "foo")

	stale := filepath.Join(vendorDir, "source", "removed_upstream.c")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("gone"), 0644))

	_, err := newService(&bytes.Buffer{}).Apply(t.Context(), app.ApplyRequest{BindingsRoot: root})
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(vendorDir, "source", "foo.c"))
}

func TestCheckSilentWhenUpToDate(t *testing.T) {
	upstream := newUpstreamRepo(t)
	root := newBindingsRoot(t, upstream)

	out := &bytes.Buffer{}
	result, err := newService(out).Check(t.Context(), app.CheckRequest{BindingsRoot: root})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Outdated)
	if diff := cmp.Diff("package: foo-sys\n", out.String()); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestCheckReportsNewerUpstreamTag(t *testing.T) {
	upstream := newUpstreamRepo(t)
	root := newBindingsRoot(t, upstream)
	testutil.RunGit(t, upstream, "tag", "v1.3.0")

	out := &bytes.Buffer{}
	result, err := newService(out).Check(t.Context(), app.CheckRequest{BindingsRoot: root})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Outdated)
	want := "package: foo-sys\nPackage foo-sys can be updated to v1.3.0\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestApplyWithoutLinksLeavesPackageDirIntact(t *testing.T) {
	upstream := newUpstreamRepo(t)
	root := t.TempDir()
	pkgDir := filepath.Join(root, "no-links")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	manifest := fmt.Sprintf(`
[package]
name = "no-links-sys"
version = "0.1.0+v1.2.0"

[package.metadata.aws-c-builder]
repo = %q
`, upstream)
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "Cargo.toml"), []byte(manifest), 0644))

	out := &bytes.Buffer{}
	_, err := newService(out).Apply(t.Context(), app.ApplyRequest{BindingsRoot: root})
	require.Error(t, err)
	assert.Contains(t, out.String(), "Error in package no-links\n")
	assert.FileExists(t, filepath.Join(pkgDir, "Cargo.toml"))
}

func TestApplyWithBadTagAbortsRun(t *testing.T) {
	upstream := newUpstreamRepo(t)
	root := t.TempDir()
	pkgDir := filepath.Join(root, "foo-sys")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	manifest := fmt.Sprintf(`
[package]
name = "foo-sys"
version = "9.9.9+v9.9.9"
links = "foo"

[package.metadata.aws-c-builder]
repo = %q
`, upstream)
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "Cargo.toml"), []byte(manifest), 0644))

	out := &bytes.Buffer{}
	_, err := newService(out).Apply(t.Context(), app.ApplyRequest{BindingsRoot: root})
	require.Error(t, err)
	assert.Contains(t, out.String(), "Error in package foo-sys\n")
	assert.NoDirExists(t, filepath.Join(pkgDir, "foo"))
}
