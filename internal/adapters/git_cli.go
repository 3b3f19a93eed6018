package adapters

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"vendorsync/internal/ports"
	"vendorsync/internal/shared"
)

const tagsRefPrefix = "refs/tags/"

// GitCLIAdapter shells out to the local git client for remote tag
// listing and shallow clones.
type GitCLIAdapter struct{}

func NewGitCLIAdapter() GitCLIAdapter {
	return GitCLIAdapter{}
}

func (a GitCLIAdapter) ListVersionTags(ctx context.Context, repoURL string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git",
		"ls-remote", "--tags", "--refs", "--sort=-v:refname", repoURL)
	output, err := cmd.Output()
	if err != nil {
		cause := err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cause = shared.CommandError(exitErr.Stderr, err)
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("git ls-remote failed").
			WithCause(cause)
	}

	var tags []string
	for _, line := range strings.Split(string(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		_, ref, found := strings.Cut(line, "\t")
		if !found || !strings.HasPrefix(ref, tagsRefPrefix) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("unexpected ref in tag listing").
				WithCause(fmt.Errorf("line %q", line))
		}
		tags = append(tags, strings.TrimPrefix(ref, tagsRefPrefix))
	}
	if len(tags) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no tags found on remote %s", repoURL))
	}
	return tags, nil
}

func (a GitCLIAdapter) CloneAtTag(ctx context.Context, repoURL string, tag string, destDir string) error {
	cmd := exec.CommandContext(ctx, "git",
		"-c", "advice.detachedHead=false",
		"clone", "--quiet", "--branch="+tag, "--depth=1", "--",
		repoURL, destDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to clone %s at tag %s", repoURL, tag)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

var _ ports.GitPort = GitCLIAdapter{}
