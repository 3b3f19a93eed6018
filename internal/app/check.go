package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"vendorsync/internal/core"
	"vendorsync/internal/types"
)

// Check reports which enabled packages have a newer upstream tag than
// the one currently pinned. It never mutates local state.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	result := CheckResult{}
	failed, err := s.forEachEnabled(ctx, req.BindingsRoot, req.ContinueOnError, func(ctx context.Context, descriptor types.Descriptor) error {
		outdated, err := s.checkPackage(ctx, descriptor)
		if err != nil {
			return err
		}
		result.Checked++
		if outdated {
			result.Outdated++
		}
		return nil
	})
	result.Failed = failed
	if err != nil {
		return result, err
	}
	if failed > 0 {
		return result, failedRunError(failed)
	}
	return result, nil
}

func (s Service) checkPackage(ctx context.Context, descriptor types.Descriptor) (bool, error) {
	pinned, err := core.PinnedTag(descriptor)
	if err != nil {
		return false, err
	}
	repoURL, err := core.RepoURL(descriptor)
	if err != nil {
		return false, err
	}
	tags, err := s.Git.ListVersionTags(ctx, repoURL)
	if err != nil {
		return false, err
	}

	newest := tags[0]
	if newest == pinned {
		return false, nil
	}
	if ahead, ok := core.TagIsAhead(pinned, newest); ok && !ahead {
		// -v:refname ordering can place an old-style tag first.
		log.Debug().
			Str("package", descriptor.Name).
			Str("pinned", pinned).
			Str("newest", newest).
			Msg("newest tag does not sort ahead of pinned tag")
	}
	fmt.Fprintf(s.Out, "Package %s can be updated to %s\n", descriptor.Name, newest)
	return true, nil
}
