package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"vendorsync/internal/core"
	"vendorsync/internal/types"
)

// Apply re-vendors every enabled package under the bindings root from
// its pinned upstream tag.
func (s Service) Apply(ctx context.Context, req ApplyRequest) (ApplyResult, error) {
	result := ApplyResult{}
	failed, err := s.forEachEnabled(ctx, req.BindingsRoot, req.ContinueOnError, func(ctx context.Context, descriptor types.Descriptor) error {
		if err := s.applyPackage(ctx, descriptor); err != nil {
			return err
		}
		result.Applied++
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

func (s Service) applyPackage(ctx context.Context, descriptor types.Descriptor) error {
	// Without links the vendored directory would resolve to the
	// package directory itself and be wiped, so this must hard-fail
	// even when a repo override makes the URL resolvable.
	assert.NotEmpty(ctx, descriptor.Links, "links must be set to apply vendored code")
	if strings.TrimSpace(descriptor.Links) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("package %s has no links and is not eligible for code apply", descriptor.Name))
	}

	tag, err := core.PinnedTag(descriptor)
	if err != nil {
		return err
	}
	repoURL, err := core.RepoURL(descriptor)
	if err != nil {
		return err
	}

	checkoutDir, err := os.MkdirTemp("", "vendorsync-checkout-")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temp directory for checkout").
			WithCause(err)
	}
	defer os.RemoveAll(checkoutDir)

	if err := s.Git.CloneAtTag(ctx, repoURL, tag, checkoutDir); err != nil {
		return err
	}

	vendorDir := filepath.Join(filepath.Dir(descriptor.ManifestPath), descriptor.Links)
	if err := s.Vendor.Replace(checkoutDir, vendorDir, descriptor.Builder.IncludePatterns, descriptor.Builder.ExcludePatterns); err != nil {
		return err
	}
	log.Debug().
		Str("package", descriptor.Name).
		Str("tag", tag).
		Str("vendor_dir", vendorDir).
		Msg("vendored code replaced")
	return nil
}
