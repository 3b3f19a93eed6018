package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"vendorsync/internal/types"
)

const manifestFileName = "Cargo.toml"

// forEachEnabled loads the manifest of every immediate subdirectory of
// the bindings root and invokes fn for each enabled package, printing
// the package name first. os.ReadDir sorts entries by name, so runs
// process packages in a deterministic order.
//
// A failure aborts the walk after naming the offending package
// directory, unless continueOnError is set, in which case the failure
// is logged and counted while the walk continues.
func (s Service) forEachEnabled(ctx context.Context, root string, continueOnError bool, fn func(context.Context, types.Descriptor) error) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("bindings root not found").
			WithCause(err)
	}

	failed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		err := s.processPackage(ctx, filepath.Join(root, entry.Name()), fn)
		if err == nil {
			continue
		}
		fmt.Fprintf(s.Out, "Error in package %s\n", entry.Name())
		if !continueOnError {
			return failed, err
		}
		log.Error().Err(err).Str("package", entry.Name()).Msg("package failed")
		failed++
	}
	return failed, nil
}

func (s Service) processPackage(ctx context.Context, dir string, fn func(context.Context, types.Descriptor) error) error {
	descriptor, err := s.Manifests.Load(filepath.Join(dir, manifestFileName))
	if err != nil {
		return err
	}
	if !descriptor.Builder.Enabled {
		log.Debug().Str("package", descriptor.Name).Msg("builder disabled, skipping")
		return nil
	}
	fmt.Fprintf(s.Out, "package: %s\n", descriptor.Name)
	return fn(ctx, descriptor)
}

func failedRunError(failed int) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("%d packages failed", failed))
}
