package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"

	"vendorsync/internal/ports"
	"vendorsync/internal/types"
)

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Load(path string) (types.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest not found").
			WithCause(err)
	}
	var manifest types.Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse manifest toml").
			WithCause(err)
	}

	pkg := manifest.Package
	if strings.TrimSpace(pkg.Name) == "" {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest package.name must be set")
	}
	if strings.TrimSpace(pkg.Version) == "" {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest package.version must be set")
	}

	descriptor := types.Descriptor{
		ManifestPath: path,
		Name:         pkg.Name,
		Version:      pkg.Version,
		Links:        pkg.Links,
	}

	var table *types.BuilderTable
	if pkg.Metadata != nil {
		table = pkg.Metadata.Builder
	}
	if table != nil {
		// Presence of the aws-c-builder table flips the default for
		// enable to true; an absent table leaves the package disabled.
		descriptor.Builder = types.BuilderConfig{
			Enabled:         table.Enable == nil || *table.Enable,
			Repo:            table.Repo,
			IncludePatterns: table.IncludePatterns,
			ExcludePatterns: table.ExcludePatterns,
		}
	}
	return descriptor, nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
