package types

// Manifest mirrors the subset of a binding package's Cargo.toml that
// the vendoring tool reads.
type Manifest struct {
	Package ManifestPackage `toml:"package"`
}

type ManifestPackage struct {
	Name     string           `toml:"name"`
	Version  string           `toml:"version"`
	Links    string           `toml:"links,omitempty"`
	Metadata *PackageMetadata `toml:"metadata,omitempty"`
}

type PackageMetadata struct {
	Builder *BuilderTable `toml:"aws-c-builder,omitempty"`
}

// BuilderTable is the [package.metadata.aws-c-builder] table. Enable
// is a pointer so that a present table with the key omitted can be
// told apart from `enable = false`: the table being present at all
// flips the default to enabled.
type BuilderTable struct {
	Enable          *bool    `toml:"enable,omitempty"`
	Repo            string   `toml:"repo,omitempty"`
	IncludePatterns []string `toml:"include_patterns,omitempty"`
	ExcludePatterns []string `toml:"exclude_patterns,omitempty"`
}

// Descriptor is the loaded, validated view of one binding package's
// vendoring configuration.
type Descriptor struct {
	ManifestPath string
	Name         string
	Version      string
	Links        string
	Builder      BuilderConfig
}

type BuilderConfig struct {
	Enabled         bool
	Repo            string
	IncludePatterns []string
	ExcludePatterns []string
}
