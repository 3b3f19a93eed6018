package ports

import "vendorsync/internal/types"

// ManifestPort loads a binding package's Cargo.toml into a Descriptor.
type ManifestPort interface {
	Load(path string) (types.Descriptor, error)
}
