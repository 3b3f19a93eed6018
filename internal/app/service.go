package app

import (
	"io"
	"os"

	"vendorsync/internal/adapters"
	"vendorsync/internal/ports"
)

type Service struct {
	Manifests ports.ManifestPort
	Git       ports.GitPort
	Vendor    ports.VendorTreePort

	// Out receives the line-oriented progress output operators read.
	Out io.Writer
}

func NewService() Service {
	return Service{
		Manifests: adapters.NewManifestFileAdapter(),
		Git:       adapters.NewGitCLIAdapter(),
		Vendor:    adapters.NewVendorTreeAdapter(),
		Out:       os.Stdout,
	}
}
