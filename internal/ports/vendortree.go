package ports

// VendorTreePort replaces a vendored directory with a filtered copy of
// an upstream checkout.
type VendorTreePort interface {
	// Replace deletes vendorDir if it exists, moves glob matches for
	// the default include set plus includes from checkoutDir into it,
	// then prunes excludes matches from the result.
	Replace(checkoutDir string, vendorDir string, includes []string, excludes []string) error
}
