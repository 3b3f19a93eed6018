package ports

import "context"

// GitPort runs the read-only and clone operations this tool needs from
// the local git client.
type GitPort interface {
	// ListVersionTags returns the remote's tag names sorted by
	// descending version precedence; the first element is the newest.
	ListVersionTags(ctx context.Context, repoURL string) ([]string, error)

	// CloneAtTag performs a shallow single-branch clone of the
	// repository at the given tag into destDir, which must exist and
	// be empty.
	CloneAtTag(ctx context.Context, repoURL string, tag string, destDir string) error
}
