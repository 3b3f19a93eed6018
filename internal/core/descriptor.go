package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	goversion "github.com/hashicorp/go-version"

	"vendorsync/internal/types"
)

// RepoURL returns the upstream repository URL for a descriptor: the
// explicit override when set, otherwise the canonical awslabs URL
// derived from the links name.
func RepoURL(d types.Descriptor) (string, error) {
	if strings.TrimSpace(d.Builder.Repo) != "" {
		return d.Builder.Repo, nil
	}
	if strings.TrimSpace(d.Links) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("package %s has neither a repo override nor links", d.Name))
	}
	return fmt.Sprintf("https://github.com/awslabs/%s.git", d.Links), nil
}

// PinnedTag extracts the upstream tag from the descriptor version.
// Versions follow `<semver>+<tag>`; everything after the first '+' is
// the tag currently vendored.
func PinnedTag(d types.Descriptor) (string, error) {
	_, tag, found := strings.Cut(d.Version, "+")
	if !found || tag == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("missing repo tag in version %q of package %s", d.Version, d.Name))
	}
	return tag, nil
}

// TagIsAhead reports whether candidate is a strictly newer version
// than pinned. The second return value is false when either tag does
// not parse as a version, in which case no judgement is made.
func TagIsAhead(pinned string, candidate string) (bool, bool) {
	pinnedVersion, err := goversion.NewVersion(strings.TrimPrefix(pinned, "v"))
	if err != nil {
		return false, false
	}
	candidateVersion, err := goversion.NewVersion(strings.TrimPrefix(candidate, "v"))
	if err != nil {
		return false, false
	}
	return candidateVersion.GreaterThan(pinnedVersion), true
}
