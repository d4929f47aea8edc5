package version

import "fmt"

// Set at build time with -ldflags "-X github.com/opencost/filterkit/pkg/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "HEAD"
)

// FriendlyVersion renders the version and commit, e.g. "v0.3.0 (1a2b3c4)".
func FriendlyVersion() string {
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}
