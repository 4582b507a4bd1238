// Build information, injected with -ldflags "-X mergington.dev/activities/internal/pkg/bininfo.Version=...".
// Keep the variable names stable: the release pipeline depends on them.

package bininfo

var (
	// Version is the SemVer version of the binary, with the git commit appended after a plus sign when available.
	Version = "v0.0.0"

	// BuildTime is the RFC3339 time at which the binary was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
