package version

import "runtime/debug"

var (
	// Build-time parameters set via -ldflags
	Version = "unknown"
)

// coltab may be installed with `go install github.com/coltab/coltab@latest`,
// which does not set -ldflags, leaving the version above unset. Instead the
// module version embedded by `go install` is used (it is not embedded by `go
// build`).
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	mainVersion := info.Main.Version
	if mainVersion == "" || mainVersion == "(devel)" {
		// bin not built using `go install`
		return
	}
	// bin built using `go install`
	Version = mainVersion
}
