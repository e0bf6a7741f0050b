// Package version reports the build version of alloycomp.
package version

// Set at build time with -ldflags "-X github.com/rshade/alloycomp/pkg/version.version=...".
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version = "dev"
	commit  = ""
)

// GetVersion returns the build version, with the commit appended when known.
func GetVersion() string {
	if commit == "" {
		return version
	}
	return version + " (" + commit + ")"
}
