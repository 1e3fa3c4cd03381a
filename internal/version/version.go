package version

// Version is the current ghreadme version. Release builds override it with
// -ldflags "-X github.com/ghreadme/ghreadme/internal/version.Version=<x.y.z>".
var Version = "0.1.0"

// FullVersion returns the version with the v prefix
func FullVersion() string {
	return "v" + Version
}
