package app

import (
	"runtime/debug"
)

const unknownVersion = "N/A"

// Version returns buildVersion, falling back to the main module version
// recorded by the Go toolchain.
func Version(buildVersion string) string {
	if buildVersion != "" {
		return buildVersion
	}
	return moduleVersion(debug.ReadBuildInfo)
}

func moduleVersion(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return unknownVersion
	}
	return info.Main.Version
}
