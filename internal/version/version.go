// Package version provides version information for the pagetree CLI.
package version

import "fmt"

// Version is set via ldflags during build.
var Version = "dev"

// ManifestSchemaVersion is bumped when the shape of generated route
// manifests changes. Consumers compare it to detect stale manifests.
const ManifestSchemaVersion = 1

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetManifestSchemaVersion returns the current manifest schema version.
func GetManifestSchemaVersion() int {
	return ManifestSchemaVersion
}

// Banner returns the one-line header written at the top of generated files.
func Banner() string {
	return fmt.Sprintf("Code generated by pagetree %s (schema %d). DO NOT EDIT.", Version, ManifestSchemaVersion)
}
