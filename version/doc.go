// Package version reports the unitypackage build version.
//
// Release builds inject Version, Commit and Date with -ldflags. Builds
// without them fall back to debug.ReadBuildInfo(), so `go install` and
// local builds still report the module version and VCS revision:
//
//	-ldflags "-X github.com/dendrascience/unitypackage/version.Version=v1.0.0 -X github.com/dendrascience/unitypackage/version.Commit=abc1234 -X github.com/dendrascience/unitypackage/version.Date=2026-01-01T00:00:00Z"
package version
