// Package version carries the build version, overridden at release time via
// -ldflags "-X github.com/veldtec/talentctl/internal/version.Version=...".
package version

var Version = "dev"
