//go:build release

package config

// BuildProfile is Production for binaries built with -tags release.
const BuildProfile = Production
