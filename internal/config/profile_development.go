//go:build !release

package config

// BuildProfile is Development unless the binary is built with -tags release.
const BuildProfile = Development
