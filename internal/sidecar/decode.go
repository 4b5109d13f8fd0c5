package sidecar

import (
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// decodeLossy turns b into a string, replacing ill-formed UTF-8 with
// U+FFFD.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, _, _ := transform.Bytes(runes.ReplaceIllFormed(), b)
	return string(out)
}
