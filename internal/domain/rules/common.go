// Package rules holds the ordered asset-type classification cascade.
package rules

import "strings"

// Target is a file as seen by the rules. Every field is lower-cased.
type Target struct {
	// Path is "/<product folder>/<relative path>" with forward slashes.
	Path      string
	Filename  string
	Extension string
}

// ContainsAny reports whether s contains any of the needles.
func ContainsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(s, needle) {
			return true
		}
	}

	return false
}

// HasExtension reports whether ext is one of exts.
func HasExtension(ext string, exts []string) bool {
	for _, candidate := range exts {
		if ext == candidate {
			return true
		}
	}

	return false
}
