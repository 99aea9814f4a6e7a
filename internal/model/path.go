package model

import "strings"

// Path represents a file system path.
type Path string

// ScanRoot is one configured top-level folder whose immediate sub-folders are products.
type ScanRoot struct {
	// Key identifies the root in the index (directory_source), e.g. "human_current".
	Key         string
	Path        Path
	ProductLine string
	Status      string
}

// ResolvedProductLine returns the configured product line or derives it from the key.
func (r ScanRoot) ResolvedProductLine() string {
	if r.ProductLine != "" {
		return r.ProductLine
	}

	if strings.Contains(strings.ToLower(r.Key), "human") {
		return ProductLineHuman
	}

	return ProductLinePet
}

// ResolvedStatus returns the configured status or derives it from the key.
func (r ScanRoot) ResolvedStatus() string {
	if r.Status != "" {
		return r.Status
	}

	if strings.Contains(strings.ToLower(r.Key), "current") {
		return StatusCurrent
	}

	return StatusWorkInProgress
}
