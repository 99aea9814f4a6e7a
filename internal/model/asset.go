// Package model defines the data structures of the asset index.
package model

import (
	"strings"
	"time"
)

// AssetType is the coarse functional tag assigned to an asset file.
type AssetType string

const (
	// AssetPrintReady marks production files sent to the printer.
	AssetPrintReady AssetType = "Print Ready"
	// AssetMockup marks 3-D renders and product visuals.
	AssetMockup AssetType = "3D Mockup"
	// AssetLabel marks label artwork.
	AssetLabel AssetType = "Label Art"
	// AssetBox marks box/carton artwork.
	AssetBox AssetType = "Box Art"
	// AssetArchive marks superseded or draft material.
	AssetArchive AssetType = "Archive"
	// AssetTemplate marks templates and dielines.
	AssetTemplate AssetType = "Template"
	// AssetDocumentation marks reports, specs and change notes.
	AssetDocumentation AssetType = "Documentation"
	// AssetOther is the fallback when no rule matched.
	AssetOther AssetType = "Other"
)

// AllAssetTypes lists every asset type in classification priority order.
var AllAssetTypes = []AssetType{
	AssetPrintReady,
	AssetMockup,
	AssetLabel,
	AssetBox,
	AssetArchive,
	AssetTemplate,
	AssetDocumentation,
	AssetOther,
}

// AssetInfo describes one qualifying file inside a product folder.
type AssetInfo struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	RelativePath string    `json:"relative_path"`
	Type         AssetType `json:"type"`
	IsCurrent    bool      `json:"is_current"`
	Extension    string    `json:"extension"`
	Size         int64     `json:"size"`
	// Modified is nil when the file could not be stat'ed.
	Modified *time.Time       `json:"modified"`
	Activity *ActivitySummary `json:"activity,omitempty"`
}

// ActivitySummary is the condensed temporal analysis stored on an asset when the
// scan runs with temporal analysis enabled.
type ActivitySummary struct {
	ActivityScore   float64       `json:"activity_score"`
	IsRecentWork    bool          `json:"is_recent_work"`
	BestProjectDate *FilenameDate `json:"best_project_date,omitempty"`
}

// FileExtension returns the lower-cased final suffix of name including the dot.
// Dot-files without a further suffix (".DS_Store") have no extension.
func FileExtension(name string) string {
	trimmed := strings.TrimLeft(name, ".")

	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return ""
	}

	return strings.ToLower(trimmed[idx:])
}

// FileStem returns name without its final suffix.
func FileStem(name string) string {
	ext := FileExtension(name)
	if ext == "" {
		return name
	}

	return name[:len(name)-len(ext)]
}
