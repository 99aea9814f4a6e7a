package domain

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"assethub.dev/pkg/assethub/internal/adapter"
	"assethub.dev/pkg/assethub/internal/config"
	"assethub.dev/pkg/assethub/internal/domain/rules"
	m "assethub.dev/pkg/assethub/internal/model"
)

// Classifier decides whether a file belongs in the index and, if so, its type
// and whether it is the current version.
type Classifier interface {
	// Classify returns the asset type and current flag of path, which lives
	// below the product folder productRoot. included is false for files that
	// are not indexed at all.
	Classify(path, productRoot m.Path) (assetType m.AssetType, isCurrent bool, included bool)
	Insights(path m.Path) m.FileInsights
	DirectoryStructure(dir m.Path) (m.DirectoryStructure, error)
}

type classifier struct {
	adapter.AssetFSAdapter
	rs      config.RuleSet
	cascade []rules.Rule
	allowed map[string]struct{}
	system  map[string]struct{}
}

// NewClassifier creates a Classifier evaluating rs.
func NewClassifier(fsAdapter adapter.AssetFSAdapter, rs config.RuleSet) Classifier {
	system := make(map[string]struct{}, len(rs.SystemFiles))
	for _, name := range rs.SystemFiles {
		system[strings.ToLower(name)] = struct{}{}
	}

	return &classifier{
		AssetFSAdapter: fsAdapter,
		rs:             rs,
		cascade:        rules.Cascade(rs),
		allowed:        rs.AllowedExtensions(),
		system:         system,
	}
}

func (c *classifier) Classify(path, productRoot m.Path) (m.AssetType, bool, bool) {
	name := strings.ToLower(filepath.Base(string(path)))
	ext := m.FileExtension(name)

	if !c.included(name, ext) {
		return "", false, false
	}

	target := rules.Target{
		Path:      normalizedPath(path, productRoot),
		Filename:  name,
		Extension: ext,
	}

	assetType, rule := rules.Evaluate(c.cascade, target)
	slog.Debug("classified asset", "path", path, "type", assetType, "rule", rule)

	return assetType, c.isCurrent(target.Path), true
}

func (c *classifier) included(name, ext string) bool {
	if _, ok := c.allowed[ext]; !ok {
		return false
	}

	if _, ok := c.system[name]; ok {
		return false
	}

	return !rules.ContainsAny(name, c.rs.TempPatterns)
}

// isCurrent applies print-ready, then draft, then the archive indicators.
func (c *classifier) isCurrent(path string) bool {
	if rules.ContainsAny(path, c.rs.CurrentIndicators) {
		return true
	}

	if rules.ContainsAny(path, c.rs.DraftIndicators) {
		return false
	}

	return !rules.ContainsAny(path, c.rs.ArchiveIndicators)
}

// normalizedPath renders path relative to the parent of productRoot, so that only
// the product folder name and what lies below it can carry keywords.
func normalizedPath(path, productRoot m.Path) string {
	rel, err := filepath.Rel(string(productRoot), string(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		return strings.ToLower(filepath.ToSlash(string(path)))
	}

	joined := "/" + filepath.Base(string(productRoot)) + "/" + filepath.ToSlash(rel)

	return strings.ToLower(joined)
}

var (
	designFileExtensions = []string{".ai", ".psd", ".indd"}
	productionKeywords   = []string{"final", "print", "production", "ready"}
	highQualityKeywords  = []string{"high", "hd"}
)

func (c *classifier) Insights(path m.Path) m.FileInsights {
	name := strings.ToLower(filepath.Base(string(path)))
	ext := m.FileExtension(name)

	insights := m.FileInsights{
		IsDesignFile:      rules.HasExtension(ext, designFileExtensions),
		IsProductionReady: rules.ContainsAny(name, productionKeywords),
		EstimatedPurpose:  "unknown",
		QualityIndicators: []string{},
	}

	switch {
	case strings.Contains(name, "mock") || strings.Contains(name, "3d"):
		insights.EstimatedPurpose = "visualization"
	case strings.Contains(name, "label"):
		insights.EstimatedPurpose = "labeling"
	case strings.Contains(name, "box"):
		insights.EstimatedPurpose = "packaging"
	case ext == ".pdf":
		insights.EstimatedPurpose = "documentation"
	}

	if rules.ContainsAny(name, highQualityKeywords) {
		insights.QualityIndicators = append(insights.QualityIndicators, "high_quality")
	}

	if strings.Contains(name, "draft") {
		insights.QualityIndicators = append(insights.QualityIndicators, "draft")
	}

	return insights
}

func (c *classifier) DirectoryStructure(dir m.Path) (m.DirectoryStructure, error) {
	structure := m.DirectoryStructure{CommonPatterns: []string{}}

	subdirs, err := c.ListDirs(dir)
	if err != nil {
		return structure, err
	}

	structure.SubfolderCount = len(subdirs)

	lowered := make([]string, 0, len(subdirs))
	for _, name := range subdirs {
		lowered = append(lowered, strings.ToLower(name))
	}

	if anyNameContains(lowered, "mock", "3d") {
		structure.HasMockups = true
		structure.CommonPatterns = append(structure.CommonPatterns, "mockups")
	}

	if anyNameContains(lowered, "print") {
		structure.HasPrintReady = true
		structure.CommonPatterns = append(structure.CommonPatterns, "print_ready")
	}

	if anyNameContains(lowered, "old", "archive") {
		structure.HasArchive = true
		structure.CommonPatterns = append(structure.CommonPatterns, "archive")
	}

	err = c.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil
		}

		if info.Mode().IsRegular() {
			structure.FileCount++
		}

		return nil
	})

	return structure, err
}

func anyNameContains(names []string, needles ...string) bool {
	for _, name := range names {
		if rules.ContainsAny(name, needles) {
			return true
		}
	}

	return false
}
