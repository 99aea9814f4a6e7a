package rules

import (
	"strings"

	"assethub.dev/pkg/assethub/internal/config"
	m "assethub.dev/pkg/assethub/internal/model"
)

// Rule assigns Type to any target it matches.
type Rule struct {
	Name  string
	Type  m.AssetType
	Match func(Target) bool
}

// Cascade builds the classification rules in evaluation order. The first
// matching rule wins; a target matching none is m.AssetOther.
func Cascade(rs config.RuleSet) []Rule {
	return []Rule{
		{
			Name: "print_ready",
			Type: m.AssetPrintReady,
			Match: func(t Target) bool {
				return ContainsAny(t.Path, rs.PrintReadyIndicators)
			},
		},
		{
			Name: "mockup_folder",
			Type: m.AssetMockup,
			Match: func(t Target) bool {
				return ContainsAny(t.Path, rs.MockupPathIndicators) && HasExtension(t.Extension, rs.MockupExtensions)
			},
		},
		{
			Name: "mockup_keyword",
			Type: m.AssetMockup,
			Match: func(t Target) bool {
				return rs.MockupKeyword != "" && strings.Contains(t.Path, rs.MockupKeyword) &&
					HasExtension(t.Extension, rs.ImageExtensions)
			},
		},
		{
			Name: "label",
			Type: m.AssetLabel,
			Match: func(t Target) bool {
				return ContainsAny(t.Path, rs.LabelIndicators) || ContainsAny(t.Filename, rs.LabelIndicators)
			},
		},
		{
			Name: "box",
			Type: m.AssetBox,
			Match: func(t Target) bool {
				return ContainsAny(t.Path, rs.BoxIndicators) || ContainsAny(t.Filename, rs.BoxIndicators)
			},
		},
		{
			Name: "archive",
			Type: m.AssetArchive,
			Match: func(t Target) bool {
				return ContainsAny(t.Path, rs.ArchiveTypeIndicators)
			},
		},
		{
			Name: "template",
			Type: m.AssetTemplate,
			Match: func(t Target) bool {
				return ContainsAny(t.Path, rs.TemplateIndicators)
			},
		},
		{
			Name: "documentation",
			Type: m.AssetDocumentation,
			Match: func(t Target) bool {
				return ContainsAny(t.Filename, rs.DocumentIndicators)
			},
		},
		{
			Name: "image_fallback",
			Type: m.AssetMockup,
			Match: func(t Target) bool {
				return HasExtension(t.Extension, rs.ImageExtensions)
			},
		},
		{
			Name: "design_label_fallback",
			Type: m.AssetLabel,
			Match: func(t Target) bool {
				return HasExtension(t.Extension, rs.DesignExtensions) && strings.Contains(t.Filename, "label")
			},
		},
		{
			Name: "design_fallback",
			Type: m.AssetBox,
			Match: func(t Target) bool {
				return HasExtension(t.Extension, rs.DesignExtensions)
			},
		},
	}
}

// Evaluate runs target through rules and returns the type of the first match
// together with the rule name ("" for the default).
func Evaluate(rules []Rule, target Target) (m.AssetType, string) {
	for _, rule := range rules {
		if rule.Match(target) {
			return rule.Type, rule.Name
		}
	}

	return m.AssetOther, ""
}
