package rules

import (
	"path"
	"strings"
	"testing"

	"assethub.dev/pkg/assethub/internal/config"
	m "assethub.dev/pkg/assethub/internal/model"
)

func target(p string) Target {
	p = strings.ToLower(p)
	name := path.Base(p)

	return Target{Path: p, Filename: name, Extension: m.FileExtension(name)}
}

func TestCascade_FirstMatchWins(t *testing.T) {
	cascade := Cascade(config.DefaultRuleSet())

	tests := []struct {
		path     string
		expected m.AssetType
		rule     string
	}{
		{"/12345 Widget/Print Ready/Widget Mockup Label.png", m.AssetPrintReady, "print_ready"},
		{"/12345 Widget/Final/Widget.ai", m.AssetPrintReady, "print_ready"},
		{"/12345 Widget/Mockups/3D/Widget.psd", m.AssetMockup, "mockup_folder"},
		{"/12345 Widget/Old Mockups/Widget_old.psd", m.AssetMockup, "mockup_folder"},
		{"/12345 Widget/Mockups/3D/Widget.ai", m.AssetBox, "design_fallback"},
		{"/12345 Widget/Renders/Mock Front.jpg", m.AssetMockup, "mockup_keyword"},
		{"/12345 Widget/Labels/Front.pdf", m.AssetLabel, "label"},
		{"/12345 Widget/Art/Widget_B_Front.pdf", m.AssetBox, "box"},
		{"/12345 Widget/Art/Packaging Front.pdf", m.AssetBox, "box"},
		{"/12345 Widget/Old/Front.pdf", m.AssetArchive, "archive"},
		{"/12345 Widget/Dieline/Front.pdf", m.AssetTemplate, "template"},
		{"/12345 Widget/Notes/Change Report.docx", m.AssetDocumentation, "documentation"},
		{"/12345 Widget/Renders/Front.png", m.AssetMockup, "image_fallback"},
		{"/12345 Widget/Art/Front.ai", m.AssetBox, "design_fallback"},
		{"/12345 Widget/Video/Front.mp4", m.AssetOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, rule := Evaluate(cascade, target(tt.path))
			if got != tt.expected || rule != tt.rule {
				t.Errorf("Evaluate(%q) = (%v, %q), expected (%v, %q)", tt.path, got, rule, tt.expected, tt.rule)
			}
		})
	}
}

func TestCascade_DesignLabelFallback(t *testing.T) {
	rs := config.DefaultRuleSet()
	rs.LabelIndicators = nil

	got, rule := Evaluate(Cascade(rs), target("/12345 Widget/Art/Front Label.ai"))
	if got != m.AssetLabel || rule != "design_label_fallback" {
		t.Errorf("Evaluate() = (%v, %q), expected (%v, design_label_fallback)", got, rule, m.AssetLabel)
	}
}

func TestCascade_OrderIsStable(t *testing.T) {
	expected := []string{
		"print_ready", "mockup_folder", "mockup_keyword", "label", "box", "archive",
		"template", "documentation", "image_fallback", "design_label_fallback", "design_fallback",
	}

	cascade := Cascade(config.DefaultRuleSet())
	if len(cascade) != len(expected) {
		t.Fatalf("Cascade() has %d rules, expected %d", len(cascade), len(expected))
	}

	for i, rule := range cascade {
		if rule.Name != expected[i] {
			t.Errorf("rule %d = %s, expected %s", i, rule.Name, expected[i])
		}
	}
}

func TestContainsAnyAndHasExtension(t *testing.T) {
	if !ContainsAny("old mockups/front.png", []string{"archive", "old"}) {
		t.Errorf("ContainsAny() missed a needle")
	}

	if ContainsAny("front.png", []string{"", "back"}) {
		t.Errorf("ContainsAny() matched an empty needle")
	}

	if !HasExtension(".psd", []string{".png", ".psd"}) {
		t.Errorf("HasExtension() missed .psd")
	}

	if HasExtension(".ps", []string{".psd"}) {
		t.Errorf("HasExtension() matched a prefix")
	}
}
