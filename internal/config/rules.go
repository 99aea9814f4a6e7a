package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryRule assigns a category when any keyword occurs in the cleaned product name.
// When SplitSuffixes is set, the first suffix keyword found in the name is appended to
// the category ("Vital Flora" + "FG" -> "Vital Flora FG").
type CategoryRule struct {
	Category      string   `yaml:"category"`
	Keywords      []string `yaml:"keywords"`
	SplitSuffixes []string `yaml:"split_suffixes,omitempty"`
}

// Abbreviation rewrites a whole-word token case-insensitively.
type Abbreviation struct {
	Token       string `yaml:"token"`
	Replacement string `yaml:"replacement"`
}

// RuleSet holds every keyword table used to turn paths into metadata.
// All keyword matching is done on lower-cased text; extensions carry their dot.
type RuleSet struct {
	ProductCodePattern string              `yaml:"product_code_pattern"`
	BrandPrefixes      []string            `yaml:"brand_prefixes"`
	Abbreviations      []Abbreviation      `yaml:"abbreviations"`
	Categories         []CategoryRule      `yaml:"categories"`
	DefaultCategory    string              `yaml:"default_category"`
	Extensions         map[string][]string `yaml:"extensions"`
	SystemFiles        []string            `yaml:"system_files"`
	TempPatterns       []string            `yaml:"temp_patterns"`

	ArchiveIndicators     []string `yaml:"archive_indicators"`
	CurrentIndicators     []string `yaml:"current_indicators"`
	DraftIndicators       []string `yaml:"draft_indicators"`
	PrintReadyIndicators  []string `yaml:"print_ready_indicators"`
	MockupPathIndicators  []string `yaml:"mockup_path_indicators"`
	MockupExtensions      []string `yaml:"mockup_extensions"`
	MockupKeyword         string   `yaml:"mockup_keyword"`
	ImageExtensions       []string `yaml:"image_extensions"`
	DesignExtensions      []string `yaml:"design_extensions"`
	LabelIndicators       []string `yaml:"label_indicators"`
	BoxIndicators         []string `yaml:"box_indicators"`
	ArchiveTypeIndicators []string `yaml:"archive_type_indicators"`
	TemplateIndicators    []string `yaml:"template_indicators"`
	DocumentIndicators    []string `yaml:"documentation_indicators"`
}

// DefaultRuleSet returns the keyword tables tuned for the packaging share.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		ProductCodePattern: `^(\d{5})[-\s]*(.+)`,
		BrandPrefixes:      []string{"Vital Planet", "VP"},
		Abbreviations: []Abbreviation{
			{Token: "FG", Replacement: "FG"},
			{Token: "SS", Replacement: "SS"},
			{Token: "ct", Replacement: "ct"},
			{Token: "VF", Replacement: "VF"},
			{Token: "IC", Replacement: "IntenseCare"},
		},
		Categories: []CategoryRule{
			{Category: "IntenseCare", Keywords: []string{"intensecare"}, SplitSuffixes: []string{"fg", "ss"}},
			{Category: "Vital Flora", Keywords: []string{"vf", "vital flora"}, SplitSuffixes: []string{"fg", "ss"}},
			{Category: "Organic Flora", Keywords: []string{"organic flora"}},
			{Category: "Amazon Kits", Keywords: []string{"hope", "amazon", "kit"}},
			{Category: "Digestive Health", Keywords: []string{
				"omega", "gut", "liver", "lax", "fiber", "detox",
				"cleanse", "digest", "renew", "boost", "pure",
			}},
		},
		DefaultCategory: "Other",
		Extensions: map[string][]string{
			"images":    {".png", ".jpg", ".jpeg", ".psd", ".ai", ".pdf", ".tiff", ".tif"},
			"documents": {".docx", ".txt", ".indd", ".doc", ".rtf", ".md"},
			"archives":  {".zip", ".rar", ".7z"},
			"videos":    {".mp4", ".mov", ".avi", ".mkv"},
		},
		SystemFiles:  []string{".ds_store", "thumbs.db", "desktop.ini"},
		TempPatterns: []string{".tmp", "~$", ".lock"},
		ArchiveIndicators: []string{
			"old versions", "old mock-ups", "old mock ups", "old mockups",
			"drafts", "archive", "backup", "not used", "unused",
			"previous", "deprecated", "outdated", "old links",
		},
		CurrentIndicators: []string{"print ready"},
		DraftIndicators:   []string{"draft"},
		PrintReadyIndicators: []string{
			"print ready", "print-ready", "printready", "production", "/final/", "sunset",
		},
		MockupPathIndicators: []string{
			"mock ups/3d", "mock-ups/3d", "mockups/3d",
			"old mock-ups", "old mock ups", "old mockups",
			"3d mockups, images, flatbacks, other related",
			"01 - mockups", "00 - 3d",
		},
		MockupExtensions: []string{".png", ".jpg", ".jpeg", ".psd"},
		MockupKeyword:    "mock",
		ImageExtensions:  []string{".png", ".jpg", ".jpeg"},
		DesignExtensions: []string{".ai", ".psd"},
		LabelIndicators: []string{
			"label", "-l", "_l_", "19207l", "19207-l",
			"/labels/", "part 1 label", "part 2 label",
		},
		BoxIndicators: []string{
			"box", "-b", "_b_", "19207b", "19207-b",
			"/box/", "packaging",
		},
		ArchiveTypeIndicators: []string{"old", "draft", "archive", "backup", "not used", "previous"},
		TemplateIndicators:    []string{"template", "dieline", "die line"},
		DocumentIndicators: []string{
			"report", "change", "spec", "instruction", ".docx", ".txt", ".pdf",
		},
	}
}

// AllowedExtensions returns the union of every extension group.
func (r RuleSet) AllowedExtensions() map[string]struct{} {
	allowed := make(map[string]struct{})

	for _, group := range r.Extensions {
		for _, ext := range group {
			allowed[ext] = struct{}{}
		}
	}

	return allowed
}

// Validate normalises the tables and checks the product pattern.
func (r *RuleSet) Validate() error {
	re, err := regexp.Compile(r.ProductCodePattern)
	if err != nil {
		return fmt.Errorf("invalid product_code_pattern: %w", err)
	}

	if re.NumSubexp() < 2 {
		return errors.New("product_code_pattern needs two capture groups (code, name)")
	}

	for group, exts := range r.Extensions {
		r.Extensions[group] = normalizeExtensions(exts)
	}

	r.MockupExtensions = normalizeExtensions(r.MockupExtensions)
	r.ImageExtensions = normalizeExtensions(r.ImageExtensions)
	r.DesignExtensions = normalizeExtensions(r.DesignExtensions)

	for _, table := range []*[]string{
		&r.SystemFiles,
		&r.TempPatterns,
		&r.ArchiveIndicators,
		&r.CurrentIndicators,
		&r.DraftIndicators,
		&r.PrintReadyIndicators,
		&r.MockupPathIndicators,
		&r.LabelIndicators,
		&r.BoxIndicators,
		&r.ArchiveTypeIndicators,
		&r.TemplateIndicators,
		&r.DocumentIndicators,
	} {
		*table = normalizeKeywords(*table)
	}

	r.MockupKeyword = strings.ToLower(strings.TrimSpace(r.MockupKeyword))

	if strings.TrimSpace(r.DefaultCategory) == "" {
		r.DefaultCategory = "Other"
	}

	return nil
}

// normalizeKeywords lower-cases keywords and drops blank ones. Surrounding spaces
// are kept since indicators such as " ss" may rely on them.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))

	for _, keyword := range keywords {
		if strings.TrimSpace(keyword) == "" {
			continue
		}

		out = append(out, strings.ToLower(keyword))
	}

	return out
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))

	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		out = append(out, ext)
	}

	return out
}

// LoadRuleSet reads a YAML rules file on top of the defaults. Tables missing from the
// file keep their default value. An empty path returns the defaults.
func LoadRuleSet(path string) (RuleSet, error) {
	rules := DefaultRuleSet()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return RuleSet{}, fmt.Errorf("read rules file: %w", err)
		}

		if err := yaml.Unmarshal(data, &rules); err != nil {
			return RuleSet{}, fmt.Errorf("parse rules file %s: %w", path, err)
		}
	}

	if err := rules.Validate(); err != nil {
		return RuleSet{}, err
	}

	return rules, nil
}

// WriteRuleSet writes rules as YAML, refusing to overwrite an existing file.
func WriteRuleSet(path string, rules RuleSet) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create rules file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("write rules file: %w", err)
	}

	return file.Close()
}
