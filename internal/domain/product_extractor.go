package domain

import (
	"fmt"
	"regexp"
	"strings"

	"assethub.dev/pkg/assethub/internal/config"
)

// ProductMatch is what a product folder name yields.
type ProductMatch struct {
	Code     string
	Name     string
	Category string
}

// ProductExtractor recognises product folders by name.
type ProductExtractor interface {
	// Extract parses folderName. ok is false when the folder is not a product.
	Extract(folderName string) (match ProductMatch, ok bool)
}

type abbreviation struct {
	pattern     *regexp.Regexp
	replacement string
}

type productExtractor struct {
	pattern         *regexp.Regexp
	prefixes        []string
	abbreviations   []abbreviation
	categories      []config.CategoryRule
	defaultCategory string
}

var separatorRun = regexp.MustCompile(`[_\s]+`)

// NewProductExtractor compiles the product pattern and abbreviation tables of rs.
func NewProductExtractor(rs config.RuleSet) (ProductExtractor, error) {
	pattern, err := regexp.Compile(rs.ProductCodePattern)
	if err != nil {
		return nil, fmt.Errorf("compile product pattern: %w", err)
	}

	abbreviations := make([]abbreviation, 0, len(rs.Abbreviations))

	for _, abbr := range rs.Abbreviations {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(abbr.Token) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile abbreviation %q: %w", abbr.Token, err)
		}

		abbreviations = append(abbreviations, abbreviation{pattern: re, replacement: abbr.Replacement})
	}

	return &productExtractor{
		pattern:         pattern,
		prefixes:        rs.BrandPrefixes,
		abbreviations:   abbreviations,
		categories:      rs.Categories,
		defaultCategory: rs.DefaultCategory,
	}, nil
}

func (pe *productExtractor) Extract(folderName string) (ProductMatch, bool) {
	groups := pe.pattern.FindStringSubmatch(folderName)
	if len(groups) < 3 {
		return ProductMatch{}, false
	}

	code := groups[1]
	raw := strings.TrimSpace(groups[2])

	name := pe.cleanName(raw)
	if name == "" {
		name = raw
	}

	if name == "" {
		name = code
	}

	return ProductMatch{
		Code:     code,
		Name:     name,
		Category: pe.category(name),
	}, true
}

func (pe *productExtractor) cleanName(name string) string {
	name = strings.TrimSpace(separatorRun.ReplaceAllString(name, " "))

	for _, prefix := range pe.prefixes {
		if strings.HasPrefix(name, prefix) {
			name = strings.Trim(name[len(prefix):], " -_")
		}
	}

	for _, abbr := range pe.abbreviations {
		name = abbr.pattern.ReplaceAllLiteralString(name, abbr.replacement)
	}

	return name
}

// category walks the category rules in order; the first with a matching keyword wins.
func (pe *productExtractor) category(name string) string {
	lower := strings.ToLower(name)

	for _, rule := range pe.categories {
		if !containsAnyKeyword(lower, rule.Keywords) {
			continue
		}

		for _, suffix := range rule.SplitSuffixes {
			if strings.Contains(lower, strings.ToLower(suffix)) {
				return rule.Category + " " + strings.ToUpper(suffix)
			}
		}

		return rule.Category
	}

	return pe.defaultCategory
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(s, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}
