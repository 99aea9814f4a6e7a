package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRuleSet_Validates(t *testing.T) {
	rules := DefaultRuleSet()
	require.NoError(t, rules.Validate())

	allowed := rules.AllowedExtensions()
	for _, ext := range []string{".png", ".psd", ".ai", ".pdf", ".docx", ".zip", ".mov"} {
		_, ok := allowed[ext]
		assert.True(t, ok, ext)
	}

	_, ok := allowed[".exe"]
	assert.False(t, ok)
}

func TestRuleSet_ValidateNormalizesExtensions(t *testing.T) {
	rules := DefaultRuleSet()
	rules.Extensions = map[string][]string{"images": {"PNG", " .Jpg ", ""}}
	rules.DefaultCategory = ""

	require.NoError(t, rules.Validate())
	assert.Equal(t, []string{".png", ".jpg"}, rules.Extensions["images"])
	assert.Equal(t, "Other", rules.DefaultCategory)
}

func TestRuleSet_ValidateLowercasesKeywordTables(t *testing.T) {
	rules := DefaultRuleSet()
	rules.PrintReadyIndicators = []string{"Print Ready", "  ", "FINAL"}
	rules.CurrentIndicators = []string{"Print Ready"}
	rules.SystemFiles = []string{".DS_Store"}
	rules.TempPatterns = []string{"~$", ".TMP"}
	rules.LabelIndicators = []string{"Label"}
	rules.MockupKeyword = " Mock "

	require.NoError(t, rules.Validate())
	assert.Equal(t, []string{"print ready", "final"}, rules.PrintReadyIndicators)
	assert.Equal(t, []string{"print ready"}, rules.CurrentIndicators)
	assert.Equal(t, []string{".ds_store"}, rules.SystemFiles)
	assert.Equal(t, []string{"~$", ".tmp"}, rules.TempPatterns)
	assert.Equal(t, []string{"label"}, rules.LabelIndicators)
	assert.Equal(t, "mock", rules.MockupKeyword)
}

func TestLoadRuleSet_MixedCaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "print_ready_indicators:\n  - Print Ready\ncurrent_indicators:\n  - Print Ready\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRuleSet(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"print ready"}, rules.PrintReadyIndicators)
	assert.Equal(t, []string{"print ready"}, rules.CurrentIndicators)
}

func TestRuleSet_ValidateRejectsBadPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{name: "does not compile", pattern: `^(\d{5}`},
		{name: "missing name group", pattern: `^(\d{5})`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRuleSet()
			rules.ProductCodePattern = tt.pattern
			assert.Error(t, rules.Validate())
		})
	}
}

func TestLoadRuleSet(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		rules, err := LoadRuleSet("")
		require.NoError(t, err)
		assert.Equal(t, DefaultRuleSet().PrintReadyIndicators, rules.PrintReadyIndicators)
	})

	t.Run("file overrides only the tables it names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := "template_indicators:\n  - stencil\nsystem_files:\n  - .ds_store\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		rules, err := LoadRuleSet(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"stencil"}, rules.TemplateIndicators)
		assert.Equal(t, []string{".ds_store"}, rules.SystemFiles)
		assert.Equal(t, DefaultRuleSet().LabelIndicators, rules.LabelIndicators)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRuleSet(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("label_indicators: [unterminated"), 0o644))

		_, err := LoadRuleSet(path)
		assert.Error(t, err)
	})
}

func TestWriteRuleSet_RoundTripAndNoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")

	require.NoError(t, WriteRuleSet(path, DefaultRuleSet()))

	loaded, err := LoadRuleSet(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultRuleSet().Categories, loaded.Categories)
	assert.Equal(t, DefaultRuleSet().Abbreviations, loaded.Abbreviations)

	assert.Error(t, WriteRuleSet(path, DefaultRuleSet()), "existing file must not be overwritten")
}
