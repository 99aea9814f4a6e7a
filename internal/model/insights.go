package model

// FileInsights is a quick filename-based reading of a single file.
type FileInsights struct {
	IsDesignFile      bool     `json:"is_design_file"`
	IsProductionReady bool     `json:"is_production_ready"`
	EstimatedPurpose  string   `json:"estimated_purpose"`
	QualityIndicators []string `json:"quality_indicators"`
}

// DirectoryStructure describes the sub-folder layout of a product folder.
type DirectoryStructure struct {
	HasMockups     bool     `json:"has_mockups"`
	HasPrintReady  bool     `json:"has_print_ready"`
	HasArchive     bool     `json:"has_archive"`
	SubfolderCount int      `json:"subfolder_count"`
	FileCount      int      `json:"file_count"`
	CommonPatterns []string `json:"common_patterns"`
}
