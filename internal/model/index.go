package model

import (
	"fmt"
	"sort"
	"time"
)

// IndexFormatVersion is written into every index produced by a scan.
const IndexFormatVersion = "1.0.0"

// ScanMetadata describes the scan that produced an index.
type ScanMetadata struct {
	ScanDate        time.Time `json:"scan_date"`
	SourceDirectory string    `json:"source_directory"`
	TotalProducts   int       `json:"total_products"`
	TotalAssets     int       `json:"total_assets"`
	// ScanDuration is expressed in seconds.
	ScanDuration float64 `json:"scan_duration"`
	Version      string  `json:"version"`
}

// AssetIndex is the persisted snapshot of one scan.
type AssetIndex struct {
	Metadata ScanMetadata            `json:"metadata"`
	Products map[string]*ProductInfo `json:"products"`
}

// CountAssets sums the assets of every product. Nil products count as empty.
func (idx *AssetIndex) CountAssets() int {
	total := 0
	for _, product := range idx.Products {
		if product == nil {
			continue
		}

		total += len(product.Assets)
	}

	return total
}

// Validate checks the count invariants between metadata and products.
func (idx *AssetIndex) Validate() error {
	for code, product := range idx.Products {
		if product == nil {
			return fmt.Errorf("product %s is null", code)
		}

		if product.Code != code {
			return fmt.Errorf("product key %s does not match code %s", code, product.Code)
		}
	}

	if idx.Metadata.TotalProducts != len(idx.Products) {
		return fmt.Errorf("total_products is %d but index holds %d products", idx.Metadata.TotalProducts, len(idx.Products))
	}

	if assets := idx.CountAssets(); idx.Metadata.TotalAssets != assets {
		return fmt.Errorf("total_assets is %d but products hold %d assets", idx.Metadata.TotalAssets, assets)
	}

	return nil
}

// SortedCodes returns the product codes in ascending order.
func (idx *AssetIndex) SortedCodes() []string {
	codes := make([]string, 0, len(idx.Products))
	for code := range idx.Products {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}

// Categories returns the distinct product categories, sorted.
func (idx *AssetIndex) Categories() []string {
	seen := make(map[string]struct{})
	for _, product := range idx.Products {
		seen[product.Category] = struct{}{}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}

	sort.Strings(categories)

	return categories
}

// AssetTypes returns the distinct asset types present, sorted.
func (idx *AssetIndex) AssetTypes() []AssetType {
	seen := make(map[AssetType]struct{})

	for _, product := range idx.Products {
		for _, asset := range product.Assets {
			seen[asset.Type] = struct{}{}
		}
	}

	types := make([]AssetType, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// IndexSummary aggregates an index by category and asset type.
type IndexSummary struct {
	TotalProducts   int
	TotalFiles      int
	TotalSize       int64
	Categories      map[string]int
	AssetTypes      map[AssetType]int
	ProductLines    map[string]int
	ScanDate        time.Time
	SourceDirectory string
}

// Summary computes the per-category and per-type counts of the index.
func (idx *AssetIndex) Summary() IndexSummary {
	summary := IndexSummary{
		TotalProducts:   len(idx.Products),
		Categories:      make(map[string]int),
		AssetTypes:      make(map[AssetType]int),
		ProductLines:    make(map[string]int),
		ScanDate:        idx.Metadata.ScanDate,
		SourceDirectory: idx.Metadata.SourceDirectory,
	}

	for _, product := range idx.Products {
		summary.Categories[product.Category]++
		summary.ProductLines[product.ProductLine]++

		for _, asset := range product.Assets {
			summary.AssetTypes[asset.Type]++
			summary.TotalFiles++
			summary.TotalSize += asset.Size
		}
	}

	return summary
}

// Grouped returns a copy of the index in which multi-format 3D mockups of each product
// are moved from Assets into GroupedAssets. The copy is a display view: its asset
// counts no longer match the metadata, so it is never persisted.
func (idx *AssetIndex) Grouped() *AssetIndex {
	grouped := &AssetIndex{
		Metadata: idx.Metadata,
		Products: make(map[string]*ProductInfo, len(idx.Products)),
	}

	for code, product := range idx.Products {
		groups := product.GroupMockups()

		inGroup := make(map[string]struct{})
		for _, group := range groups {
			for _, asset := range group.Related {
				inGroup[asset.Path] = struct{}{}
			}
		}

		remaining := make([]AssetInfo, 0, len(product.Assets))
		for _, asset := range product.Assets {
			if _, ok := inGroup[asset.Path]; !ok {
				remaining = append(remaining, asset)
			}
		}

		clone := *product
		clone.Assets = remaining
		clone.GroupedAssets = groups
		grouped.Products[code] = &clone
	}

	return grouped
}

// ScanStats tallies what happened during a scan.
type ScanStats struct {
	ProductsProcessed  int
	FilesScanned       int
	ErrorsEncountered  int
	SkippedDirectories int
	MissingRoots       int
	DuplicateCodes     int
	StartTime          time.Time
	EndTime            time.Time
}

// Duration is the wall time of the scan.
func (s ScanStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
