package model

import "sort"

// Product line and status values stamped on products by the scan roots.
const (
	ProductLineHuman = "Human"
	ProductLinePet   = "Pet"

	StatusCurrent        = "Current"
	StatusWorkInProgress = "Work in Progress"
)

// ProductInfo is one packaging SKU and the assets found in its folder.
type ProductInfo struct {
	Code            string       `json:"code"`
	Name            string       `json:"name"`
	Category        string       `json:"category"`
	FolderPath      string       `json:"folder_path"`
	DirectorySource string       `json:"directory_source"`
	ProductLine     string       `json:"product_line"`
	Status          string       `json:"status"`
	Assets          []AssetInfo  `json:"assets"`
	GroupedAssets   []AssetGroup `json:"grouped_assets,omitempty"`
}

// SortAssets orders assets by type, then name, then relative path.
func (p *ProductInfo) SortAssets() {
	sort.SliceStable(p.Assets, func(i, j int) bool {
		a, b := p.Assets[i], p.Assets[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}

		if a.Name != b.Name {
			return a.Name < b.Name
		}

		return a.RelativePath < b.RelativePath
	})
}

// AssetCounts returns the number of assets per type.
func (p *ProductInfo) AssetCounts() map[AssetType]int {
	counts := make(map[AssetType]int)
	for _, asset := range p.Assets {
		counts[asset.Type]++
	}

	return counts
}

// CurrentAssets returns the assets flagged as current.
func (p *ProductInfo) CurrentAssets() []AssetInfo {
	return p.filterAssets(true)
}

// ArchivedAssets returns the assets flagged as archived.
func (p *ProductInfo) ArchivedAssets() []AssetInfo {
	return p.filterAssets(false)
}

func (p *ProductInfo) filterAssets(current bool) []AssetInfo {
	var out []AssetInfo

	for _, asset := range p.Assets {
		if asset.IsCurrent == current {
			out = append(out, asset)
		}
	}

	return out
}

// TotalSize sums the byte size of every asset.
func (p *ProductInfo) TotalSize() int64 {
	var total int64
	for _, asset := range p.Assets {
		total += asset.Size
	}

	return total
}
