package model

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"
)

// trailingNumberPattern matches copy counters such as " (2)" or " 3" at the end of a stem.
var trailingNumberPattern = regexp.MustCompile(`\s*\(?\d+\)?$`)

// primaryExtensionPriority decides which member of a group is displayed.
var primaryExtensionPriority = []string{".png", ".jpg", ".jpeg", ".psd", ".ai"}

// AssetGroup collapses the renders of one subject saved in several formats.
type AssetGroup struct {
	BaseName  string
	Primary   AssetInfo
	Related   []AssetInfo
	Type      AssetType
	IsCurrent bool
}

// TotalAssets is the number of files in the group.
func (g AssetGroup) TotalAssets() int {
	return len(g.Related)
}

// TotalSize is the combined size of all members.
func (g AssetGroup) TotalSize() int64 {
	var total int64
	for _, asset := range g.Related {
		total += asset.Size
	}

	return total
}

// Modified is the primary member's modification time.
func (g AssetGroup) Modified() *time.Time {
	return g.Primary.Modified
}

// AvailableFormats returns the sorted, de-duplicated upper-case extensions of the members.
func (g AssetGroup) AvailableFormats() []string {
	seen := make(map[string]struct{}, len(g.Related))
	formats := make([]string, 0, len(g.Related))

	for _, asset := range g.Related {
		format := strings.ToUpper(strings.ReplaceAll(asset.Extension, ".", ""))
		if _, ok := seen[format]; ok {
			continue
		}

		seen[format] = struct{}{}
		formats = append(formats, format)
	}

	sort.Strings(formats)

	return formats
}

// AssetByExtension returns the first member with the given extension, with or without the dot.
func (g AssetGroup) AssetByExtension(extension string) (AssetInfo, bool) {
	want := strings.ToLower(strings.ReplaceAll(extension, ".", ""))

	for _, asset := range g.Related {
		if strings.ToLower(strings.ReplaceAll(asset.Extension, ".", "")) == want {
			return asset, true
		}
	}

	return AssetInfo{}, false
}

type assetGroupJSON struct {
	BaseName         string      `json:"base_name"`
	PrimaryAsset     AssetInfo   `json:"primary_asset"`
	RelatedAssets    []AssetInfo `json:"related_assets"`
	AssetType        AssetType   `json:"asset_type"`
	IsCurrent        bool        `json:"is_current"`
	TotalAssets      int         `json:"total_assets"`
	AvailableFormats []string    `json:"available_formats"`
	IsGrouped        bool        `json:"is_grouped"`
	Name             string      `json:"name"`
	Path             string      `json:"path"`
	RelativePath     string      `json:"relative_path"`
	Extension        string      `json:"extension"`
	Size             int64       `json:"size"`
	Modified         *time.Time  `json:"modified"`
}

// MarshalJSON renders the group so that consumers expecting a plain asset can still
// read name, path and size from it.
func (g AssetGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(assetGroupJSON{
		BaseName:         g.BaseName,
		PrimaryAsset:     g.Primary,
		RelatedAssets:    g.Related,
		AssetType:        g.Type,
		IsCurrent:        g.IsCurrent,
		TotalAssets:      g.TotalAssets(),
		AvailableFormats: g.AvailableFormats(),
		IsGrouped:        true,
		Name:             g.Primary.Name,
		Path:             g.Primary.Path,
		RelativePath:     g.Primary.RelativePath,
		Extension:        g.Primary.Extension,
		Size:             g.TotalSize(),
		Modified:         g.Modified(),
	})
}

// UnmarshalJSON restores a group written by MarshalJSON. Derived fields are ignored.
func (g *AssetGroup) UnmarshalJSON(data []byte) error {
	var wire assetGroupJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*g = AssetGroup{
		BaseName:  wire.BaseName,
		Primary:   wire.PrimaryAsset,
		Related:   wire.RelatedAssets,
		Type:      wire.AssetType,
		IsCurrent: wire.IsCurrent,
	}

	return nil
}

// GroupMockups groups the product's 3D mockups by normalized base name. Only groups
// with more than one member are returned, in the order their base name first appears.
func (p *ProductInfo) GroupMockups() []AssetGroup {
	order := make([]string, 0)
	members := make(map[string][]AssetInfo)

	for _, asset := range p.Assets {
		if asset.Type != AssetMockup {
			continue
		}

		base := GroupBaseName(asset.Name)
		if _, ok := members[base]; !ok {
			order = append(order, base)
		}

		members[base] = append(members[base], asset)
	}

	var groups []AssetGroup

	for _, base := range order {
		assets := members[base]
		if len(assets) < 2 {
			continue
		}

		primary := selectPrimary(assets)
		groups = append(groups, AssetGroup{
			BaseName:  base,
			Primary:   primary,
			Related:   assets,
			Type:      AssetMockup,
			IsCurrent: primary.IsCurrent,
		})
	}

	return groups
}

// GroupBaseName strips the extension and trailing copy counters from a filename.
func GroupBaseName(filename string) string {
	base := trailingNumberPattern.ReplaceAllString(FileStem(filename), "")
	return strings.TrimSpace(base)
}

func selectPrimary(assets []AssetInfo) AssetInfo {
	for _, ext := range primaryExtensionPriority {
		for _, asset := range assets {
			if strings.ToLower(asset.Extension) == ext {
				return asset
			}
		}
	}

	return assets[0]
}
