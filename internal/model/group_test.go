package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockup(name string, size int64) AssetInfo {
	return AssetInfo{
		Name:      name,
		Path:      "/root/12345 Widget/Mockups/" + name,
		Type:      AssetMockup,
		IsCurrent: true,
		Extension: FileExtension(name),
		Size:      size,
	}
}

func TestGroupMockups(t *testing.T) {
	product := &ProductInfo{
		Code: "12345",
		Assets: []AssetInfo{
			mockup("Widget.psd", 300),
			mockup("Widget.png", 100),
			mockup("Widget (2).jpg", 50),
			mockup("Gadget.png", 10),
			{Name: "Widget.ai", Path: "/x/Widget.ai", Type: AssetBox, Extension: ".ai"},
		},
	}

	groups := product.GroupMockups()
	require.Len(t, groups, 1, "singletons and non-mockups are not grouped")

	group := groups[0]
	assert.Equal(t, "Widget", group.BaseName)
	assert.Equal(t, "Widget.png", group.Primary.Name)
	assert.Equal(t, 3, group.TotalAssets())
	assert.Equal(t, int64(450), group.TotalSize())
	assert.Equal(t, []string{"JPG", "PNG", "PSD"}, group.AvailableFormats())
	assert.True(t, group.IsCurrent)

	asset, ok := group.AssetByExtension("PSD")
	require.True(t, ok)
	assert.Equal(t, "Widget.psd", asset.Name)

	_, ok = group.AssetByExtension(".tif")
	assert.False(t, ok)
}

func TestSelectPrimary_Priority(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{name: "png beats everything", files: []string{"a.ai", "a.psd", "a.jpg", "a.png"}, want: "a.png"},
		{name: "jpg beats psd", files: []string{"a.psd", "a.jpg"}, want: "a.jpg"},
		{name: "psd beats ai", files: []string{"a.ai", "a.psd"}, want: "a.psd"},
		{name: "first when nothing ranks", files: []string{"a.tif", "a.webp"}, want: "a.tif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets := make([]AssetInfo, 0, len(tt.files))
			for _, f := range tt.files {
				assets = append(assets, mockup(f, 1))
			}

			assert.Equal(t, tt.want, selectPrimary(assets).Name)
		})
	}
}

func TestGroupBaseName(t *testing.T) {
	assert.Equal(t, "Widget", GroupBaseName("Widget (3).png"))
	assert.Equal(t, "Widget", GroupBaseName("Widget 2.png"))
	assert.Equal(t, "Widget Front", GroupBaseName("Widget Front.psd"))
}

func TestAssetGroup_JSON(t *testing.T) {
	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	png := mockup("Widget.png", 100)
	png.Modified = &modified

	group := AssetGroup{
		BaseName:  "Widget",
		Primary:   png,
		Related:   []AssetInfo{png, mockup("Widget.psd", 200)},
		Type:      AssetMockup,
		IsCurrent: true,
	}

	data, err := json.Marshal(group)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, true, wire["is_grouped"])
	assert.Equal(t, "Widget.png", wire["name"])
	assert.EqualValues(t, 300, wire["size"])
	assert.EqualValues(t, 2, wire["total_assets"])

	var decoded AssetGroup
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, group.BaseName, decoded.BaseName)
	assert.Len(t, decoded.Related, 2)
	assert.Equal(t, "Widget.png", decoded.Primary.Name)
}
