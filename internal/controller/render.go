package controller

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	m "assethub.dev/pkg/assethub/internal/model"
)

const (
	timeLayout = "2006-01-02 15:04"
	dateLayout = "2006-01-02"
	checkMark  = "✓"
	noValue    = "-"
)

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator(" ")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func formatSize(size int64) string {
	if size < 0 {
		size = 0
	}

	return humanize.Bytes(uint64(size))
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return noValue
	}

	return t.Local().Format(timeLayout)
}

func formatCurrent(current bool) string {
	if current {
		return checkMark
	}

	return ""
}

func renderScanStats(stats m.ScanStats, index *m.AssetIndex) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Products", strconv.Itoa(index.Metadata.TotalProducts)},
		{"Assets", strconv.Itoa(index.Metadata.TotalAssets)},
		{"Files scanned", strconv.Itoa(stats.FilesScanned)},
		{"Folders skipped", strconv.Itoa(stats.SkippedDirectories)},
		{"Missing roots", strconv.Itoa(stats.MissingRoots)},
		{"Duplicate codes", strconv.Itoa(stats.DuplicateCodes)},
		{"Errors", strconv.Itoa(stats.ErrorsEncountered)},
		{"Duration", stats.Duration().Round(time.Millisecond).String()},
	})
	table.Render()

	return buf.String()
}

func renderCounts(title string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var buf bytes.Buffer

	table := newTable(&buf, []string{title, "Count"})
	for _, key := range keys {
		table.Append([]string{key, strconv.Itoa(counts[key])})
	}

	table.Render()

	return buf.String()
}

func renderIndexSummary(index *m.AssetIndex) string {
	summary := index.Summary()

	var b strings.Builder

	fmt.Fprintf(&b, "Source:   %s\n", summary.SourceDirectory)
	fmt.Fprintf(&b, "Scanned:  %s (%s)\n", summary.ScanDate.Local().Format(timeLayout), humanize.Time(summary.ScanDate))
	fmt.Fprintf(&b, "Products: %d\n", summary.TotalProducts)
	fmt.Fprintf(&b, "Files:    %d (%s)\n\n", summary.TotalFiles, formatSize(summary.TotalSize))

	types := make(map[string]int, len(summary.AssetTypes))
	for assetType, count := range summary.AssetTypes {
		types[string(assetType)] = count
	}

	b.WriteString(renderCounts("Category", summary.Categories))
	b.WriteString("\n")
	b.WriteString(renderCounts("Asset type", types))

	return b.String()
}

func renderProductList(index *m.AssetIndex) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Code", "Name", "Category", "Line", "Status", "Assets", "Size"})

	for _, code := range index.SortedCodes() {
		product := index.Products[code]
		assets := len(product.Assets)

		for _, group := range product.GroupedAssets {
			assets += group.TotalAssets()
		}

		table.Append([]string{
			product.Code,
			product.Name,
			product.Category,
			product.ProductLine,
			product.Status,
			strconv.Itoa(assets),
			formatSize(product.TotalSize() + groupedSize(product.GroupedAssets)),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("%d products", len(index.Products)), "", "", "", "", "", ""})
	table.Render()

	return buf.String()
}

func groupedSize(groups []m.AssetGroup) int64 {
	var total int64
	for _, group := range groups {
		total += group.TotalSize()
	}

	return total
}

func renderProductHeader(product *m.ProductInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", product.Code, product.Name)
	fmt.Fprintf(&b, "Category: %s\n", product.Category)
	fmt.Fprintf(&b, "Line:     %s / %s (%s)\n", product.ProductLine, product.Status, product.DirectorySource)
	fmt.Fprintf(&b, "Folder:   %s\n", product.FolderPath)

	return b.String()
}

func renderAssets(assets []m.AssetInfo, insights map[string]m.FileInsights) string {
	var buf bytes.Buffer

	header := []string{"Type", "Name", "Current", "Ext", "Size", "Modified"}
	if insights != nil {
		header = append(header, "Purpose")
	}

	table := newTable(&buf, header)

	for _, asset := range assets {
		row := []string{
			string(asset.Type),
			asset.RelativePath,
			formatCurrent(asset.IsCurrent),
			asset.Extension,
			formatSize(asset.Size),
			formatTime(asset.Modified),
		}

		if insights != nil {
			row = append(row, insights[asset.Path].EstimatedPurpose)
		}

		table.Append(row)
	}

	table.Render()

	return buf.String()
}

func renderGroups(groups []m.AssetGroup) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Mockup", "Formats", "Primary", "Files", "Size", "Modified"})

	for _, group := range groups {
		table.Append([]string{
			group.BaseName,
			strings.Join(group.AvailableFormats(), ", "),
			group.Primary.Name,
			strconv.Itoa(group.TotalAssets()),
			formatSize(group.TotalSize()),
			formatTime(group.Modified()),
		})
	}

	table.Render()

	return buf.String()
}

func renderStructure(structure m.DirectoryStructure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subfolders: %d  Files: %d\n", structure.SubfolderCount, structure.FileCount)
	fmt.Fprintf(&b, "Mockups: %s  Print ready: %s  Archive: %s\n",
		yesNo(structure.HasMockups), yesNo(structure.HasPrintReady), yesNo(structure.HasArchive))

	if len(structure.CommonPatterns) > 0 {
		fmt.Fprintf(&b, "Patterns: %s\n", strings.Join(structure.CommonPatterns, ", "))
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

func renderProduct(details ProductDetails) string {
	product := details.Product

	var b strings.Builder

	b.WriteString(renderProductHeader(product))
	b.WriteString("\n")

	if len(product.Assets) == 0 && len(product.GroupedAssets) == 0 {
		b.WriteString("No assets\n")
	}

	if len(product.GroupedAssets) > 0 {
		b.WriteString(renderGroups(product.GroupedAssets))
		b.WriteString("\n")
	}

	if len(product.Assets) > 0 {
		b.WriteString(renderAssets(product.Assets, details.Insights))
	}

	if details.Structure != nil {
		b.WriteString("\n")
		b.WriteString(renderStructure(*details.Structure))
	}

	return b.String()
}

func renderTimeline(timeline m.DirectoryTimeline) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Directory:       %s\n", timeline.Directory)
	fmt.Fprintf(&b, "Files:           %d (%d recent)\n", timeline.TotalFiles, timeline.RecentWorkFiles)
	fmt.Fprintf(&b, "Latest activity: %s (%s)\n",
		timeline.LatestActivity.Local().Format(timeLayout), humanize.Time(timeline.LatestActivity))

	if timeline.EarliestProjectDate != nil {
		fmt.Fprintf(&b, "Earliest date:   %s\n", timeline.EarliestProjectDate.Format(dateLayout))
	}

	fmt.Fprintf(&b, "Activity:        high %d, medium %d, low %d\n",
		timeline.Activity.High, timeline.Activity.Medium, timeline.Activity.Low)

	if len(timeline.BestProjectDates) > 0 {
		var buf bytes.Buffer

		table := newTable(&buf, []string{"Project date", "Pattern", "Match", "Confidence"})
		for _, d := range timeline.BestProjectDates {
			table.Append([]string{
				d.Date.Format(dateLayout),
				d.PatternType,
				d.MatchText,
				strconv.FormatFloat(d.Confidence, 'f', 2, 64),
			})
		}

		table.Render()
		b.WriteString("\n")
		b.WriteString(buf.String())
	}

	if len(timeline.TopFiles) > 0 {
		var buf bytes.Buffer

		table := newTable(&buf, []string{"Score", "Recent", "Size", "Modified", "File"})
		for _, file := range timeline.TopFiles {
			modified := file.Modified

			table.Append([]string{
				strconv.FormatFloat(file.ActivityScore, 'f', 2, 64),
				formatCurrent(file.IsRecentWork),
				formatSize(file.Size),
				formatTime(&modified),
				file.Path,
			})
		}

		table.Render()
		b.WriteString("\n")
		b.WriteString(buf.String())
	}

	return b.String()
}
