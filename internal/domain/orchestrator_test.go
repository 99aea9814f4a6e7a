package domain

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "assethub.dev/pkg/assethub/internal/model"
)

// panicScanner panics for one directory and delegates the rest.
type panicScanner struct {
	DirectoryScanner
	dir string
}

func (p panicScanner) ScanProduct(ctx context.Context, dir m.Path) (ProductScan, error) {
	if string(dir) == p.dir {
		panic("scanner exploded")
	}

	return p.DirectoryScanner.ScanProduct(ctx, dir)
}

type testTree struct {
	base   string
	roots  []m.ScanRoot
	widget string
	flora  string
}

func newTestTree(t *testing.T) testTree {
	t.Helper()

	base := t.TempDir()
	human := filepath.Join(base, "Human", "Current")
	pet := filepath.Join(base, "Pet", "Work in Progress")

	widget := writeWidgetProduct(t, human)
	writeFile(t, filepath.Join(human, "Misc", "Widget.png"), 10, time.Time{})
	writeFile(t, filepath.Join(human, ".cache", "Widget.png"), 10, time.Time{})

	flora := filepath.Join(pet, "23456 - Vital Planet - Vital Flora FG 60ct")
	writeFile(t, filepath.Join(flora, "Art", "Flora-L.ai"), 50, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	return testTree{
		base: base,
		roots: []m.ScanRoot{
			{Key: "human_current", Path: m.Path(human)},
			{Key: "pet_wip", Path: m.Path(pet)},
		},
		widget: widget,
		flora:  flora,
	}
}

func newTestOrchestrator(t *testing.T, fs *stubFS, concurrency int) ScanOrchestrator {
	t.Helper()

	return NewScanOrchestrator(fs, newTestScanner(t, fs, nil), concurrency)
}

func TestScanOrchestrator_Scan(t *testing.T) {
	tree := newTestTree(t)
	orch := newTestOrchestrator(t, newStubFS(), 2)

	result, err := orch.Scan(context.Background(), tree.roots)
	require.NoError(t, err)

	index := result.Index
	require.NoError(t, index.Validate())
	require.Len(t, index.Products, 2)

	widget := index.Products["12345"]
	require.NotNil(t, widget)
	assert.Equal(t, "human_current", widget.DirectorySource)
	assert.Equal(t, m.ProductLineHuman, widget.ProductLine)
	assert.Equal(t, m.StatusCurrent, widget.Status)
	assert.Equal(t, tree.widget, widget.FolderPath)
	require.Len(t, widget.Assets, 3)

	byName := map[string]m.AssetInfo{}
	for _, asset := range widget.Assets {
		byName[asset.Name] = asset
	}

	assert.Equal(t, m.AssetPrintReady, byName["Widget.png"].Type)
	assert.True(t, byName["Widget.png"].IsCurrent)
	assert.Equal(t, m.AssetMockup, byName["Widget_old.psd"].Type)
	assert.False(t, byName["Widget_old.psd"].IsCurrent)

	flora := index.Products["23456"]
	require.NotNil(t, flora)
	assert.Equal(t, "pet_wip", flora.DirectorySource)
	assert.Equal(t, m.ProductLinePet, flora.ProductLine)
	assert.Equal(t, m.StatusWorkInProgress, flora.Status)
	assert.Equal(t, "Vital Flora FG", flora.Category)
	require.Len(t, flora.Assets, 1)
	assert.Equal(t, m.AssetLabel, flora.Assets[0].Type)

	assert.Equal(t, 2, index.Metadata.TotalProducts)
	assert.Equal(t, 4, index.Metadata.TotalAssets)
	assert.Equal(t, m.IndexFormatVersion, index.Metadata.Version)
	assert.Contains(t, index.Metadata.SourceDirectory, string(tree.roots[0].Path))
	assert.Contains(t, index.Metadata.SourceDirectory, string(tree.roots[1].Path))
	assert.GreaterOrEqual(t, index.Metadata.ScanDuration, 0.0)

	stats := result.Stats
	assert.Equal(t, 2, stats.ProductsProcessed)
	assert.Equal(t, 6, stats.FilesScanned)
	assert.Equal(t, 2, stats.SkippedDirectories)
	assert.Zero(t, stats.ErrorsEncountered)
	assert.Zero(t, stats.MissingRoots)
	assert.Zero(t, stats.DuplicateCodes)
	assert.False(t, stats.EndTime.Before(stats.StartTime))
}

func TestScanOrchestrator_Idempotent(t *testing.T) {
	tree := newTestTree(t)
	orch := newTestOrchestrator(t, newStubFS(), 4)

	first, err := orch.Scan(context.Background(), tree.roots)
	require.NoError(t, err)

	second, err := orch.Scan(context.Background(), tree.roots)
	require.NoError(t, err)

	assert.Equal(t, first.Index.Products, second.Index.Products)
	assert.Equal(t, first.Index.Metadata.TotalAssets, second.Index.Metadata.TotalAssets)
}

func TestScanOrchestrator_FailureIsolation(t *testing.T) {
	tree := newTestTree(t)

	fs := newStubFS()
	fs.failList[tree.flora] = true

	result, err := newTestOrchestrator(t, fs, 4).Scan(context.Background(), tree.roots)
	require.NoError(t, err)

	assert.Len(t, result.Index.Products, 1)
	assert.Contains(t, result.Index.Products, "12345")
	assert.Equal(t, 1, result.Stats.ErrorsEncountered)
	require.NoError(t, result.Index.Validate())
}

func TestScanOrchestrator_RecoversPanics(t *testing.T) {
	tree := newTestTree(t)

	fs := newStubFS()
	scanner := panicScanner{DirectoryScanner: newTestScanner(t, fs, nil), dir: tree.widget}

	result, err := NewScanOrchestrator(fs, scanner, 2).Scan(context.Background(), tree.roots)
	require.NoError(t, err)

	assert.Len(t, result.Index.Products, 1)
	assert.Contains(t, result.Index.Products, "23456")
	assert.Equal(t, 1, result.Stats.ErrorsEncountered)
}

func TestScanOrchestrator_DuplicateCodes(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "first")
	second := filepath.Join(base, "second")

	writeFile(t, filepath.Join(first, "12345 Widget", "Widget.png"), 10, time.Time{})
	writeFile(t, filepath.Join(first, "12345 Widget v2", "Widget.png"), 10, time.Time{})
	writeFile(t, filepath.Join(first, "23456 Gadget", "Gadget.png"), 10, time.Time{})
	writeFile(t, filepath.Join(second, "23456 Gadget Refresh", "Gadget.png"), 10, time.Time{})

	roots := []m.ScanRoot{
		{Key: "human_current", Path: m.Path(first)},
		{Key: "human_wip", Path: m.Path(second)},
	}

	for i := 0; i < 5; i++ {
		result, err := newTestOrchestrator(t, newStubFS(), 4).Scan(context.Background(), roots)
		require.NoError(t, err)

		products := result.Index.Products
		require.Len(t, products, 2)
		assert.Equal(t, "Widget v2", products["12345"].Name)
		assert.Equal(t, "Gadget Refresh", products["23456"].Name)
		assert.Equal(t, "human_wip", products["23456"].DirectorySource)
		assert.Equal(t, m.StatusWorkInProgress, products["23456"].Status)
		assert.Equal(t, 2, result.Stats.DuplicateCodes)
		assert.Equal(t, 4, result.Stats.ProductsProcessed)
		require.NoError(t, result.Index.Validate())
	}
}

func TestScanOrchestrator_MissingRoots(t *testing.T) {
	tree := newTestTree(t)
	orch := newTestOrchestrator(t, newStubFS(), 4)

	roots := append([]m.ScanRoot{{Key: "pet_current", Path: m.Path(filepath.Join(tree.base, "nope"))}}, tree.roots...)

	result, err := orch.Scan(context.Background(), roots)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.MissingRoots)
	assert.Len(t, result.Index.Products, 2)

	_, err = orch.Scan(context.Background(), roots[:1])
	assert.ErrorIs(t, err, ErrMissingRoot)

	_, err = orch.Scan(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingRoot)
}

func TestScanOrchestrator_EmptyRoot(t *testing.T) {
	root := t.TempDir()

	result, err := newTestOrchestrator(t, newStubFS(), 4).Scan(context.Background(), []m.ScanRoot{{Key: "human_current", Path: m.Path(root)}})
	require.NoError(t, err)
	assert.Empty(t, result.Index.Products)
	assert.NotNil(t, result.Index.Products)
	assert.Zero(t, result.Index.Metadata.TotalAssets)
}

func TestScanOrchestrator_Canceled(t *testing.T) {
	tree := newTestTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOrchestrator(t, newStubFS(), 4).Scan(ctx, tree.roots)
	assert.ErrorIs(t, err, context.Canceled)
}
