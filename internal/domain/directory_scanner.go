package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"assethub.dev/pkg/assethub/internal/adapter"
	m "assethub.dev/pkg/assethub/internal/model"
)

// ProductScan is the outcome of scanning one product folder.
type ProductScan struct {
	// Product is nil when the folder name is not a product.
	Product      *m.ProductInfo
	FilesScanned int
	Errors       int
}

// DirectoryScanner turns one product folder into a ProductInfo.
type DirectoryScanner interface {
	ScanProduct(ctx context.Context, dir m.Path) (ProductScan, error)
}

type directoryScanner struct {
	adapter.AssetFSAdapter
	ProductExtractor
	Classifier
	temporal TemporalAnalyzer
}

// NewDirectoryScanner creates a DirectoryScanner. When temporal is nil assets
// carry no activity summary.
func NewDirectoryScanner(
	fsAdapter adapter.AssetFSAdapter,
	extractor ProductExtractor,
	classifier Classifier,
	temporal TemporalAnalyzer,
) DirectoryScanner {
	return &directoryScanner{
		AssetFSAdapter:   fsAdapter,
		ProductExtractor: extractor,
		Classifier:       classifier,
		temporal:         temporal,
	}
}

func (ds *directoryScanner) ScanProduct(ctx context.Context, dir m.Path) (ProductScan, error) {
	match, ok := ds.Extract(filepath.Base(string(dir)))
	if !ok {
		return ProductScan{}, nil
	}

	scan := ProductScan{
		Product: &m.ProductInfo{
			Code:       match.Code,
			Name:       match.Name,
			Category:   match.Category,
			FolderPath: string(dir),
			Assets:     []m.AssetInfo{},
		},
	}

	err := ds.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if path == string(dir) {
				return walkErr
			}

			scan.Errors++
			slog.Warn("skipping unreadable entry", "product", match.Code, "path", path, "error", walkErr)

			return nil
		}

		if info.IsDir() {
			return nil
		}

		scan.FilesScanned++

		asset, included := ds.buildAsset(ctx, m.Path(path), dir, &scan)
		if included {
			scan.Product.Assets = append(scan.Product.Assets, asset)
		}

		return nil
	})
	if err != nil {
		return ProductScan{}, fmt.Errorf("scan product %s: %w", dir, err)
	}

	scan.Product.SortAssets()

	return scan, nil
}

func (ds *directoryScanner) buildAsset(ctx context.Context, path, productDir m.Path, scan *ProductScan) (m.AssetInfo, bool) {
	assetType, isCurrent, included := ds.Classify(path, productDir)
	if !included {
		return m.AssetInfo{}, false
	}

	name := filepath.Base(string(path))

	rel, err := ds.RelPath(productDir, path)
	if err != nil {
		rel = m.Path(name)
	}

	asset := m.AssetInfo{
		Name:         name,
		Path:         string(path),
		RelativePath: string(rel),
		Type:         assetType,
		IsCurrent:    isCurrent,
		Extension:    m.FileExtension(name),
	}

	info, err := ds.FileInfo(path)
	if err != nil {
		scan.Errors++
		slog.Warn("could not stat asset", "path", path, "error", err)
	} else {
		modified := info.ModTime()
		asset.Size = info.Size()
		asset.Modified = &modified
	}

	if ds.temporal != nil && asset.Modified != nil {
		activity, err := ds.temporal.AnalyzeFileActivity(ctx, path)
		if err != nil {
			slog.Debug("temporal analysis failed", "path", path, "error", err)
		} else {
			asset.Activity = activity.Summary()
		}
	}

	return asset, true
}
