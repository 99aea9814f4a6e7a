package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"assethub.dev/pkg/assethub/internal/adapter"
	"assethub.dev/pkg/assethub/internal/config"
	m "assethub.dev/pkg/assethub/internal/model"
)

// DefaultConcurrency bounds the product folders scanned at once.
const DefaultConcurrency = 4

// ErrMissingRoot is returned when none of the requested scan roots exist.
var ErrMissingRoot = errors.New("no scan root exists")

// ScanResult is the index built by a scan together with its tallies.
type ScanResult struct {
	Index *m.AssetIndex
	Stats m.ScanStats
}

// ScanOrchestrator scans every product folder below a set of roots and merges
// the products into one index.
type ScanOrchestrator interface {
	Scan(ctx context.Context, roots []m.ScanRoot) (ScanResult, error)
}

type scanOrchestrator struct {
	adapter.AssetFSAdapter
	scanner     DirectoryScanner
	concurrency int
	now         func() time.Time
}

// NewScanOrchestrator creates a ScanOrchestrator. A concurrency below 1 uses
// DefaultConcurrency.
func NewScanOrchestrator(fsAdapter adapter.AssetFSAdapter, scanner DirectoryScanner, concurrency int) ScanOrchestrator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	return &scanOrchestrator{
		AssetFSAdapter: fsAdapter,
		scanner:        scanner,
		concurrency:    concurrency,
		now:            time.Now,
	}
}

type productJob struct {
	root   int
	folder string
	dir    m.Path
}

type productResult struct {
	job  productJob
	scan ProductScan
	err  error
}

// rootProducts holds the products of one root keyed by code, with the folder
// each one came from.
type rootProducts struct {
	products map[string]*m.ProductInfo
	folders  map[string]string
}

// collector is owned by the aggregator goroutine; workers never touch it.
type collector struct {
	logger *slog.Logger
	roots  []rootProducts
	stats  m.ScanStats
}

func (so *scanOrchestrator) Scan(ctx context.Context, roots []m.ScanRoot) (ScanResult, error) {
	logger := slog.With("scan_id", uuid.NewString())
	start := so.now()

	logger.Info("scan started", "roots", len(roots), "concurrency", so.concurrency)

	jobs, stats, err := so.listProducts(logger, roots)
	if err != nil {
		return ScanResult{}, err
	}

	stats.StartTime = start

	col := &collector{
		logger: logger,
		roots:  make([]rootProducts, len(roots)),
		stats:  stats,
	}
	for i := range col.roots {
		col.roots[i] = rootProducts{
			products: make(map[string]*m.ProductInfo),
			folders:  make(map[string]string),
		}
	}

	results := make(chan productResult)
	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range results {
			col.add(result, roots)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(so.concurrency)

	for _, job := range jobs {
		job := job

		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			result := so.scanProduct(gctx, job, logger)
			results <- result

			if result.err != nil && gctx.Err() != nil {
				return gctx.Err()
			}

			return nil
		})
	}

	waitErr := g.Wait()

	close(results)
	<-done

	if err := ctx.Err(); err != nil {
		logger.Warn("scan canceled", "error", err)
		return ScanResult{}, fmt.Errorf("scan canceled: %w", err)
	}

	if waitErr != nil {
		return ScanResult{}, fmt.Errorf("scan products: %w", waitErr)
	}

	col.stats.EndTime = so.now()

	index := col.buildIndex(roots)

	logger.Info("scan finished",
		"products", index.Metadata.TotalProducts,
		"assets", index.Metadata.TotalAssets,
		"files", col.stats.FilesScanned,
		"errors", col.stats.ErrorsEncountered,
		"duplicates", col.stats.DuplicateCodes,
		"duration", col.stats.Duration(),
	)

	return ScanResult{Index: index, Stats: col.stats}, nil
}

// listProducts enumerates the candidate product folders of every root in root
// order. Hidden folders are skipped.
func (so *scanOrchestrator) listProducts(logger *slog.Logger, roots []m.ScanRoot) ([]productJob, m.ScanStats, error) {
	var (
		jobs  []productJob
		stats m.ScanStats
	)

	if len(roots) == 0 {
		return nil, stats, fmt.Errorf("no roots given: %w", ErrMissingRoot)
	}

	for i, root := range roots {
		dirs, err := so.ListDirs(root.Path)
		if err != nil {
			if adapter.IsNotExist(err) {
				stats.MissingRoots++
				logger.Warn("scan root does not exist", "root", root.Key, "path", root.Path)

				continue
			}

			stats.ErrorsEncountered++
			logger.Error("failed to list scan root", "root", root.Key, "path", root.Path, "error", err)

			continue
		}

		for _, name := range dirs {
			if strings.HasPrefix(name, ".") {
				stats.SkippedDirectories++
				continue
			}

			jobs = append(jobs, productJob{
				root:   i,
				folder: name,
				dir:    m.Path(filepath.Join(string(root.Path), name)),
			})
		}
	}

	if stats.MissingRoots == len(roots) {
		logger.Error("no scan root exists", "roots", config.SourceDescription(roots))
		return nil, stats, fmt.Errorf("%s: %w", config.SourceDescription(roots), ErrMissingRoot)
	}

	return jobs, stats, nil
}

func (so *scanOrchestrator) scanProduct(ctx context.Context, job productJob, logger *slog.Logger) (result productResult) {
	result.job = job

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while scanning product", "dir", job.dir, "panic", r)
			result.scan = ProductScan{}
			result.err = fmt.Errorf("panic scanning %s: %v", job.dir, r)
		}
	}()

	result.scan, result.err = so.scanner.ScanProduct(ctx, job.dir)

	return result
}

func (c *collector) add(result productResult, roots []m.ScanRoot) {
	c.stats.FilesScanned += result.scan.FilesScanned
	c.stats.ErrorsEncountered += result.scan.Errors

	if result.err != nil {
		if !errors.Is(result.err, context.Canceled) && !errors.Is(result.err, context.DeadlineExceeded) {
			c.stats.ErrorsEncountered++
			c.logger.Error("failed to scan product folder", "dir", result.job.dir, "error", result.err)
		}

		return
	}

	product := result.scan.Product
	if product == nil {
		c.stats.SkippedDirectories++
		c.logger.Debug("folder is not a product", "dir", result.job.dir)

		return
	}

	root := roots[result.job.root]
	product.DirectorySource = root.Key
	product.ProductLine = root.ResolvedProductLine()
	product.Status = root.ResolvedStatus()

	c.stats.ProductsProcessed++

	bucket := c.roots[result.job.root]

	previous, exists := bucket.folders[product.Code]
	if exists {
		c.stats.DuplicateCodes++
		c.logger.Warn("duplicate product code in root",
			"code", product.Code, "root", root.Key, "folders", []string{previous, result.job.folder})

		if result.job.folder < previous {
			return
		}
	}

	bucket.products[product.Code] = product
	bucket.folders[product.Code] = result.job.folder
}

// buildIndex merges the roots in order; a later root replaces an earlier
// product with the same code.
func (c *collector) buildIndex(roots []m.ScanRoot) *m.AssetIndex {
	products := make(map[string]*m.ProductInfo)

	for i, bucket := range c.roots {
		for code, product := range bucket.products {
			if earlier, exists := products[code]; exists {
				c.stats.DuplicateCodes++
				c.logger.Warn("duplicate product code across roots",
					"code", code, "kept", roots[i].Key, "replaced", earlier.DirectorySource)
			}

			products[code] = product
		}
	}

	index := &m.AssetIndex{
		Metadata: m.ScanMetadata{
			ScanDate:        c.stats.StartTime,
			SourceDirectory: config.SourceDescription(roots),
			TotalProducts:   len(products),
			ScanDuration:    c.stats.Duration().Seconds(),
			Version:         m.IndexFormatVersion,
		},
		Products: products,
	}
	index.Metadata.TotalAssets = index.CountAssets()

	return index
}
