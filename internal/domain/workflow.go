package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"assethub.dev/pkg/assethub/internal/adapter"
	"assethub.dev/pkg/assethub/internal/controller"
	m "assethub.dev/pkg/assethub/internal/model"
)

// ErrProductNotFound is returned when a product code is not in the index.
var ErrProductNotFound = errors.New("product not found")

// DefaultTopFiles is the number of most active files listed by Activity.
const DefaultTopFiles = 10

// ScanArgs contains the arguments for scanning the asset roots.
type ScanArgs struct {
	Roots       []m.ScanRoot
	Output      m.Path
	Concurrency int
	// Temporal attaches an activity summary to every asset.
	Temporal bool
}

// ShowArgs contains the arguments for displaying a saved index.
type ShowArgs struct {
	Index   m.Path
	Grouped bool
}

// ProductArgs contains the arguments for displaying one product.
type ProductArgs struct {
	Index    m.Path
	Code     string
	Grouped  bool
	Insights bool
}

// ActivityArgs contains the arguments for the activity timeline of a directory.
type ActivityArgs struct {
	Dir m.Path
	Top int
}

// Workflow defines the user-facing operations of assethub.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
	Show(ctx context.Context, args ShowArgs) error
	Product(ctx context.Context, args ProductArgs) error
	Activity(ctx context.Context, args ActivityArgs) error
}

type workflow struct {
	adapter.AssetFSAdapter
	adapter.IndexStore
	controller.UI
	ProductExtractor
	Classifier
	TemporalAnalyzer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.AssetFSAdapter,
	store adapter.IndexStore,
	ui controller.UI,
	extractor ProductExtractor,
	classifier Classifier,
	temporal TemporalAnalyzer,
) Workflow {
	return &workflow{
		AssetFSAdapter:   fsAdapter,
		IndexStore:       store,
		UI:               ui,
		ProductExtractor: extractor,
		Classifier:       classifier,
		TemporalAnalyzer: temporal,
	}
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	concurrency := args.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	var temporal TemporalAnalyzer
	if args.Temporal {
		temporal = w.TemporalAnalyzer
	}

	scanner := NewDirectoryScanner(w.AssetFSAdapter, w.ProductExtractor, w.Classifier, temporal)
	orchestrator := NewScanOrchestrator(w.AssetFSAdapter, scanner, concurrency)

	w.DisplayScanStart(ctx, args.Roots, concurrency)

	result, err := orchestrator.Scan(ctx, args.Roots)
	if err != nil {
		slog.Error("Failed to scan asset roots", "error", err)
		return fmt.Errorf("scan: %w", err)
	}

	backup, err := w.Save(ctx, result.Index, args.Output)
	if err != nil {
		slog.Error("Failed to save index", "output", args.Output, "error", err)
		return fmt.Errorf("save index: %w", err)
	}

	err = w.DisplayScanReport(ctx, controller.ScanReport{
		Index:  result.Index,
		Stats:  result.Stats,
		Output: args.Output,
		Backup: backup,
	})
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Show(ctx context.Context, args ShowArgs) error {
	index, err := w.Load(ctx, args.Index)
	if err != nil {
		slog.Error("Failed to load index", "path", args.Index, "error", err)
		return fmt.Errorf("load index: %w", err)
	}

	if args.Grouped {
		index = index.Grouped()
	}

	if err := w.DisplayIndex(ctx, index); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Product(ctx context.Context, args ProductArgs) error {
	index, err := w.Load(ctx, args.Index)
	if err != nil {
		slog.Error("Failed to load index", "path", args.Index, "error", err)
		return fmt.Errorf("load index: %w", err)
	}

	if args.Grouped {
		index = index.Grouped()
	}

	product, ok := index.Products[args.Code]
	if !ok {
		return fmt.Errorf("%s: %w", args.Code, ErrProductNotFound)
	}

	details := controller.ProductDetails{Product: product}

	if args.Insights {
		details.Insights = w.assetInsights(product)

		structure, err := w.DirectoryStructure(m.Path(product.FolderPath))
		if err != nil {
			slog.Warn("Failed to read product folder", "path", product.FolderPath, "error", err)
		} else {
			details.Structure = &structure
		}
	}

	if err := w.DisplayProduct(ctx, details); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) assetInsights(product *m.ProductInfo) map[string]m.FileInsights {
	insights := make(map[string]m.FileInsights, len(product.Assets))

	for _, asset := range product.Assets {
		insights[asset.Path] = w.Insights(m.Path(asset.Path))
	}

	for _, group := range product.GroupedAssets {
		for _, asset := range group.Related {
			insights[asset.Path] = w.Insights(m.Path(asset.Path))
		}
	}

	return insights
}

func (w *workflow) Activity(ctx context.Context, args ActivityArgs) error {
	top := args.Top
	if top < 1 {
		top = DefaultTopFiles
	}

	timeline, err := w.AnalyzeDirectoryTimeline(ctx, args.Dir, top)
	if err != nil {
		slog.Error("Failed to analyze directory", "dir", args.Dir, "error", err)
		return fmt.Errorf("analyze %s: %w", args.Dir, err)
	}

	if err := w.DisplayTimeline(ctx, timeline); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}
