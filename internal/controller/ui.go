// Package controller renders scan results and index views on the terminal.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "assethub.dev/pkg/assethub/internal/model"
)

// ScanReport is what a finished scan hands to the UI.
type ScanReport struct {
	Index  *m.AssetIndex
	Stats  m.ScanStats
	Output m.Path
	// Backup is empty when no previous index existed.
	Backup m.Path
}

// ProductDetails is one product with optional folder insights.
type ProductDetails struct {
	Product   *m.ProductInfo
	Structure *m.DirectoryStructure
	Insights  map[string]m.FileInsights
}

// UI defines how workflows present their results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayScanStart(ctx context.Context, roots []m.ScanRoot, concurrency int)
	DisplayScanReport(ctx context.Context, report ScanReport) error
	DisplayIndex(ctx context.Context, index *m.AssetIndex) error
	DisplayProduct(ctx context.Context, details ProductDetails) error
	DisplayTimeline(ctx context.Context, timeline m.DirectoryTimeline) error
}

// NewUI returns the interactive TUI on a terminal and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
