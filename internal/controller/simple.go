package controller

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	m "assethub.dev/pkg/assethub/internal/model"
)

// SimpleUI implements UI by printing plain tables to the command's output.
type SimpleUI struct {
	cmd *cobra.Command

	title   func(a ...interface{}) string
	success func(a ...interface{}) string
	warn    func(a ...interface{}) string
	dim     func(a ...interface{}) string
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:     cmd,
		title:   color.New(color.FgHiCyan, color.Bold).SprintFunc(),
		success: color.New(color.FgHiGreen).SprintFunc(),
		warn:    color.New(color.FgHiYellow).SprintFunc(),
		dim:     color.New(color.FgHiBlack).SprintFunc(),
	}
}

// DisplayScanStart lists the roots about to be scanned.
func (s *SimpleUI) DisplayScanStart(ctx context.Context, roots []m.ScanRoot, concurrency int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", s.title(fmt.Sprintf("Scanning %d root(s) with %d worker(s)", len(roots), concurrency)))

	for _, root := range roots {
		s.printf("  %s %s %s\n", root.Key, s.dim("->"), root.Path)
	}
}

// DisplayScanReport prints the scan tallies and where the index went.
func (s *SimpleUI) DisplayScanReport(ctx context.Context, report ScanReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s\n\n", s.success("Scan complete"))
	s.printf("%s", renderScanStats(report.Stats, report.Index))

	if report.Stats.ErrorsEncountered > 0 {
		s.printf("\n%s\n", s.warn(fmt.Sprintf("%d error(s) while scanning, see the log for details", report.Stats.ErrorsEncountered)))
	}

	s.printf("\nIndex written to %s\n", report.Output)

	if report.Backup != "" {
		s.printf("Previous index backed up to %s\n", report.Backup)
	}

	return nil
}

// DisplayIndex prints the index summary followed by the product list.
func (s *SimpleUI) DisplayIndex(ctx context.Context, index *m.AssetIndex) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n\n", s.title("Asset index"))
	s.printf("%s\n", renderIndexSummary(index))

	if len(index.Products) == 0 {
		s.printf("%s\n", s.dim("No products"))
		return nil
	}

	s.printf("%s", renderProductList(index))

	return nil
}

// DisplayProduct prints one product and its assets.
func (s *SimpleUI) DisplayProduct(ctx context.Context, details ProductDetails) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if details.Product == nil {
		return fmt.Errorf("no product to display")
	}

	s.printf("%s", renderProduct(details))

	return nil
}

// DisplayTimeline prints the activity timeline of a directory.
func (s *SimpleUI) DisplayTimeline(ctx context.Context, timeline m.DirectoryTimeline) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n\n", s.title("Activity timeline"))
	s.printf("%s", renderTimeline(timeline))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
