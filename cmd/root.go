// Package cmd provides the root command and CLI setup for assethub.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"assethub.dev/pkg/assethub/internal/adapter"
	"assethub.dev/pkg/assethub/internal/config"
	"assethub.dev/pkg/assethub/internal/controller"
	"assethub.dev/pkg/assethub/internal/domain"
	m "assethub.dev/pkg/assethub/internal/model"
)

var fsAdapter adapter.AssetFSAdapter
var indexStore adapter.IndexStore
var workflow domain.Workflow
var ui controller.UI

// outputFlag is a root-level flag shared by commands that read or write the index.
var outputFlag string

// verboseFlag switches the log file to debug level.
var verboseFlag bool

// rulesFlag points at a YAML file overriding the classification tables.
var rulesFlag string

func init() {
	configureRootFlags(rootCmd)

	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalAssetFSAdapter()
}

const rootLongDescription = `Assethub inventories the packaging design share. It walks the product
folders under each configured root, classifies every design file it finds
(print ready, mockups, dielines, labels, archives) and writes a JSON index
that can be browsed per product or grouped by file family.

Roots are configured in assethub.yaml under source.roots; run "assethub init"
to generate the file with the default layout.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "assethub",
		Short:        "Packaging design asset inventory",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputFlag, outputFlagName, "o",
			config.DefaultOutput,
			"path of the JSON asset index",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), config.OutputKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&rulesFlag, "rules", "", "YAML file overriding the classification rules")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("rules"), config.RulesFileKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// currentWorkflow returns the shared workflow, building it from the loaded
// configuration on first use.
func currentWorkflow() (domain.Workflow, error) {
	if workflow != nil {
		return workflow, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	wf, err := newWorkflow(cfg)
	if err != nil {
		return nil, err
	}

	workflow = wf

	return workflow, nil
}

func newWorkflow(cfg config.Config) (domain.Workflow, error) {
	rules, err := config.LoadRuleSet(cfg.Rules.File)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	extractor, err := domain.NewProductExtractor(rules)
	if err != nil {
		return nil, fmt.Errorf("build product extractor: %w", err)
	}

	indexStore = adapter.NewLocalIndexStore(fsAdapter, cfg.Backups.Keep)

	return domain.NewWorkflow(
		fsAdapter,
		indexStore,
		ui,
		extractor,
		domain.NewClassifier(fsAdapter, rules),
		domain.NewTemporalAnalyzer(fsAdapter),
	), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func indexPath() m.Path {
	return m.Path(viper.GetString(config.OutputKey))
}
