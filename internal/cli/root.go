package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orderlens",
		Short: "Classify and index FTC consumer-protection orders",
		Long: `orderlens tags a corpus of structured FTC case files with statutory
topics, practice areas, remedy types and industry sectors, then builds the
flat JSON artifacts a static site reads: a case summary index, per-tag
provision shards and recurring provision patterns.

Tagging happens in place and is idempotent: files that already carry tags
are left alone.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupRuntime,
		PersistentPostRun: syncRuntime,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (default: ./orderlens.yaml when present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Tagging Commands
	classifyCmd := &cobra.Command{
		Use:   "classify [dir]",
		Short: "Tag every unclassified case file in place",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunClassify,
	}
	classifyCmd.Flags().String("engine", engineRules, "Classifier: rules|llm")
	classifyCmd.Flags().Bool("dry-run", false, "Classify without writing any file")
	classifyCmd.Flags().Int("limit", 0, "Only consider the first N case files (0 = all)")
	classifyCmd.Flags().Int("workers", 1, "Files classified concurrently")
	classifyCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	mergeCmd := &cobra.Command{
		Use:   "merge [dir]",
		Short: "Apply classify-result-*.json manifests to case files",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunMerge,
	}
	mergeCmd.Flags().String("manifests", "", "Directory holding classify-result-*.json (default: output dir)")
	mergeCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	// Build Commands
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Build the case summary index (ftc-cases.json)",
		Args:  cobra.NoArgs,
		RunE:  RunSummarize,
	}
	summaryCmd.Flags().String("source", "", "Raw corpus directory")
	summaryCmd.Flags().String("published", "", "Published case copies directory")
	summaryCmd.Flags().String("out", "", "Output directory")
	summaryCmd.Flags().Bool("publish", false, "Copy new cases into the published directory")
	summaryCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	provisionsCmd := &cobra.Command{
		Use:   "provisions",
		Short: "Write per-tag provision shards and their manifest",
		Args:  cobra.NoArgs,
		RunE:  RunProvisions,
	}
	provisionsCmd.Flags().String("files", "", "Classified case files directory")
	provisionsCmd.Flags().String("out", "", "Shard output directory")
	provisionsCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "Detect provision language recurring across cases (ftc-patterns.json)",
		Args:  cobra.NoArgs,
		RunE:  RunPatterns,
	}
	patternsCmd.Flags().String("provisions", "", "Provision shards directory")
	patternsCmd.Flags().String("out", "", "Output directory")
	patternsCmd.Flags().Int("full-text-limit", 0, "Most recent variants per pattern that keep full text")
	patternsCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Run summary, classify, provisions and patterns in order",
		Args:  cobra.NoArgs,
		RunE:  RunBuild,
	}
	buildCmd.Flags().String("engine", engineRules, "Classifier: rules|llm")
	buildCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	// Inspect Commands
	statusCmd := &cobra.Command{
		Use:   "status [dir]",
		Short: "Count classified, unclassified and invalid case files",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunStatus,
	}
	statusCmd.Flags().Bool("json", false, "Print machine-readable status output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// Skips config loading so version works anywhere.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("orderlens %s\n", version)
		},
	}

	rootCmd.AddCommand(
		classifyCmd,
		mergeCmd,
		summaryCmd,
		provisionsCmd,
		patternsCmd,
		buildCmd,
		statusCmd,
		versionCmd,
	)

	return rootCmd
}
