// FinTellect — multi-source financial data & news aggregator
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fintellect/fintellect/internal/aggregate"
	"github.com/fintellect/fintellect/internal/config"
	"github.com/fintellect/fintellect/internal/envelope"
	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/internal/providers/alphavantage"
	"github.com/fintellect/fintellect/internal/providers/finnhub"
	"github.com/fintellect/fintellect/internal/providers/googlenews"
	"github.com/fintellect/fintellect/internal/providers/tickertape"
	"github.com/fintellect/fintellect/internal/providers/yahoo"
	"github.com/fintellect/fintellect/internal/scrape"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fintellect",
	Short: "FinTellect — multi-source financial data & news aggregator",
	Long: `FinTellect queries several independent financial data providers in a
fixed priority order (Finnhub → Alpha Vantage → Yahoo → TickerTape),
validates each response, promotes the first real result to primary,
collects the rest as supplementary, and merges news into one
deduplicated, sentiment-annotated result.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("output", "", "directory for the result file (default: stdout only)")
	rootCmd.PersistentFlags().Bool("no-supplementary", false, "stop after the primary tier, skip the supplementary sweep")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FinTellect %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Fetch Command ---

var fetchCmd = &cobra.Command{
	Use:   "fetch [company]",
	Short: "Fetch company data across all provider tiers",
	Long: `Resolve a company name to candidate symbols, walk the provider tiers
until one returns valid data, then sweep the remaining tiers for
supplementary data.

Examples:
  fintellect fetch apple
  fintellect fetch "tata motors" --output ./results
  fintellect fetch TSLA --no-supplementary`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		controller := aggregate.New(dataRegistry(cfg)).WithSuggester(suggester(cfg))
		return run(cmd, args[0], controller)
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [company]",
	Short: "Fetch and merge company news across news tiers",
	Long: `Walk the news provider tiers (Finnhub → Yahoo → Google News), merge
their articles, deduplicate by normalized title, rank by recency, and
annotate each article with keyword sentiment. The top articles are
scraped for full text so scoring sees more than the headline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		controller := aggregate.New(newsRegistry(cfg)).
			WithSuggester(suggester(cfg)).
			WithScraper(scrape.Scrape)
		return run(cmd, args[0], controller)
	},
}

// run executes one aggregation and writes the envelope.
func run(cmd *cobra.Command, query string, controller *aggregate.Controller) error {
	noSupp, _ := cmd.Flags().GetBool("no-supplementary")
	opts := aggregate.Options{
		Supplementary: cfg.Aggregation.Supplementary && !noSupp,
		Timeout:       cfg.Aggregation.Timeout(),
		MaxArticles:   cfg.Aggregation.MaxArticles,
	}

	fmt.Printf("🔍 Aggregating %q across provider tiers...\n", query)

	res, err := controller.Aggregate(cmd.Context(), query, opts)
	if err != nil {
		var nf *aggregate.NotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "❌ %v\n", nf)
			for _, hint := range nf.Hints() {
				fmt.Fprintf(os.Stderr, "   • %s\n", hint)
			}
			for _, a := range nf.Attempts {
				fmt.Fprintf(os.Stderr, "   tier %d %-14s %s\n", a.Tier, a.Provider, a.Outcome)
			}
		}
		return err
	}

	for _, a := range res.Attempts {
		fmt.Printf("   tier %d %-14s %s\n", a.Tier, a.Provider, a.Outcome)
	}
	fmt.Printf("✅ primary: %s, sources: %v, articles: %d\n\n",
		res.Primary.Provider, res.SourcesUsed, len(res.Articles))

	env := envelope.Build(res)

	outDir, _ := cmd.Flags().GetString("output")
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if outDir != "" {
		path, err := env.WriteFile(outDir)
		if err != nil {
			return err
		}
		fmt.Printf("📄 wrote %s\n", path)
		return nil
	}
	return env.Write(os.Stdout)
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configured provider tiers and API key status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  FinTellect — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version: %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Provider tiers:")
		for _, p := range dataRegistry(cfg).Tiers() {
			fmt.Printf("    %d. %s\n", p.Tier(), p.Name())
		}
		fmt.Println()

		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Registry wiring ---

// dataRegistry builds the company-data tier chain. Keyed tiers without a
// configured key are skipped rather than registered to fail.
func dataRegistry(cfg *config.Config) *provider.Registry {
	var providers []provider.Provider
	if cfg.Providers.FinnhubKey != "" {
		providers = append(providers, finnhub.New(cfg.Providers.FinnhubKey, 1))
	}
	if cfg.Providers.AlphaVantageKey != "" {
		av := alphavantage.New(cfg.Providers.AlphaVantageKey, 2)
		av.WithStatements = cfg.Aggregation.Statements
		providers = append(providers, av)
	}
	providers = append(providers, yahoo.New(3), tickertape.New(4))

	reg, err := provider.NewRegistry(providers...)
	if err != nil {
		// Tier assignments above are static; this cannot happen.
		panic(err)
	}
	return reg
}

// newsRegistry builds the news tier chain.
func newsRegistry(cfg *config.Config) *provider.Registry {
	var providers []provider.Provider
	if cfg.Providers.FinnhubKey != "" {
		providers = append(providers, finnhub.NewNews(cfg.Providers.FinnhubKey, 1))
	}
	providers = append(providers, yahoo.NewNews(2), googlenews.New(3))

	reg, err := provider.NewRegistry(providers...)
	if err != nil {
		panic(err)
	}
	return reg
}

// suggester returns the "did you mean" source, nil when Alpha Vantage is
// not configured.
func suggester(cfg *config.Config) aggregate.Suggester {
	if cfg.Providers.AlphaVantageKey == "" {
		return nil
	}
	return alphavantage.New(cfg.Providers.AlphaVantageKey, 2)
}
