package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/petstore-sim/petstore-sim/sim"
	"github.com/petstore-sim/petstore-sim/sim/refdata"
	"github.com/petstore-sim/petstore-sim/sim/sink"
)

// Environment variables consulted when the matching flag is not set.
// They may also come from a .env file in the working directory.
const (
	envOutputDir = "PETSTORE_OUTPUT_DIR"
	envSeed      = "PETSTORE_SEED"
)

// Output formats.
const (
	formatText   = "text"
	formatSQLite = "sqlite"
)

var (
	// CLI flags for the generate command
	outputDir         string  // Directory that receives the output file
	nStores           int     // Number of stores to generate
	nCustomers        int     // Number of customers to generate
	nPurchasingModels int     // Number of purchasing models to generate
	simulationLength  float64 // Number of days to simulate
	seed              int64   // Seed for the generator's RNG
	logLevel          string  // Log verbosity level
	zipcodeDir        string  // Directory with the zip code reference tables
	specPath          string  // Optional YAML generator spec
	outputFormat      string  // text or sqlite
	workers           int     // Customers simulated in parallel
	locationWeighting string  // population, income or uniform
	storeSelection    string  // uniform or nearest
	summaryPath       string  // Optional YAML run summary
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "petstore-sim",
	Short: "Synthetic pet store transaction generator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			logrus.Debug("No .env file found (using environment variables)")
		}
	},
}

// generateOptions is the resolved configuration of one generate run.
type generateOptions struct {
	OutputDir   string
	ZipcodeDir  string
	SpecPath    string
	Format      string
	SummaryPath string
	Config      sim.Config

	// Strategy names given explicitly on the command line; they win over
	// the YAML spec. Empty means not set.
	LocationWeighting string
	StoreSelection    string
}

// generateCmd runs the generator using parameters from CLI flags
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate stores, customers and a stream of transactions",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		dir := outputDir
		if !cmd.Flags().Changed("output-dir") {
			if v := os.Getenv(envOutputDir); v != "" {
				dir = v
			}
		}
		runSeed, err := resolveSeed(cmd.Flags().Changed("seed"), seed, os.Getenv(envSeed), time.Now().UnixNano())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		cfg := sim.NewConfig(nStores, nCustomers, nPurchasingModels, simulationLength, runSeed)
		cfg.Workers = workers
		opts := generateOptions{
			OutputDir:   dir,
			ZipcodeDir:  zipcodeDir,
			SpecPath:    specPath,
			Format:      outputFormat,
			SummaryPath: summaryPath,
			Config:      cfg,
		}
		if cmd.Flags().Changed("location-weighting") {
			opts.LocationWeighting = locationWeighting
		}
		if cmd.Flags().Changed("store-selection") {
			opts.StoreSelection = storeSelection
		}

		startTime := time.Now()
		path, err := runGenerate(cmd.Context(), opts)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Wrote %s in %s", path, time.Since(startTime).Round(time.Millisecond))
		fmt.Println(path)
	},
}

// resolveSeed picks the run seed: the --seed flag if given, else the
// environment, else a fresh random seed. The chosen seed is always logged
// so the run can be reproduced.
func resolveSeed(flagSet bool, flagValue int64, envValue string, fallback int64) (int64, error) {
	switch {
	case flagSet:
		return flagValue, nil
	case envValue != "":
		v, err := strconv.ParseInt(envValue, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unable to parse %s=%q as a 64-bit integer seed: %w", envSeed, envValue, err)
		}
		logrus.Infof("Using seed %d from %s", v, envSeed)
		return v, nil
	default:
		v := rand.New(rand.NewSource(fallback)).Int63()
		logrus.Infof("No seed given; using random seed %d", v)
		return v, nil
	}
}

// validateOutputDir requires dir to exist and be a directory.
func validateOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("output path %q does not exist", dir)
		}
		return fmt.Errorf("output path %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %q is not a directory", dir)
	}
	return nil
}

// runGenerate loads inputs, runs one simulation and writes its output.
// Returns the output file path.
func runGenerate(ctx context.Context, opts generateOptions) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Format != formatText && opts.Format != formatSQLite {
		return "", fmt.Errorf("unknown output format %q; valid: %s, %s", opts.Format, formatText, formatSQLite)
	}
	if err := validateOutputDir(opts.OutputDir); err != nil {
		return "", err
	}

	var zipcodes *sim.ReferenceDataSet
	var err error
	if opts.ZipcodeDir != "" {
		zipcodes, err = refdata.LoadDir(opts.ZipcodeDir)
	} else {
		zipcodes, err = refdata.LoadDefault()
	}
	if err != nil {
		return "", fmt.Errorf("loading reference data: %w", err)
	}

	input := sim.NewInputData(zipcodes)
	cfg := opts.Config
	if opts.SpecPath != "" {
		spec, err := sim.LoadGeneratorSpec(opts.SpecPath)
		if err != nil {
			return "", err
		}
		spec.Apply(&cfg, input)
	}
	if opts.LocationWeighting != "" {
		cfg.LocationWeighting = sim.LocationWeighting(opts.LocationWeighting)
	}
	if opts.StoreSelection != "" {
		cfg.StoreSelection = opts.StoreSelection
	}

	simulation := sim.NewSimulation(input, cfg)
	if err := simulation.Simulate(); err != nil {
		return "", err
	}
	resolved := simulation.Config()
	logrus.Debugf("Resolved config: weighting=%s, store selection=%s, visit rates=[%v, %v], basket=%s [%v, %v], concentration=%v, workers=%d",
		resolved.LocationWeighting, resolved.StoreSelection, resolved.VisitRates.Min, resolved.VisitRates.Max,
		resolved.Models.BasketDistribution, resolved.Models.MinBasketMean, resolved.Models.MaxBasketMean,
		resolved.Models.Concentration, resolved.Workers)
	txns, err := simulation.Transactions()
	if err != nil {
		return "", err
	}

	summary := sim.Summarize(txns)
	summary.Log()
	if opts.SummaryPath != "" {
		if err := writeSummary(opts.SummaryPath, summary); err != nil {
			return "", err
		}
	}

	switch opts.Format {
	case formatSQLite:
		stores, _ := simulation.Stores()
		customers, _ := simulation.Customers()
		return sink.WriteSQLiteFile(ctx, opts.OutputDir, sink.Dataset{
			Stores:       stores,
			Customers:    customers,
			Transactions: txns,
		})
	default:
		return sink.WriteTransactionsFile(opts.OutputDir, txns)
	}
}

func writeSummary(path string, summary *sim.Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	generateCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory to write output files (env "+envOutputDir+")")
	generateCmd.Flags().IntVar(&nStores, "stores", 10, "Number of stores to generate")
	generateCmd.Flags().IntVar(&nCustomers, "customers", 1000, "Number of customers to generate")
	generateCmd.Flags().IntVar(&nPurchasingModels, "purchasing-models", 10, "Number of purchasing models to generate")
	generateCmd.Flags().Float64Var(&simulationLength, "simulation-length", 365, "Number of days to simulate")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the RNG; random if not given (env "+envSeed+")")
	generateCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Inputs
	generateCmd.Flags().StringVar(&zipcodeDir, "zipcode-dir", "", "Directory with zip code reference tables (bundled tables if empty)")
	generateCmd.Flags().StringVar(&specPath, "spec", "", "YAML generator spec (name pools, catalog, visit rates, basket sizes)")

	// Generator strategies
	generateCmd.Flags().IntVar(&workers, "workers", 1, "Customers simulated in parallel (output is identical for any value)")
	generateCmd.Flags().StringVar(&locationWeighting, "location-weighting", string(sim.WeightByPopulation), "Zip code weighting for placing stores and customers (population, income, uniform)")
	generateCmd.Flags().StringVar(&storeSelection, "store-selection", sim.StoreSelectionUniform, "Store a customer visits (uniform, nearest)")

	// Output
	generateCmd.Flags().StringVar(&outputFormat, "format", formatText, "Output format (text, sqlite)")
	generateCmd.Flags().StringVar(&summaryPath, "summary", "", "Write a YAML run summary to this path")

	// Attach `generate` as a subcommand to `root`
	rootCmd.AddCommand(generateCmd)
}
