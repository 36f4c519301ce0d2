// Package main provides the vcfgrpaf command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zhengxinchang/vcfgrpaf/internal/grpaf"
	"github.com/zhengxinchang/vcfgrpaf/internal/statsdb"
	"github.com/zhengxinchang/vcfgrpaf/internal/vcf"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	root.AddCommand(newConfigCmd())

	cobra.OnInitialize(initConfig)

	if err := root.Execute(); err != nil {
		var cfgErr *grpaf.ConfigError
		if errors.As(err, &cfgErr) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// initConfig loads ~/.vcfgrpaf.yaml if present and binds environment
// variables with the VCFGRPAF_ prefix.
func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".vcfgrpaf")
		viper.SetConfigType("yaml")
		_ = viper.ReadInConfig()
	}
	viper.SetEnvPrefix("vcfgrpaf")
	viper.AutomaticEnv()
}

func newRootCmd() *cobra.Command {
	var (
		outputPath string
		labelsPath string
	)

	cmd := &cobra.Command{
		Use:   "vcfgrpaf [flags] <input.vcf[.gz]>",
		Short: "Recompute per-group allele statistics in a VCF",
		Long: `vcfgrpaf recomputes population statistics (AF, MAF, MAC, AC, AN, N_HEMI,
N_MISS, N_HOMREF, N_HET, N_HOMALT) per sample group and rewrites them into
each record's INFO field, replacing stale tags from a previous run.

The label table maps samples to groups: one tab-separated
<sample> <group> pair per line, no header.`,
		Example: `  vcfgrpaf -l labels.txt -o out.vcf in.vcf
  vcfgrpaf -l labels.txt -o out.vcf.gz in.vcf.gz
  zcat in.vcf.gz | vcfgrpaf -l labels.txt - > out.vcf
  vcfgrpaf -l labels.txt --stats-db stats.duckdb -o out.vcf in.vcf`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrpaf(args[0], outputPath, labelsPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "Output VCF (use '-' for stdout, '.gz' suffix compresses)")
	cmd.Flags().StringVarP(&labelsPath, "labels", "l", "", "Tab-delimited 2-col file: <sample> <group> (required)")
	cmd.Flags().Int("threads", 0, "Worker threads (0 = all CPUs)")
	cmd.Flags().String("stats-db", "", "Optional DuckDB file to append per-group stats to")
	_ = cmd.MarkFlagRequired("labels")

	_ = viper.BindPFlag("threads", cmd.Flags().Lookup("threads"))
	_ = viper.BindPFlag("stats-db", cmd.Flags().Lookup("stats-db"))

	return cmd
}

func runGrpaf(inputPath, outputPath, labelsPath string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	reg, err := grpaf.LoadLabels(labelsPath, logger)
	if err != nil {
		return err
	}
	logger.Info("loaded label table",
		zap.Int("groups", len(reg.Groups())),
		zap.Int("samples", reg.SampleCount()),
		zap.String("path", labelsPath))

	parser, err := vcf.NewParser(inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	if err := reg.ValidateSamples(parser.SampleNames()); err != nil {
		var unknown *grpaf.UnknownSampleError
		if !errors.As(err, &unknown) {
			return err
		}
		logger.Warn("ignoring label-table samples missing from the VCF",
			zap.Strings("samples", unknown.Samples))
	}

	header := vcf.NewHeader(parser.Header())
	grpaf.SyncHeader(header, reg)

	writer, err := vcf.Create(outputPath)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteHeader(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	pipeline := grpaf.NewPipeline(reg, parser.SampleNames(), viper.GetInt("threads"))
	pipeline.SetLogger(logger)

	if dbPath := viper.GetString("stats-db"); dbPath != "" {
		store, err := statsdb.Open(dbPath)
		if err != nil {
			return &grpaf.ConfigError{Msg: fmt.Sprintf("open stats database: %v", err)}
		}
		defer store.Close()
		pipeline.SetSink(store)
		logger.Info("appending group stats", zap.String("path", dbPath))
	}

	if err := pipeline.Run(parser, writer); err != nil {
		return err
	}

	return writer.Close()
}

// newLogger builds a console logger on stderr so stdout stays clean for
// VCF output.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
