package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ipamops/invnorm/pkg/audit"
	"github.com/ipamops/invnorm/pkg/config"
	"github.com/ipamops/invnorm/pkg/logging"
	"github.com/ipamops/invnorm/pkg/pipeline"
	"github.com/ipamops/invnorm/pkg/resolve"
)

var (
	configPath string
	inputPath  string
	debugMode  bool
	noResolver bool
)

var rootCmd = &cobra.Command{
	Use:   "invnorm",
	Short: "invnorm - normalize network-inventory exports for IPAM/DNS tooling",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Normalize a raw inventory table and emit clean records, anomalies and the resolution audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if inputPath != "" {
			cfg.Input = inputPath
		}
		if noResolver {
			cfg.Resolver.Mode = "off"
		}
		level := cfg.Logging.Level
		if debugMode {
			level = "debug"
		}
		logger, err := logging.New(level)
		if err != nil {
			return err
		}
		defer logger.Sync()

		runID := uuid.NewString()
		logger.Infow("starting normalization run", "run_id", runID, "input", cfg.Input)

		capability, runtime := buildCapability(cfg)
		auditLog, err := audit.New(cfg.Output.Audit, audit.Header{
			RunID:       runID,
			Runtime:     runtime,
			Model:       cfg.Resolver.Model,
			Temperature: cfg.Resolver.Temperature,
		})
		if err != nil {
			return err
		}
		defer auditLog.Close()

		protocol := resolve.NewProtocol(capability, auditLog, logger,
			time.Duration(cfg.Resolver.TimeoutMS)*time.Millisecond)

		result, err := pipeline.New(protocol, logger).Run(context.Background(),
			cfg.Input, cfg.Output.Clean, cfg.Output.Anomalies)
		if err != nil {
			return err
		}

		fmt.Println()
		color.Cyan("=== Pipeline Outputs ===")
		color.White("rows processed : %d", result.Rows)
		color.White("anomalies      : %d", result.Anomalies)
		color.Green("clean records  → %s", cfg.Output.Clean)
		color.Green("anomalies      → %s", cfg.Output.Anomalies)
		color.Green("audit log      → %s", cfg.Output.Audit)
		color.Cyan("========================")
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// buildCapability selects the resolution capability once per run. A missing
// or unreachable backend degrades to the null capability for every row.
func buildCapability(cfg *config.Config) (resolve.Capability, string) {
	if cfg.Resolver.Mode != "ollama" {
		return resolve.Disabled{Reason: "resolver disabled by configuration"}, "none"
	}
	client := resolve.NewClient(cfg.Resolver.Endpoint, cfg.Resolver.Model,
		cfg.Resolver.Temperature, time.Duration(cfg.Resolver.TimeoutMS)*time.Millisecond)
	if !client.Available() {
		return resolve.Disabled{}, "ollama (unreachable)"
	}
	return client, "ollama (local)"
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (defaults apply when omitted)")
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "raw inventory CSV (overrides config)")
	runCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	runCmd.Flags().BoolVar(&noResolver, "no-resolver", false, "disable the LLM resolution capability")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
