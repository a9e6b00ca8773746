package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cart-offer/internal/config"
	"cart-offer/internal/healthcheck"
)

var cfgFile string

// errUnhealthy makes the process exit non-zero without printing usage.
var errUnhealthy = errors.New("one or more targets are unhealthy")

var rootCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Probes the cart offer services and their dependencies",
	Long: `healthcheck probes HTTP endpoints and PostgreSQL databases concurrently,
prints a status table and exits non-zero when any target is unhealthy.

Targets come from flags (--http, --postgres), the "targets" list of a YAML
config file, or HEALTHCHECK_HTTP / HEALTHCHECK_POSTGRES environment variables.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := collectTargets()
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return fmt.Errorf("no targets configured")
		}

		timeout := viper.GetDuration("timeout")
		if err := validateTimeout(timeout); err != nil {
			return err
		}

		logger := config.NewLogger(config.LoggerConfig{
			Level:  viper.GetString("log-level"),
			Format: "console",
		}, "healthcheck")

		checker := healthcheck.NewChecker(timeout, viper.GetInt("concurrency"), logger)

		results := checker.Run(cmd.Context(), targets)
		if err := healthcheck.WriteReport(cmd.OutOrStdout(), results); err != nil {
			return err
		}

		if !healthcheck.AllHealthy(results) {
			return errUnhealthy
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./healthcheck.yaml)")

	rootCmd.Flags().StringSlice("http", nil, "HTTP target as url or name=url, expects a 2xx response (repeatable)")
	rootCmd.Flags().StringSlice("postgres", nil, "PostgreSQL target as dsn or name=dsn (repeatable)")
	rootCmd.Flags().Duration("timeout", 5*time.Second, "Timeout for each probe")
	rootCmd.Flags().Int("concurrency", 0, "Maximum probes in flight (0 means unlimited)")
	rootCmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	viper.BindPFlags(rootCmd.Flags())
}

// validateTimeout rejects probe timeouts that would expire every probe at once.
func validateTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be greater than zero", timeout)
	}
	return nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("healthcheck")
	}

	viper.SetEnvPrefix("HEALTHCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// collectTargets merges config file targets with flag and env targets.
func collectTargets() ([]healthcheck.Target, error) {
	var targets []healthcheck.Target
	if err := viper.UnmarshalKey("targets", &targets); err != nil {
		return nil, fmt.Errorf("invalid targets in config: %w", err)
	}

	for _, raw := range viper.GetStringSlice("http") {
		targets = append(targets, parseTarget(healthcheck.KindHTTP, raw))
	}
	for _, raw := range viper.GetStringSlice("postgres") {
		targets = append(targets, parseTarget(healthcheck.KindPostgres, raw))
	}

	for i, t := range targets {
		if t.Address == "" {
			return nil, fmt.Errorf("target %d (%s) has no address", i, t.Name)
		}
		if t.Name == "" {
			targets[i].Name = t.Address
		}
	}

	return targets, nil
}

// parseTarget accepts "address" or "name=address". Only the first '=' splits,
// so DSN query strings survive.
func parseTarget(kind, raw string) healthcheck.Target {
	raw = strings.TrimSpace(raw)
	if name, addr, ok := strings.Cut(raw, "="); ok && !strings.Contains(name, "://") && !strings.ContainsAny(name, "?&/") {
		return healthcheck.Target{Name: name, Kind: kind, Address: addr}
	}
	return healthcheck.Target{Name: raw, Kind: kind, Address: raw}
}

// Execute runs the root command.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errUnhealthy) {
			fmt.Fprintln(os.Stderr, err)
		}
		cancel()
		os.Exit(1)
	}
}

