// Package main provides the CLI entrypoint for the SEO audit service.
// It wires subcommands (serve, audit), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seoaudit/internal/audit"
	"seoaudit/internal/config"
	"seoaudit/internal/lead"
	"seoaudit/pkg/fetch"
	"seoaudit/pkg/logger"
	"seoaudit/pkg/pagespeed/psi"
)

// newAuditor builds the audit pipeline from configuration: an HTTP client
// bounded by the per-attempt timeout, the retrying fetcher and the PageSpeed
// provider behind it.
func newAuditor(cfg *config.Config) audit.Auditor {
	fetcher := fetch.New(&http.Client{Timeout: cfg.PageSpeed.Timeout})
	provider := psi.New(fetcher, psi.Options{
		Endpoint:   cfg.PageSpeed.Endpoint,
		APIKey:     cfg.PageSpeed.APIKey,
		Strategy:   cfg.PageSpeed.Strategy,
		MaxRetries: cfg.PageSpeed.MaxRetries,
		BaseDelay:  cfg.PageSpeed.BaseDelay,
	})

	return audit.New(provider)
}

// newLeadPipeline builds the lead dispatch pipeline from configuration.
func newLeadPipeline(cfg *config.Config) *lead.Pipeline {
	relay := lead.NewRelay(&http.Client{Timeout: cfg.Lead.Timeout},
		cfg.Lead.RelayEndpoint,
		cfg.Lead.Subject)

	return lead.NewPipeline(relay, cfg.Lead.WhatsAppPhone)
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "seoaudit",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		auditCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
