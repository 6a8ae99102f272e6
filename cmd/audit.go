package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seoaudit/internal/config"
	"seoaudit/internal/report"
	"seoaudit/pkg/logger"
)

// auditCommand runs a one-shot audit from the terminal: audit a single URL,
// print the colorized report and optionally write the PDF export next to it.
func auditCommand(cfg *config.Config) *cobra.Command {
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "audit <url>",
		Short: "Audits a single URL and prints the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			auditor := newAuditor(cfg)
			result, err := auditor.Run(ctx, args[0])
			if err != nil {
				return err
			}

			view := report.NewView(result)
			report.WriteTerminal(cmd.OutOrStdout(), view)

			if pdfPath == "" {
				return nil
			}

			brand := report.Branding{
				Name:    cfg.Branding.Name,
				Phone:   cfg.Branding.Phone,
				Email:   cfg.Branding.Email,
				Website: cfg.Branding.Website,
			}
			pdf, err := report.ExportPDF(result, brand, time.Now())
			if err != nil {
				return err
			}
			if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil { //nolint: gosec
				return err
			}
			logger.Info(ctx, "PDF report written", zap.String("path", pdfPath))

			return nil
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Write the PDF report to this path")

	return cmd
}
