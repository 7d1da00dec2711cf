package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prospectiq/brief-cli/internal/export"
	"github.com/prospectiq/brief-cli/internal/model"
)

var (
	enrichWebsite  string
	enrichCSVDir   string
	enrichXLSXDir  string
	enrichInsights bool
	enrichJSON     bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <company name>",
	Short: "Enrich one company and print the brief",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnrichment(cfg, enrichInsights)
		if err != nil {
			return err
		}

		q := model.Query{
			Name:    strings.Join(args, " "),
			Website: enrichWebsite,
		}

		report, err := env.Pipeline.Run(cmd.Context(), q)
		if err != nil {
			return err
		}

		if enrichJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			printReport(report)
		}

		if enrichCSVDir != "" {
			path, err := export.ExportCSV(report, enrichCSVDir)
			if err != nil {
				return err
			}
			zap.L().Info("csv written", zap.String("path", path))
		}
		if enrichXLSXDir != "" {
			path, err := export.ExportXLSX(report, enrichXLSXDir)
			if err != nil {
				return err
			}
			zap.L().Info("xlsx written", zap.String("path", path))
		}

		return nil
	},
}

func printReport(report *model.Report) {
	record := report.Record

	fmt.Printf("Company: %s\n", record.Name)
	if record.Website != "" {
		fmt.Printf("Website: %s\n", record.Website)
	}
	if record.Industry != "" {
		fmt.Printf("Industry: %s\n", record.Industry)
	}
	if record.Summary != "" {
		fmt.Printf("\nSummary:\n%s\n", record.Summary)
	}

	if len(record.News) > 0 {
		fmt.Println("\nRecent news:")
		for _, item := range record.News {
			line := "  - " + item.Title
			if !item.PublishedAt.IsZero() {
				line += " (" + item.PublishedAt.Format("2006-01-02") + ")"
			}
			fmt.Println(line)
			fmt.Println("    " + item.URL)
		}
	}

	if record.Branding != nil {
		fmt.Printf("\nLogo: %s\n", record.Branding.LogoURL)
		if len(record.Branding.Colors) > 0 {
			fmt.Printf("Brand colors: %s\n", strings.Join(record.Branding.Colors, " "))
		}
	}

	for _, s := range report.Sections {
		fmt.Printf("\n## %s\n", s.Title)
		if s.Status != model.SectionAvailable {
			fmt.Printf("(%s)\n", s.Status)
			continue
		}
		fmt.Println(s.Content)
	}

	if len(record.Provenance) > 0 {
		fmt.Println("\nSources:")
		for _, field := range model.RecognizedFields {
			if src, ok := record.Provenance[field]; ok {
				fmt.Printf("  %s: %s\n", field, src)
			}
		}
	}

	failed := 0
	for _, o := range report.Outcomes {
		if !o.OK {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("\n%d of %d providers failed; brief may be incomplete.\n", failed, len(report.Outcomes))
	}
}

func init() {
	enrichCmd.Flags().StringVar(&enrichWebsite, "website", "", "company website (skips discovery)")
	enrichCmd.Flags().StringVar(&enrichCSVDir, "csv", "", "directory for CSV export")
	enrichCmd.Flags().StringVar(&enrichXLSXDir, "xlsx", "", "directory for XLSX export")
	enrichCmd.Flags().BoolVar(&enrichInsights, "insights", true, "generate insight sections")
	enrichCmd.Flags().BoolVar(&enrichJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(enrichCmd)
}
