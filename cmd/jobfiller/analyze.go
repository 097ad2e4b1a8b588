package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobfiller/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "List the fillable fields of a form page",
	Long: `Analyze a job application page from an HTML file or URL and print each
eligible field with the resume path it maps to.`,
	RunE: runAnalyze,
}

var (
	analyzeSource pageSource
	analyzeJSON   bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeSource.File, "file", "f", "", "Path to a saved HTML page")
	analyzeCmd.Flags().StringVarP(&analyzeSource.URL, "url", "u", "", "URL of the application page")
	analyzeCmd.Flags().StringVarP(&analyzeSource.Domain, "domain", "d", "", "Domain whose mappings apply (defaults to the URL host)")
	analyzeCmd.Flags().BoolVar(&analyzeSource.Browser, "browser", false, "Open the page in headless Chrome")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the analysis as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		src := analyzeSource
		src.Browser = src.Browser || cfg.UseBrowser
		page, err := openPage(ctx, src)
		if err != nil {
			return err
		}
		defer page.Close()

		outcome := svc.Analyze(ctx, page, page.Domain)
		if analyzeJSON {
			return printJSON(cmd, outcome)
		}
		if outcome.Success {
			printer(cmd).PrintFieldSnapshots(outcome.Fields)
		}
		return report(cmd, outcome.Result)
	})
}
