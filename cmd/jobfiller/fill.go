package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobfiller/internal/service"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a form page with a stored resume",
	Long: `Fill the fields of a job application page from an HTML file or URL with
values from the active (or named) resume. The filled page can be written back
out with --out.`,
	RunE: runFill,
}

var (
	fillSource pageSource
	fillResume string
	fillAI     bool
	fillWait   bool
	fillOut    string
	fillJSON   bool
)

func init() {
	fillCmd.Flags().StringVarP(&fillSource.File, "file", "f", "", "Path to a saved HTML page")
	fillCmd.Flags().StringVarP(&fillSource.URL, "url", "u", "", "URL of the application page")
	fillCmd.Flags().StringVarP(&fillSource.Domain, "domain", "d", "", "Domain whose mappings apply (defaults to the URL host)")
	fillCmd.Flags().BoolVar(&fillSource.Browser, "browser", false, "Open the page in headless Chrome")
	fillCmd.Flags().StringVarP(&fillResume, "resume", "r", "", "Resume name (defaults to the active resume)")
	fillCmd.Flags().BoolVar(&fillAI, "ai", false, "Ask the AI collaborator to map the fields first")
	fillCmd.Flags().BoolVar(&fillWait, "wait", false, "Wait the configured autofill delay before filling")
	fillCmd.Flags().StringVarP(&fillOut, "out", "o", "", "Write the filled page HTML to this path")
	fillCmd.Flags().BoolVar(&fillJSON, "json", false, "Print the outcome as JSON")

	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, _ []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		src := fillSource
		src.Browser = src.Browser || cfg.UseBrowser
		page, err := openPage(ctx, src)
		if err != nil {
			return err
		}
		defer page.Close()

		outcome, fillReport := svc.Fill(ctx, page, service.FillRequest{
			Domain:     page.Domain,
			ResumeName: fillResume,
			UseAI:      fillAI,
			Wait:       fillWait,
		})

		if fillOut != "" && fillReport != nil {
			html, err := page.HTML(ctx)
			if err != nil {
				return fmt.Errorf("failed to serialize filled page: %w", err)
			}
			if err := os.WriteFile(fillOut, []byte(html), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", fillOut, err)
			}
		}

		if fillJSON {
			return printJSON(cmd, outcome)
		}
		if verbose && fillReport != nil {
			printer(cmd).PrintFillResult(outcome, fillReport)
		}
		return report(cmd, outcome.Result)
	})
}
