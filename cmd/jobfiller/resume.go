package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobfiller/internal/ingestion"
	"github.com/jonathan/jobfiller/internal/service"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage stored resumes",
}

var resumeImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a resume from a file or URL",
	Long: `Import a resume from a JSON, text or HTML file, or from a URL. JSON files
are stored as-is; anything else is structured first, with the AI collaborator
when a key is configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResumeImport,
}

var resumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resumes",
	Args:  cobra.NoArgs,
	RunE:  runResumeList,
}

var resumeShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a stored resume (defaults to the active one)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResumeShow,
}

var resumeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeDelete,
}

var resumeActivateCmd = &cobra.Command{
	Use:   "activate <name>",
	Short: "Make a stored resume the one used for filling",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeActivate,
}

var (
	resumeName string
	resumeURL  string
	resumeJSON bool
)

func init() {
	resumeImportCmd.Flags().StringVarP(&resumeName, "name", "n", "", "Name to store the resume under (defaults to the file name)")
	resumeImportCmd.Flags().StringVarP(&resumeURL, "url", "u", "", "URL to fetch the resume from")
	resumeShowCmd.Flags().BoolVar(&resumeJSON, "json", false, "Print the stored document as JSON")

	resumeCmd.AddCommand(resumeImportCmd, resumeListCmd, resumeShowCmd, resumeDeleteCmd, resumeActivateCmd)
	rootCmd.AddCommand(resumeCmd)
}

// resumeNameFor derives a stored name from a file path: base name without extension.
func resumeNameFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runResumeImport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && resumeURL == "" {
		return fmt.Errorf("either a file argument or --url must be provided")
	}
	if len(args) > 0 && resumeURL != "" {
		return fmt.Errorf("a file argument and --url are mutually exclusive; provide only one")
	}

	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		var src *ingestion.Source
		var err error
		name := resumeName
		if resumeURL != "" {
			src, err = ingestion.IngestFromURL(ctx, resumeURL)
			if err != nil {
				return fmt.Errorf("failed to ingest from URL: %w", err)
			}
		} else {
			src, err = ingestion.IngestFromFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to ingest from file: %w", err)
			}
			if name == "" {
				name = resumeNameFor(args[0])
			}
		}

		outcome := svc.ImportResume(ctx, name, src)
		if outcome.Success && verbose {
			printer(cmd).PrintImportMetadata(outcome.Name, outcome.Metadata)
		}
		return report(cmd, outcome.Result)
	})
}

func runResumeList(cmd *cobra.Command, _ []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		outcome := svc.ListResumes(ctx)
		if !outcome.Success {
			return report(cmd, outcome.Result)
		}
		printer(cmd).PrintResumeList(outcome.Resumes)
		return nil
	})
}

func runResumeShow(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		outcome := svc.GetResume(ctx, name)
		if !outcome.Success {
			return report(cmd, outcome.Result)
		}
		if resumeJSON {
			return printJSON(cmd, outcome.Resume.Data)
		}
		resume, err := outcome.Resume.Data.Resume()
		if err != nil {
			return fmt.Errorf("stored resume %q is malformed: %w", outcome.Resume.Name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", outcome.Resume.Name)
		printer(cmd).PrintResume(resume)
		return nil
	})
}

func runResumeDelete(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		return report(cmd, svc.DeleteResume(ctx, args[0]))
	})
}

func runResumeActivate(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		return report(cmd, svc.SetActiveResume(ctx, args[0]))
	})
}
