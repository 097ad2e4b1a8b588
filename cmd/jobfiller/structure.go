package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobfiller/internal/ingestion"
	"github.com/jonathan/jobfiller/internal/logging"
	"github.com/jonathan/jobfiller/internal/service"
)

var structureCmd = &cobra.Command{
	Use:   "structure <file>...",
	Short: "Structure resume files into resume JSON without storing them",
	Long: `Structure one or more resume files (text, HTML or JSON) and write
<name>.resume.json and <name>.meta.json for each into the output directory.
The AI collaborator is used when a key is configured unless --heuristic is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStructure,
}

var (
	structureOut         string
	structureHeuristic   bool
	structureConcurrency int
)

func init() {
	structureCmd.Flags().StringVarP(&structureOut, "out", "o", "", "Output directory (required)")
	structureCmd.Flags().BoolVar(&structureHeuristic, "heuristic", false, "Skip the AI collaborator")
	structureCmd.Flags().IntVarP(&structureConcurrency, "concurrency", "c", 4, "Files structured in parallel")

	_ = structureCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(structureCmd)
}

func runStructure(cmd *cobra.Command, args []string) error {
	if structureConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}

	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		var parser ingestion.ResumeParser = ingestion.HeuristicParser{}
		if !structureHeuristic {
			p, release := svc.Parser(ctx)
			defer release()
			parser = p
		}

		results := make([]*ingestion.Metadata, len(args))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(structureConcurrency)
		for i, path := range args {
			g.Go(func() error {
				metadata, err := structureFile(gctx, parser, path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results[i] = metadata
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, path := range args {
			name := resumeNameFor(path)
			if verbose {
				printer(cmd).PrintImportMetadata(name, results[i])
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s.resume.json (%s)\n", path, name, results[i].Parser)
		}
		return nil
	})
}

// structureFile ingests path, structures it if needed and writes the output files.
func structureFile(ctx context.Context, parser ingestion.ResumeParser, path string) (*ingestion.Metadata, error) {
	src, err := ingestion.IngestFromFile(path)
	if err != nil {
		return nil, err
	}

	doc := src.Document
	if !src.IsDocument() {
		parsed, err := parser.Parse(ctx, src.Text)
		if err != nil {
			return nil, err
		}
		src.Metadata.Record(parsed)
		doc = parsed.Document
	}

	logging.Ctx(ctx).Debug().Str("file", path).Str("parser", src.Metadata.Parser).Msg("structured resume")
	if err := ingestion.WriteOutput(structureOut, resumeNameFor(path), doc, src.Metadata); err != nil {
		return nil, err
	}
	return src.Metadata, nil
}
