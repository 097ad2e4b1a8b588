package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobfiller/internal/mapping"
	"github.com/jonathan/jobfiller/internal/service"
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Manage per-domain field mappings",
	Long: `Field mappings map resume paths to identifier patterns for one domain.
Patterns are exact identifiers ("id:first_name"), regular expressions
prefixed with "re:" ("re:first.?name") or plain substrings ("firstname").
Domain mappings are consulted before the built-in defaults.`,
}

var mappingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List domains with saved mappings",
	Args:  cobra.NoArgs,
	RunE:  runMappingsList,
}

var mappingsGetCmd = &cobra.Command{
	Use:   "get <domain>",
	Short: "Show the mappings saved for a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingsGet,
}

var mappingsSetCmd = &cobra.Command{
	Use:   "set <domain> <path> [pattern...]",
	Short: "Set the patterns for one resume path; no patterns removes the path",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMappingsSet,
}

var mappingsDeleteCmd = &cobra.Command{
	Use:   "delete <domain>",
	Short: "Delete every mapping saved for a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingsDelete,
}

var mappingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import mappings from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingsImport,
}

var mappingsExportCmd = &cobra.Command{
	Use:   "export <domain>",
	Short: "Export a domain's mappings as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingsExport,
}

var (
	mappingsDomain string
	mappingsOut    string
)

func init() {
	mappingsImportCmd.Flags().StringVarP(&mappingsDomain, "domain", "d", "", "Domain to store under (defaults to the file's domain)")
	mappingsExportCmd.Flags().StringVarP(&mappingsOut, "out", "o", "", "Write YAML to this path instead of stdout")

	mappingsCmd.AddCommand(mappingsListCmd, mappingsGetCmd, mappingsSetCmd, mappingsDeleteCmd, mappingsImportCmd, mappingsExportCmd)
	rootCmd.AddCommand(mappingsCmd)
}

func runMappingsList(cmd *cobra.Command, _ []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		outcome := svc.ListMappingDomains(ctx)
		if !outcome.Success {
			return report(cmd, outcome.Result)
		}
		if len(outcome.Domains) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No field mappings saved.")
		}
		for _, d := range outcome.Domains {
			fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return nil
	})
}

func runMappingsGet(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		outcome := svc.GetMappings(ctx, args[0])
		if !outcome.Success {
			return report(cmd, outcome.Result)
		}
		printer(cmd).PrintMappings(outcome.Domain, outcome.Mappings)
		return nil
	})
}

func runMappingsSet(cmd *cobra.Command, args []string) error {
	domain, path, patterns := args[0], args[1], args[2:]
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		current := svc.GetMappings(ctx, domain)
		if !current.Success {
			return report(cmd, current.Result)
		}

		m := current.Mappings
		if len(patterns) == 0 {
			if !m.Delete(path) {
				return fmt.Errorf("no mapping for %s on %s", path, current.Domain)
			}
		} else {
			m.Set(path, patterns...)
		}
		return report(cmd, svc.SaveMappings(ctx, domain, m))
	})
}

func runMappingsDelete(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		return report(cmd, svc.DeleteMappings(ctx, args[0]))
	})
}

func runMappingsImport(cmd *cobra.Command, args []string) error {
	file, err := mapping.LoadFile(args[0])
	if err != nil {
		return err
	}
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		return report(cmd, svc.ImportMappings(ctx, file, mappingsDomain))
	})
}

func runMappingsExport(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		file, result := svc.ExportMappings(ctx, args[0])
		if !result.Success {
			return report(cmd, result)
		}
		if mappingsOut != "" {
			if err := mapping.WriteFile(file, mappingsOut); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mappings for %s written to %s\n", file.Domain, mappingsOut)
			return nil
		}
		data, err := mapping.MarshalFile(file)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	})
}
