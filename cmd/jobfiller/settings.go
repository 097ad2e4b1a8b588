package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobfiller/internal/service"
	"github.com/jonathan/jobfiller/internal/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change settings and AI credentials",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings with the API key masked",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change autofill preferences",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSet,
}

var settingsAPICmd = &cobra.Command{
	Use:   "api",
	Short: "Change the AI provider, key and model",
	Long: `Change the AI credentials. Only the flags given are changed; saving
resets the connection status until the next "settings test".`,
	Args: cobra.NoArgs,
	RunE: runSettingsAPI,
}

var settingsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the saved AI credentials",
	Args:  cobra.NoArgs,
	RunE:  runSettingsTest,
}

var (
	settingsJSON bool
	prefs        types.Settings
	apiFlags     types.APISettings
)

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsJSON, "json", false, "Print settings as JSON")

	settingsFlags := settingsSetCmd.Flags()
	settingsFlags.BoolVar(&prefs.AutofillOnLoad, "autofill-on-load", false, "Fill forms as soon as a page loads")
	settingsFlags.IntVar(&prefs.AutofillDelay, "autofill-delay", 0, "Milliseconds to wait before an automatic fill")
	settingsFlags.BoolVar(&prefs.DarkMode, "dark-mode", false, "Use the dark theme")
	settingsFlags.BoolVar(&prefs.AnalyticsEnabled, "analytics", false, "Allow anonymous usage analytics")

	apiFlagSet := settingsAPICmd.Flags()
	apiFlagSet.StringVar(&apiFlags.Provider, "provider", "", "AI provider: openai or gemini")
	apiFlagSet.StringVar(&apiFlags.APIKey, "api-key", "", "API key")
	apiFlagSet.StringVar(&apiFlags.Model, "model", "", "Model name")
	apiFlagSet.BoolVar(&apiFlags.UseForFieldMapping, "use-for-mapping", false, "Ask the AI to map fields on every fill")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsAPICmd, settingsTestCmd)
	rootCmd.AddCommand(settingsCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runSettingsShow(cmd *cobra.Command, _ []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		outcome := svc.GetSettings(ctx)
		if !outcome.Success {
			return report(cmd, outcome.Result)
		}
		if settingsJSON {
			return printJSON(cmd, outcome)
		}

		out := cmd.OutOrStdout()
		s, api := outcome.Settings, outcome.APISettings
		fmt.Fprintf(out, "autofill-on-load:  %t\n", s.AutofillOnLoad)
		fmt.Fprintf(out, "autofill-delay:    %dms\n", s.AutofillDelay)
		fmt.Fprintf(out, "dark-mode:         %t\n", s.DarkMode)
		fmt.Fprintf(out, "analytics:         %t\n", s.AnalyticsEnabled)
		fmt.Fprintf(out, "provider:          %s\n", api.Provider)
		fmt.Fprintf(out, "api-key:           %s\n", api.APIKey)
		fmt.Fprintf(out, "model:             %s\n", api.Model)
		fmt.Fprintf(out, "use-for-mapping:   %t\n", api.UseForFieldMapping)
		fmt.Fprintf(out, "connection:        %s\n", api.ConnectionStatus)
		fmt.Fprintf(out, "token-usage:       %d\n", api.TokenUsage)
		return nil
	})
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	settingsFlags := cmd.Flags()
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		current, err := svc.Store().GetSettings(ctx)
		if err != nil {
			return err
		}
		if settingsFlags.Changed("autofill-on-load") {
			current.AutofillOnLoad = prefs.AutofillOnLoad
		}
		if settingsFlags.Changed("autofill-delay") {
			current.AutofillDelay = prefs.AutofillDelay
		}
		if settingsFlags.Changed("dark-mode") {
			current.DarkMode = prefs.DarkMode
		}
		if settingsFlags.Changed("analytics") {
			current.AnalyticsEnabled = prefs.AnalyticsEnabled
		}
		return report(cmd, svc.SaveSettings(ctx, current))
	})
}

func runSettingsAPI(cmd *cobra.Command, _ []string) error {
	apiFlagSet := cmd.Flags()
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		current, err := svc.Store().GetAPISettings(ctx)
		if err != nil {
			return err
		}
		if apiFlagSet.Changed("provider") {
			current.Provider = apiFlags.Provider
		}
		if apiFlagSet.Changed("api-key") {
			current.APIKey = apiFlags.APIKey
		}
		if apiFlagSet.Changed("model") {
			current.Model = apiFlags.Model
		}
		if apiFlagSet.Changed("use-for-mapping") {
			current.UseForFieldMapping = apiFlags.UseForFieldMapping
		}
		return report(cmd, svc.SaveAPISettings(ctx, current))
	})
}

func runSettingsTest(cmd *cobra.Command, _ []string) error {
	return withService(cmd, func(ctx context.Context, svc *service.Service) error {
		outcome := svc.TestConnection(ctx)
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "status: %s, tokens used: %d\n", outcome.Status, outcome.TokenUsage)
		}
		return report(cmd, outcome.Result)
	})
}
