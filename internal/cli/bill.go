// internal/cli/bill.go
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/legisinfo/internal/ui"
	"github.com/law-makers/legisinfo/internal/utils/output"
	urlutil "github.com/law-makers/legisinfo/internal/utils/url"
)

var billOutput string

var billCmd = &cobra.Command{
	Use:   "bill <url>",
	Short: "Extract one bill record",
	Long: `Fetches a bill page (or its XML export) and prints the normalized record.
Fields that cannot be found are reported as "Unknown".`,
	Example: `  # Print the record as JSON
  legisinfo bill https://www.parl.ca/legisinfo/en/bill/44-1/c-422

  # Use the HTML page instead of the XML export
  legisinfo bill https://www.parl.ca/legisinfo/en/bill/44-1/s-2 --format html

  # Save as CSV
  legisinfo bill https://www.parl.ca/legisinfo/en/bill/44-1/s-2 -o s-2.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runBill,
}

func init() {
	rootCmd.AddCommand(billCmd)
	billCmd.Flags().StringVarP(&billOutput, "output", "o", "", "File path to save the record (.json or .csv)")
}

func runBill(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	billURL := args[0]
	if err := urlutil.ValidateURL(billURL); err != nil {
		return err
	}
	if !urlutil.HasPrefix(billURL, a.Config.BillURLPrefix) {
		log.Warn().Str("url", billURL).Str("prefix", a.Config.BillURLPrefix).Msg("URL is outside the configured bill prefix")
	}

	record, err := a.Scraper.Scrape(cmd.Context(), billURL)
	if err != nil {
		return fmt.Errorf("failed to extract bill: %w", err)
	}

	if billOutput != "" {
		if err := output.SaveRecord(record, billOutput); err != nil {
			return err
		}
		log.Info().Str("file", billOutput).Msg("Output saved")
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("✓ Saved to "+billOutput))
		return nil
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
