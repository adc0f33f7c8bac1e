// internal/cli/serve.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/legisinfo/internal/config"
	"github.com/law-makers/legisinfo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bill API server",
	Long: `Serves the bill API until interrupted:

  GET /api/bill?url=<bill page>   bill record as JSON
  GET /api/health                 liveness check
  GET /                           endpoint index`,
	Example: `  # Listen on the default 0.0.0.0:8000
  legisinfo serve

  # Listen locally on another port, scraping the HTML pages
  legisinfo serve --host 127.0.0.1 --port 9000 --format html`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	config.RegisterServeFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	srv := server.New(a.Scraper, server.Options{
		Addr:            a.Config.Addr(),
		AllowedOrigins:  a.Config.AllowedOrigins,
		BillURLPrefix:   a.Config.BillURLPrefix,
		ShutdownTimeout: a.Config.ShutdownTimeout,
	}, *a.Logger)

	a.Logger.Info().
		Str("addr", a.Config.Addr()).
		Str("scraper", a.Scraper.Name()).
		Strs("allowed_origins", a.Config.AllowedOrigins).
		Msg("Starting bill API")

	return srv.Run(cmd.Context())
}
