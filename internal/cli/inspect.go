// internal/cli/inspect.go
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/law-makers/legisinfo/internal/engine"
	"github.com/law-makers/legisinfo/internal/engine/metadata"
	"github.com/law-makers/legisinfo/internal/ui"
	"github.com/law-makers/legisinfo/internal/utils/output"
)

var (
	inspectWords  []string
	inspectOutput string
	inspectRenditions  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <url>",
	Short: "Summarize a page's structure to find selectors",
	Long: `Fetches a page and reports its script and iframe counts, the first elements
whose class, id or name contains each word, and every CSS class in use.`,
	Example: `  # Inspect a bill page with the default words
  legisinfo inspect https://www.parl.ca/legisinfo/en/bill/44-1/s-2

  # Look for party markup and save the page as Markdown
  legisinfo inspect https://www.ourcommons.ca/members/en/1 --words party,caucus -o member.md

  # Also check which machine-readable renditions respond
  legisinfo inspect https://www.parl.ca/legisinfo/en/bill/44-1/s-2 --renditions`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringSliceVarP(&inspectWords, "words", "w", nil, "Attribute fragments to look for (default bill,status,sponsor,type,update)")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "Save the page (.html indented, .md Markdown)")
	inspectCmd.Flags().BoolVar(&inspectRenditions, "renditions", false, "Also fetch the /xml and /json renditions of the page")
}

func runInspect(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	pageURL := args[0]

	page, err := a.Fetcher.Fetch(cmd.Context(), pageURL)
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return fmt.Errorf("failed to parse page: %w", err)
	}

	report := metadata.Extract(doc, pageURL, inspectWords)
	out := cmd.OutOrStdout()
	printReport(out, report, page.StatusCode, page.ResponseTime)

	if inspectRenditions {
		fmt.Fprintf(out, "\n%s\n", ui.Bold("Renditions"))
		for _, p := range fetchRenditions(cmd.Context(), a.Fetcher, metadata.CandidateURLs(pageURL)) {
			if p.err != nil {
				fmt.Fprintf(out, "  %s %s %s\n", ui.Error("✗"), p.url, ui.Info(p.err.Error()))
				continue
			}
			fmt.Fprintf(out, "  %s %s %s\n", ui.Success("✓"), p.url, ui.Info(p.contentType))
		}
	}

	if inspectOutput != "" {
		if err := savePage(pageURL, string(page.Body), inspectOutput); err != nil {
			return err
		}
		log.Info().Str("file", inspectOutput).Msg("Page saved")
		fmt.Fprintln(out, ui.Success("\n✓ Saved to "+inspectOutput))
	}
	return nil
}

type renditionResult struct {
	url         string
	contentType string
	err         error
}

// fetchRenditions fetches every candidate concurrently; results keep the input order
func fetchRenditions(ctx context.Context, f engine.Fetcher, candidates []string) []renditionResult {
	results := make([]renditionResult, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	for i, candidate := range candidates {
		g.Go(func() error {
			results[i].url = candidate
			doc, err := f.Fetch(ctx, candidate)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].contentType = doc.ContentType
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func savePage(pageURL, htmlContent, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return output.SaveMarkdown(pageURL, htmlContent, path)
	default:
		return output.SavePrettyHTML(htmlContent, path)
	}
}

func printReport(w io.Writer, r *metadata.Report, status int, responseTime int64) {
	fmt.Fprintf(w, "\n%s %s\n", ui.Label("URL:          "), r.URL)
	fmt.Fprintf(w, "%s %d\n", ui.Label("Status:       "), status)
	fmt.Fprintf(w, "%s %s\n", ui.Label("Title:        "), r.Title)
	fmt.Fprintf(w, "%s %dms\n", ui.Label("Response Time:"), responseTime)
	fmt.Fprintf(w, "%s %d\n", ui.Label("Scripts:      "), r.Scripts)
	fmt.Fprintf(w, "%s %d\n", ui.Label("Iframes:      "), len(r.Iframes))
	for _, f := range r.Iframes {
		fmt.Fprintf(w, "  src=%s id=%s\n", f.Src, f.ID)
	}

	words := inspectWords
	if len(words) == 0 {
		words = metadata.DefaultWords
	}
	for _, word := range words {
		matches := r.Matches[strings.ToLower(strings.TrimSpace(word))]
		if len(matches) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", ui.Bold(fmt.Sprintf("Elements containing '%s'", word)))
		for _, m := range matches {
			fmt.Fprintf(w, "  %s <%s> class=%v id=%q\n", ui.Label("•"), m.Tag, m.Class, m.ID)
			fmt.Fprintf(w, "    %s\n", ui.Info(m.Text))
		}
	}

	fmt.Fprintf(w, "\n%s (%d)\n  %s\n", ui.Bold("Unique classes"), len(r.UniqueClasses), strings.Join(r.UniqueClasses, " "))
}
