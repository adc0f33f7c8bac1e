package output

import (
	"fmt"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	urlutil "github.com/law-makers/legisinfo/internal/utils/url"
)

// PageMarkdown converts a fetched page to Markdown with absolute links
func PageMarkdown(pageURL, htmlContent string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	// Resolve relative links against the page URL
	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}

			resolved := urlutil.ResolveURL(pageURL, href)
			title, hasTitle := selec.Attr("title")
			var titlePart string
			if hasTitle {
				titlePart = fmt.Sprintf(" %q", title)
			}
			str := fmt.Sprintf("[%s](%s)%s", selec.Text(), resolved, titlePart)
			return &str
		},
	})

	cleaned, err := CleanHTML(htmlContent)
	if err != nil {
		return "", err
	}

	return converter.ConvertString(cleaned)
}

// SaveMarkdown converts a page to Markdown and writes it to path
func SaveMarkdown(pageURL, htmlContent, path string) error {
	mdStr, err := PageMarkdown(pageURL, htmlContent)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(mdStr), 0644)
}
