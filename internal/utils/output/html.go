package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CleanHTML strips scripts, styles and form controls and drops every
// attribute except link targets and image sources.
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, link, meta, noscript, iframe, svg, form, input, button, select, textarea, canvas").Remove()

	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		node := s.Nodes[0]
		var kept []html.Attribute
		for _, attr := range node.Attr {
			if keepAttr(node.Data, attr.Key) {
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})

	htmlStr, err := doc.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(htmlStr), nil
}

func keepAttr(tag, key string) bool {
	switch tag {
	case "a":
		return key == "href" || key == "title"
	case "img":
		return key == "src" || key == "alt" || key == "title"
	}
	return false
}

// PrettyPrint returns an indented human-readable representation of an HTML node tree
func PrettyPrint(n *html.Node) string {
	var sb strings.Builder
	var f func(*html.Node, int)
	f = func(n *html.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		switch n.Type {
		case html.DocumentNode:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				f(c, depth)
			}
		case html.ElementNode:
			sb.WriteString(fmt.Sprintf("%s<%s", indent, n.Data))
			for _, a := range n.Attr {
				sb.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Key, html.EscapeString(a.Val)))
			}
			sb.WriteString(">\n")
			if isVoidElement(n.Data) {
				return
			}

			for c := n.FirstChild; c != nil; c = c.NextSibling {
				f(c, depth+1)
			}
			sb.WriteString(fmt.Sprintf("%s</%s>\n", indent, n.Data))
		case html.TextNode:
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(fmt.Sprintf("%s%s\n", indent, html.EscapeString(text)))
			}
		case html.DoctypeNode:
			sb.WriteString(fmt.Sprintf("<!DOCTYPE %s>\n", n.Data))
		}
	}
	f(n, 0)
	return sb.String()
}

// SavePrettyHTML parses htmlContent and writes it indented to path
func SavePrettyHTML(htmlContent, path string) error {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}
	return os.WriteFile(path, []byte(PrettyPrint(root)), 0644)
}

func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}
