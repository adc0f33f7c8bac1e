// Package metadata summarizes the structure of a fetched page so selectors
// for the bill extractors can be found and checked.
package metadata

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultWords are the attribute fragments reported when none are given
var DefaultWords = []string{"bill", "status", "sponsor", "type", "update"}

// MaxMatchesPerWord caps the elements listed for each word
const MaxMatchesPerWord = 3

const maxTextLen = 100

// Element describes one matching element
type Element struct {
	Tag   string   `json:"tag"`
	Class []string `json:"class,omitempty"`
	ID    string   `json:"id,omitempty"`
	Text  string   `json:"text"`
}

// Frame describes an embedded iframe
type Frame struct {
	Src string `json:"src,omitempty"`
	ID  string `json:"id,omitempty"`
}

// Report is the structural summary of a page
type Report struct {
	URL           string               `json:"url"`
	Title         string               `json:"title"`
	Metadata      map[string]string    `json:"metadata"`
	Scripts       int                  `json:"scripts"`
	Iframes       []Frame              `json:"iframes"`
	Matches       map[string][]Element `json:"matches"`
	UniqueClasses []string             `json:"unique_classes"`
}

// Extract builds a Report for doc. Elements match a word when their class,
// id or name attribute contains it, case-insensitively.
func Extract(doc *goquery.Document, pageURL string, words []string) *Report {
	report := &Report{
		URL:      pageURL,
		Metadata: make(map[string]string),
		Iframes:  []Frame{},
		Matches:  make(map[string][]Element),
	}
	if doc == nil {
		return report
	}
	if len(words) == 0 {
		words = DefaultWords
	}

	report.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(i int, sel *goquery.Selection) {
		content, _ := sel.Attr("content")
		if name, exists := sel.Attr("name"); exists {
			report.Metadata[name] = content
		}
		if property, exists := sel.Attr("property"); exists {
			report.Metadata[property] = content
		}
	})

	report.Scripts = doc.Find("script").Length()

	doc.Find("iframe").Each(func(i int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		id, _ := sel.Attr("id")
		report.Iframes = append(report.Iframes, Frame{Src: src, ID: id})
	})

	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		var found []Element
		doc.Find("*").EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if attrContains(sel, word) {
				found = append(found, describe(sel))
			}
			return len(found) < MaxMatchesPerWord
		})
		if len(found) > 0 {
			report.Matches[word] = found
		}
	}

	report.UniqueClasses = uniqueClasses(doc)
	return report
}

func attrContains(sel *goquery.Selection, word string) bool {
	for _, attr := range []string{"class", "id", "name"} {
		if v, ok := sel.Attr(attr); ok && strings.Contains(strings.ToLower(v), word) {
			return true
		}
	}
	return false
}

func describe(sel *goquery.Selection) Element {
	id, _ := sel.Attr("id")
	class, _ := sel.Attr("class")
	return Element{
		Tag:   goquery.NodeName(sel),
		Class: strings.Fields(class),
		ID:    id,
		Text:  truncate(strings.Join(strings.Fields(sel.Text()), " "), maxTextLen),
	}
}

func uniqueClasses(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	doc.Find("[class]").Each(func(i int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		for _, c := range strings.Fields(class) {
			seen[c] = struct{}{}
		}
	})

	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// CandidateURLs lists alternate machine-readable renditions of a bill page
func CandidateURLs(billURL string) []string {
	base := strings.TrimRight(billURL, "/")
	return []string{base + "/xml", base + "/json"}
}
