// internal/engine/metadata/extractor_test.go
package metadata

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const billPage = `<html>
<head>
	<title> Bill S-2 </title>
	<meta name="description" content="An Act to amend">
	<meta property="og:type" content="website">
	<script src="/app.js"></script>
	<script>window.bill = {};</script>
</head>
<body>
	<div id="bill-header" class="bill-number main">S-2</div>
	<span class="status-label">Royal assent</span>
	<input name="billSearch">
	<div class="sponsor-info"><a href="/members/1">Marc Gold</a></div>
	<p class="bill-note">one</p>
	<p class="bill-note">two</p>
	<iframe src="https://embed.example/frame" id="frame-1"></iframe>
</body>
</html>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

func TestExtract(t *testing.T) {
	report := Extract(parse(t, billPage), "https://www.parl.ca/legisinfo/en/bill/44-1/s-2", nil)

	if report.Title != "Bill S-2" {
		t.Errorf("Expected title 'Bill S-2', got '%s'", report.Title)
	}
	if report.Metadata["description"] != "An Act to amend" || report.Metadata["og:type"] != "website" {
		t.Errorf("Unexpected metadata: %v", report.Metadata)
	}
	if report.Scripts != 2 {
		t.Errorf("Expected 2 scripts, got %d", report.Scripts)
	}
	if len(report.Iframes) != 1 || report.Iframes[0].ID != "frame-1" {
		t.Errorf("Unexpected iframes: %v", report.Iframes)
	}

	bill := report.Matches["bill"]
	if len(bill) != MaxMatchesPerWord {
		t.Fatalf("Expected %d 'bill' matches, got %d", MaxMatchesPerWord, len(bill))
	}
	if bill[0].Tag != "div" || bill[0].ID != "bill-header" || bill[0].Text != "S-2" {
		t.Errorf("Unexpected first match: %+v", bill[0])
	}
	if bill[1].Tag != "input" {
		t.Errorf("Expected name attribute match on input, got %+v", bill[1])
	}

	if _, ok := report.Matches["update"]; ok {
		t.Error("Expected no matches for 'update'")
	}
	if len(report.Matches["sponsor"]) != 1 {
		t.Errorf("Expected one sponsor match, got %v", report.Matches["sponsor"])
	}

	want := []string{"bill-note", "bill-number", "main", "sponsor-info", "status-label"}
	if strings.Join(report.UniqueClasses, ",") != strings.Join(want, ",") {
		t.Errorf("Expected classes %v, got %v", want, report.UniqueClasses)
	}
}

func TestExtract_CustomWordsAndTruncation(t *testing.T) {
	long := strings.Repeat("é", 150)
	report := Extract(parse(t, `<div class="Party">`+long+`</div>`), "", []string{" PARTY ", ""})

	got := report.Matches["party"]
	if len(got) != 1 {
		t.Fatalf("Expected one match, got %v", report.Matches)
	}
	if n := len([]rune(got[0].Text)); n != 100 {
		t.Errorf("Expected text truncated to 100 runes, got %d", n)
	}
}

func TestExtract_NilDocument(t *testing.T) {
	report := Extract(nil, "u", nil)
	if report.URL != "u" || len(report.Matches) != 0 {
		t.Errorf("Unexpected report for nil document: %+v", report)
	}
}

func TestCandidateURLs(t *testing.T) {
	got := CandidateURLs("https://www.parl.ca/legisinfo/en/bill/44-1/s-2/")
	if len(got) != 2 || got[0] != "https://www.parl.ca/legisinfo/en/bill/44-1/s-2/xml" || got[1] != "https://www.parl.ca/legisinfo/en/bill/44-1/s-2/json" {
		t.Errorf("Unexpected candidates: %v", got)
	}
}
