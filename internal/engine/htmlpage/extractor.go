// internal/engine/htmlpage/extractor.go
package htmlpage

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/legisinfo/internal/engine"
	urlutil "github.com/law-makers/legisinfo/internal/utils/url"
	"github.com/law-makers/legisinfo/pkg/models"
	"github.com/rs/zerolog/log"
)

// Selectors used on the bill page
const (
	SelectorNumber      = ".bill-number"
	SelectorType        = ".bill-type"
	SelectorStatus      = ".status-label"
	SelectorSponsor     = ".sponsor-info a"
	SelectorLastUpdated = ".last-updated"
	SelectorSenate      = "[data-senate-bill='true'], .senate-bill"
	SelectorDropped     = ".dropped-order-paper"
)

// Extractor reads bill fields from the public HTML bill page using goquery
type Extractor struct{}

// New creates an HTML page extractor
func New() *Extractor {
	return &Extractor{}
}

// Name returns the name of this extractor
func (e *Extractor) Name() string {
	return "HTMLPage"
}

// DocumentURL returns the bill page itself
func (e *Extractor) DocumentURL(billURL string) string {
	return billURL
}

// Extract reads the bill fields from an HTML page.
// Missing elements yield Unknown; only unparseable markup is an error.
func (e *Extractor) Extract(doc *models.Document) (*models.BillFields, error) {
	if doc == nil {
		return nil, engine.NewEngineError(engine.ErrCodeInvalidContent, "empty document", engine.ErrInvalidDocument)
	}

	page, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to parse HTML", err).
			WithDetail("url", doc.URL)
	}

	fields := &models.BillFields{
		BillNumber:            SelectText(page, SelectorNumber),
		BillType:              SelectText(page, SelectorType),
		Status:                SelectText(page, SelectorStatus),
		SponsorName:           models.Unknown,
		LastUpdated:           SelectText(page, SelectorLastUpdated),
		IsSenateBill:          page.Find(SelectorSenate).Length() > 0,
		DroppedFromOrderPaper: page.Find(SelectorDropped).Length() > 0,
		SourceURL:             doc.URL,
	}

	// The page does not always render the number; the URL always carries it
	if models.IsUnknown(fields.BillNumber) {
		if n, ok := engine.ExtractBillNumber(doc.URL); ok {
			fields.BillNumber = n
		}
	}

	if sponsor := page.Find(SelectorSponsor).First(); sponsor.Length() > 0 {
		fields.SponsorName = models.OrUnknown(sponsor.Text())
		if href, ok := sponsor.Attr("href"); ok && strings.TrimSpace(href) != "" {
			fields.SponsorProfileURL = urlutil.ResolveURL(doc.URL, strings.TrimSpace(href))
		}
	}

	log.Debug().
		Str("url", doc.URL).
		Str("bill_number", fields.BillNumber).
		Bool("senate", fields.IsSenateBill).
		Msg("Extracted bill page fields")

	return fields, nil
}

// SelectText returns the trimmed text of the first element matching selector, or Unknown
func SelectText(doc *goquery.Document, selector string) string {
	if doc == nil {
		return models.Unknown
	}
	return models.OrUnknown(doc.Find(selector).First().Text())
}
