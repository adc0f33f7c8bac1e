// Package xmlfeed extracts bill fields from the LEGISinfo XML export of a bill.
package xmlfeed

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/law-makers/legisinfo/internal/engine"
	"github.com/law-makers/legisinfo/pkg/models"
)

// Element names under the Bill node
const (
	elemNumber      = "NumberCode"
	elemType        = "BillDocumentTypeName"
	elemStatus      = "CurrentStatusEn"
	elemStatusAlt   = "StatusNameEn"
	elemFirstName   = "SponsorPersonOfficialFirstName"
	elemLastName    = "SponsorPersonOfficialLastName"
	elemSponsorID   = "SponsorPersonId"
	elemLastUpdated = "LatestActivityDateTime"
	elemSenate      = "IsSenateBill"
	elemDropped     = "IsDroppedFromOrderPaper"
)

// Extractor reads the XML representation of a bill
type Extractor struct{}

// New creates an XML feed extractor
func New() *Extractor {
	return &Extractor{}
}

// Name returns the name of this extractor
func (e *Extractor) Name() string {
	return "XMLFeed"
}

// DocumentURL returns the XML export URL for a bill page URL
func (e *Extractor) DocumentURL(billURL string) string {
	u := strings.TrimRight(billURL, "/")
	if strings.HasSuffix(u, "/xml") {
		return u
	}
	return u + "/xml"
}

// Extract parses doc and reads the first Bill element.
// A document without a Bill element is reported as NOT_FOUND.
func (e *Extractor) Extract(doc *models.Document) (*models.BillFields, error) {
	if doc == nil {
		return nil, engine.NewEngineError(engine.ErrCodeInvalidContent, "empty document", engine.ErrInvalidDocument)
	}

	root, err := xmlquery.Parse(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "invalid bill XML", err).
			WithDetail("url", doc.URL)
	}

	bill := xmlquery.FindOne(root, "//Bill")
	if bill == nil {
		return nil, engine.NewEngineError(engine.ErrCodeNotFound, "bill not found in XML", engine.ErrBillNotFound).
			WithDetail("url", doc.URL)
	}

	first := childText(bill, elemFirstName)
	last := childText(bill, elemLastName)

	status := childText(bill, elemStatus)
	if status == "" {
		status = childText(bill, elemStatusAlt)
	}

	fields := &models.BillFields{
		BillNumber:            models.OrUnknown(childText(bill, elemNumber)),
		BillType:              models.OrUnknown(childText(bill, elemType)),
		Status:                models.OrUnknown(status),
		SponsorName:           models.OrUnknown(strings.TrimSpace(first + " " + last)),
		LastUpdated:           models.OrUnknown(childText(bill, elemLastUpdated)),
		SponsorID:             childText(bill, elemSponsorID),
		SponsorFirstName:      first,
		SponsorLastName:       last,
		IsSenateBill:          childBool(bill, elemSenate),
		DroppedFromOrderPaper: childBool(bill, elemDropped),
		SourceURL:             doc.URL,
	}

	return fields, nil
}

// childText returns the trimmed text of the named direct child, or ""
func childText(n *xmlquery.Node, name string) string {
	c := n.SelectElement(name)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.InnerText())
}

// childBool reads a boolean child element. Absent or unparseable values are false.
func childBool(n *xmlquery.Node, name string) bool {
	b, err := strconv.ParseBool(strings.ToLower(childText(n, name)))
	return err == nil && b
}
