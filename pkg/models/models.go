package models

import (
	"strings"
	"time"
)

// Unknown is the placeholder used for any field that could not be determined
const Unknown = "Unknown"

// BillRecord is the normalized view of a single bill returned to callers
type BillRecord struct {
	BillNumber   string `json:"bill_number"`
	BillType     string `json:"bill_type"`
	Status       string `json:"status"`
	SponsorName  string `json:"sponsor_name"`
	SponsorParty string `json:"sponsor_party"`
	LastUpdated  string `json:"last_updated"`
}

// NewBillRecord builds a BillRecord, substituting Unknown for any blank field.
// The bill number is expected to be validated by the caller.
func NewBillRecord(number, billType, status, sponsorName, sponsorParty, lastUpdated string) BillRecord {
	return BillRecord{
		BillNumber:   OrUnknown(number),
		BillType:     OrUnknown(billType),
		Status:       OrUnknown(status),
		SponsorName:  OrUnknown(sponsorName),
		SponsorParty: OrUnknown(sponsorParty),
		LastUpdated:  OrUnknown(lastUpdated),
	}
}

// BillFields holds the raw values pulled out of one bill document
// before post-processing and sponsor resolution.
type BillFields struct {
	BillNumber  string
	BillType    string
	Status      string
	SponsorName string
	LastUpdated string

	// Sponsor identity used to locate the member profile
	SponsorID         string
	SponsorFirstName  string
	SponsorLastName   string
	SponsorProfileURL string

	IsSenateBill          bool
	DroppedFromOrderPaper bool

	// SourceURL is the URL of the document the fields came from
	SourceURL string
}

// Document is a fetched upstream response body
type Document struct {
	URL          string    `json:"url"`
	StatusCode   int       `json:"status_code"`
	ContentType  string    `json:"content_type,omitempty"`
	Body         []byte    `json:"-"`
	FetchedAt    time.Time `json:"fetched_at"`
	ResponseTime int64     `json:"response_time_ms"`
}

// IsXML reports whether the document looks like an XML payload, judged by
// content type first and by the leading bytes otherwise.
func (d *Document) IsXML() bool {
	if d == nil {
		return false
	}
	ct := strings.ToLower(d.ContentType)
	if strings.Contains(ct, "xml") && !strings.Contains(ct, "xhtml") {
		return true
	}
	if strings.Contains(ct, "html") {
		return false
	}
	head := strings.TrimSpace(string(d.Body[:min(len(d.Body), 256)]))
	return strings.HasPrefix(head, "<?xml")
}

// DocumentFormat selects which bill representation is fetched and parsed
type DocumentFormat string

const (
	FormatXML  DocumentFormat = "xml"
	FormatHTML DocumentFormat = "html"
)

// OrUnknown trims s and returns Unknown when nothing is left
func OrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	return s
}

// IsUnknown reports whether s carries no usable value
func IsUnknown(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == Unknown
}
