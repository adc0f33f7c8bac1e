package engine_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/law-makers/legisinfo/internal/engine"
	"github.com/law-makers/legisinfo/internal/engine/htmlpage"
	"github.com/law-makers/legisinfo/internal/engine/sponsor"
	"github.com/law-makers/legisinfo/internal/engine/xmlfeed"
	"github.com/law-makers/legisinfo/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	c422URL     = "https://www.parl.ca/legisinfo/en/bill/44-1/c-422"
	c422XMLURL  = c422URL + "/xml"
	s2URL       = "https://www.parl.ca/legisinfo/en/bill/44-1/s-2"
	s2XMLURL    = s2URL + "/xml"
	zarrilloURL = "https://www.ourcommons.ca/members/en/bonita-zarrillo(105837)/xml"
)

const mockBillXML = `<?xml version="1.0" encoding="utf-8"?>
<Bills>
  <Bill>
    <NumberCode>C-422</NumberCode>
    <BillDocumentTypeName>Private Member's Bill</BillDocumentTypeName>
    <CurrentStatusEn>At consideration in committee in the House of Commons</CurrentStatusEn>
    <SponsorPersonId>105837</SponsorPersonId>
    <SponsorPersonOfficialFirstName>Bonita</SponsorPersonOfficialFirstName>
    <SponsorPersonOfficialLastName>Zarrillo</SponsorPersonOfficialLastName>
    <LatestActivityDateTime>2024-03-20T15:04:05</LatestActivityDateTime>
    <IsSenateBill>false</IsSenateBill>
  </Bill>
</Bills>`

const mockMPXML = `<?xml version="1.0" encoding="utf-8"?>
<Profile>
  <PersonOfficialFirstName>Bonita</PersonOfficialFirstName>
  <PersonOfficialLastName>Zarrillo</PersonOfficialLastName>
  <MemberOfParliamentRole>
    <CaucusShortName>NDP</CaucusShortName>
  </MemberOfParliamentRole>
</Profile>`

// routeFetcher serves canned documents by URL and records every call
type routeFetcher struct {
	docs  map[string]string
	errs  map[string]error
	calls []string
}

func (f *routeFetcher) Fetch(ctx context.Context, url string) (*models.Document, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.docs[url]
	if !ok {
		return nil, engine.NewEngineError(engine.ErrCodeNetworkError, "upstream returned non-success status", errors.New("HTTP 404: 404 Not Found"))
	}
	return &models.Document{URL: url, StatusCode: 200, ContentType: "application/xml", Body: []byte(body)}, nil
}

func newXMLScraper(f engine.Fetcher) *engine.BillScraper {
	return engine.NewBillScraper(f, xmlfeed.New(), sponsor.NewResolver(f, sponsor.DefaultMembersBaseURL))
}

func TestBillScraper_Scrape_Success(t *testing.T) {
	f := &routeFetcher{docs: map[string]string{
		c422XMLURL:  mockBillXML,
		zarrilloURL: mockMPXML,
	}}

	record, err := newXMLScraper(f).Scrape(context.Background(), c422URL)
	require.NoError(t, err)

	assert.Equal(t, models.BillRecord{
		BillNumber:   "c-422",
		BillType:     "Private Member's Bill",
		Status:       "At consideration in committee in the House of Commons",
		SponsorName:  "Bonita Zarrillo",
		SponsorParty: "NDP",
		LastUpdated:  "2024-03-20T15:04:05",
	}, *record)
	assert.Equal(t, []string{c422XMLURL, zarrilloURL}, f.calls)
}

func TestBillScraper_Scrape_SenateBill(t *testing.T) {
	f := &routeFetcher{docs: map[string]string{
		s2XMLURL: `<Bills><Bill>
<NumberCode>S-2</NumberCode>
<SponsorPersonId>1</SponsorPersonId>
<SponsorPersonOfficialFirstName>Marc</SponsorPersonOfficialFirstName>
<SponsorPersonOfficialLastName>Gold</SponsorPersonOfficialLastName>
<IsSenateBill>true</IsSenateBill>
</Bill></Bills>`,
	}}

	record, err := newXMLScraper(f).Scrape(context.Background(), s2URL)
	require.NoError(t, err)

	assert.Equal(t, "s-2", record.BillNumber)
	assert.Equal(t, sponsor.SenateParty, record.SponsorParty)
	assert.Equal(t, []string{s2XMLURL}, f.calls, "no secondary fetch for senate bills")
}

func TestBillScraper_Scrape_OnlyNumber(t *testing.T) {
	f := &routeFetcher{docs: map[string]string{
		c422XMLURL: `<?xml version="1.0" encoding="utf-8"?>
    <Bills>
        <Bill>
            <NumberCode>C-422</NumberCode>
        </Bill>
    </Bills>`,
	}}

	record, err := newXMLScraper(f).Scrape(context.Background(), c422URL)
	require.NoError(t, err)

	assert.Equal(t, "c-422", record.BillNumber)
	for name, v := range map[string]string{
		"bill_type":     record.BillType,
		"status":        record.Status,
		"sponsor_name":  record.SponsorName,
		"sponsor_party": record.SponsorParty,
		"last_updated":  record.LastUpdated,
	} {
		assert.Equal(t, models.Unknown, v, name)
	}
	assert.Len(t, f.calls, 1)
}

func TestBillScraper_Scrape_DroppedOverridesStatus(t *testing.T) {
	f := &routeFetcher{docs: map[string]string{
		s2XMLURL: `<Bills><Bill>
<NumberCode>S-2</NumberCode>
<CurrentStatusEn>Royal assent received</CurrentStatusEn>
<IsSenateBill>true</IsSenateBill>
<IsDroppedFromOrderPaper>true</IsDroppedFromOrderPaper>
</Bill></Bills>`,
	}}

	record, err := newXMLScraper(f).Scrape(context.Background(), s2URL)
	require.NoError(t, err)
	assert.Equal(t, engine.DroppedStatus, record.Status)
}

func TestBillScraper_Scrape_SponsorProfileFails(t *testing.T) {
	f := &routeFetcher{
		docs: map[string]string{c422XMLURL: mockBillXML},
		errs: map[string]error{
			zarrilloURL: engine.NewEngineError(engine.ErrCodeTimeout, "request timed out", context.DeadlineExceeded),
		},
	}

	record, err := newXMLScraper(f).Scrape(context.Background(), c422URL)
	require.NoError(t, err)
	assert.Equal(t, "Bonita Zarrillo", record.SponsorName)
	assert.Equal(t, models.Unknown, record.SponsorParty)
}

func TestBillScraper_Scrape_BillNotFound(t *testing.T) {
	f := &routeFetcher{docs: map[string]string{c422XMLURL: `<?xml version="1.0"?><Bills/>`}}

	record, err := newXMLScraper(f).Scrape(context.Background(), c422URL)
	require.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, engine.ErrBillNotFound)
	assert.Equal(t, engine.ErrCodeNotFound, engine.CodeOf(err))
}

func TestBillScraper_Scrape_MissingNumberInDocument(t *testing.T) {
	f := &routeFetcher{docs: map[string]string{
		c422XMLURL: `<Bills><Bill><BillDocumentTypeName>Government Bill</BillDocumentTypeName></Bill></Bills>`,
	}}

	record, err := newXMLScraper(f).Scrape(context.Background(), c422URL)
	require.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, engine.ErrMissingBillNumber)
	assert.Contains(t, err.Error(), "could not determine bill number")
}

func TestBillScraper_Scrape_MalformedNumberInDocument(t *testing.T) {
	f := &routeFetcher{docs: map[string]string{
		c422XMLURL: `<Bills><Bill><NumberCode>Bill C 422</NumberCode></Bill></Bills>`,
	}}

	record, err := newXMLScraper(f).Scrape(context.Background(), c422URL)
	require.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, engine.ErrMalformedBillNumber)
	assert.Equal(t, engine.ErrCodeInvalidContent, engine.CodeOf(err))
	assert.False(t, engine.IsClientError(err))
	assert.Equal(t, []string{c422XMLURL}, f.calls, "no sponsor lookup for a rejected record")
}

func TestBillScraper_Scrape_NetworkError(t *testing.T) {
	f := &routeFetcher{errs: map[string]error{
		c422XMLURL: engine.NewEngineError(engine.ErrCodeNetworkError, "failed to fetch URL", errors.New("Connection failed")),
	}}

	_, err := newXMLScraper(f).Scrape(context.Background(), c422URL)
	require.Error(t, err)
	assert.Equal(t, engine.ErrCodeNetworkError, engine.CodeOf(err))
	assert.Contains(t, err.Error(), "Connection failed")
}

func TestBillScraper_Scrape_InvalidURL(t *testing.T) {
	f := &routeFetcher{}

	_, err := newXMLScraper(f).Scrape(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.True(t, engine.IsClientError(err))
	assert.ErrorIs(t, err, engine.ErrBillNumber)
	assert.Empty(t, f.calls, "no fetch before the URL is validated")
}

func TestBillScraper_Scrape_HTMLVariant(t *testing.T) {
	page := `<html>
		<div class="bill-type">Senate Public Bill</div>
		<div class="status-label">In Progress</div>
		<div class="sponsor-info"><a href="/members/1234">John Doe</a></div>
		<div class="last-updated">2024-01-01</div>
	</html>`
	f := &routeFetcher{docs: map[string]string{
		s2URL:                              page,
		"https://www.parl.ca/members/1234": `<html><p class="party-affiliation">Liberal</p></html>`,
	}}
	// routeFetcher labels everything XML; the HTML profile must still parse via goquery
	htmlFetcher := engine.Fetcher(fetcherFunc(func(ctx context.Context, url string) (*models.Document, error) {
		doc, err := f.Fetch(ctx, url)
		if doc != nil {
			doc.ContentType = "text/html; charset=utf-8"
		}
		return doc, err
	}))

	s := engine.NewBillScraper(htmlFetcher, htmlpage.New(), sponsor.NewResolver(htmlFetcher, ""))
	record, err := s.Scrape(context.Background(), s2URL)
	require.NoError(t, err)

	assert.Equal(t, "s-2", record.BillNumber)
	assert.Equal(t, "Senate Public Bill", record.BillType)
	assert.Equal(t, "John Doe", record.SponsorName)
	assert.Equal(t, "Liberal", record.SponsorParty)
	assert.True(t, strings.HasPrefix(s.Name(), "BillScraper/"))
}

type fetcherFunc func(ctx context.Context, url string) (*models.Document, error)

func (fn fetcherFunc) Fetch(ctx context.Context, url string) (*models.Document, error) {
	return fn(ctx, url)
}
