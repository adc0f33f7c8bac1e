package engine

import (
	"context"
	"time"

	"github.com/law-makers/legisinfo/pkg/models"
	"github.com/rs/zerolog/log"
)

// DroppedStatus replaces the reported status of a bill dropped from the order paper
const DroppedStatus = "Dropped from Senate Order Paper"

// BillScraper turns a bill URL into a BillRecord.
// It performs one fetch for the bill document and delegates any sponsor
// profile lookup to its PartyResolver.
type BillScraper struct {
	fetcher   Fetcher
	extractor Extractor
	resolver  PartyResolver
}

// NewBillScraper creates a BillScraper with its collaborators
func NewBillScraper(f Fetcher, ex Extractor, r PartyResolver) *BillScraper {
	return &BillScraper{
		fetcher:   f,
		extractor: ex,
		resolver:  r,
	}
}

// Name returns the name of this scraper
func (s *BillScraper) Name() string {
	return "BillScraper/" + s.extractor.Name()
}

// Scrape fetches and normalizes the bill at billURL
func (s *BillScraper) Scrape(ctx context.Context, billURL string) (*models.BillRecord, error) {
	start := time.Now()

	urlNumber, ok := ExtractBillNumber(billURL)
	if !ok {
		return nil, NewEngineError(ErrCodeValidation, "could not extract bill number from URL", ErrBillNumber).
			WithDetail("url", billURL)
	}

	docURL := s.extractor.DocumentURL(billURL)

	log.Debug().
		Str("url", billURL).
		Str("document_url", docURL).
		Str("scraper", s.Name()).
		Msg("Starting bill scrape")

	doc, err := s.fetcher.Fetch(ctx, docURL)
	if err != nil {
		return nil, err
	}

	fields, err := s.extractor.Extract(doc)
	if err != nil {
		return nil, err
	}

	number, valid := NormalizeBillNumber(fields.BillNumber)
	if number == "" || number == "unknown" {
		return nil, NewEngineError(ErrCodeInvalidContent, "could not determine bill number", ErrMissingBillNumber).
			WithDetail("url", docURL)
	}
	if !valid {
		return nil, NewEngineError(ErrCodeInvalidContent, "bill number in document is not <letter>-<digits>", ErrMalformedBillNumber).
			WithDetail("url", docURL).
			WithDetail("bill_number", number)
	}
	if want := normalized(urlNumber); number != want {
		log.Warn().
			Str("url_bill_number", want).
			Str("document_bill_number", number).
			Msg("Bill number in document differs from URL")
	}

	status := fields.Status
	if fields.DroppedFromOrderPaper {
		status = DroppedStatus
	}

	party := s.resolver.Resolve(ctx, fields)

	record := models.NewBillRecord(
		number,
		fields.BillType,
		status,
		fields.SponsorName,
		party,
		fields.LastUpdated,
	)

	log.Debug().
		Str("bill_number", record.BillNumber).
		Str("sponsor_party", record.SponsorParty).
		Dur("elapsed", time.Since(start)).
		Msg("Bill scrape completed")

	return &record, nil
}

func normalized(n string) string {
	out, _ := NormalizeBillNumber(n)
	return out
}
