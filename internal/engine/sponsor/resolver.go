// Package sponsor resolves a bill sponsor's caucus from the member profile.
package sponsor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/xmlquery"
	"github.com/law-makers/legisinfo/internal/engine"
	"github.com/law-makers/legisinfo/pkg/models"
	"github.com/rs/zerolog/log"
)

// SenateParty is reported for every Senate bill; senators carry no caucus in the bill feed
const SenateParty = "Senate"

// DefaultMembersBaseURL is the profile root of the House of Commons member directory
const DefaultMembersBaseURL = "https://www.ourcommons.ca/members/en"

// Lookups on the profile documents
const (
	xpathCurrentCaucus    = "//MemberOfParliamentRole/CaucusShortName"
	xpathHistoricalCaucus = "//CaucusMemberRoles/CaucusMemberRole/CaucusShortName"
	selectorPartyHTML     = ".party-affiliation"
)

var errNoCaucus = errors.New("no caucus in profile")

// Resolver finds the party of a bill's sponsor
type Resolver struct {
	fetcher engine.Fetcher
	baseURL string
}

// NewResolver creates a Resolver that builds profile URLs under membersBaseURL
func NewResolver(f engine.Fetcher, membersBaseURL string) *Resolver {
	if membersBaseURL == "" {
		membersBaseURL = DefaultMembersBaseURL
	}
	return &Resolver{
		fetcher: f,
		baseURL: strings.TrimRight(membersBaseURL, "/"),
	}
}

// Resolve returns the sponsor's party, "Senate" for Senate bills, or Unknown.
// It never returns an error: a failed profile lookup degrades to Unknown.
func (r *Resolver) Resolve(ctx context.Context, fields *models.BillFields) string {
	if fields == nil {
		return models.Unknown
	}
	if fields.IsSenateBill {
		return SenateParty
	}

	profileURL := fields.SponsorProfileURL
	if profileURL == "" {
		var ok bool
		profileURL, ok = r.ProfileURL(fields.SponsorFirstName, fields.SponsorLastName, fields.SponsorID)
		if !ok {
			log.Debug().Msg("No sponsor identity on bill, party unknown")
			return models.Unknown
		}
	}

	party, err := r.lookup(ctx, profileURL)
	if err != nil {
		log.Warn().
			Err(err).
			Str("profile_url", profileURL).
			Msg("Failed to resolve sponsor party")
		return models.Unknown
	}
	return party
}

// ProfileURL builds the member profile XML URL, e.g.
// Bonita Zarrillo (105837) -> <base>/bonita-zarrillo(105837)/xml.
// The second result is false when any part is missing.
func (r *Resolver) ProfileURL(firstName, lastName, id string) (string, bool) {
	first := slug(firstName)
	last := slug(lastName)
	id = strings.TrimSpace(id)
	if first == "" || last == "" || id == "" {
		return "", false
	}
	return fmt.Sprintf("%s/%s-%s(%s)/xml", r.baseURL, first, last, id), true
}

func (r *Resolver) lookup(ctx context.Context, profileURL string) (string, error) {
	doc, err := r.fetcher.Fetch(ctx, profileURL)
	if err != nil {
		return "", err
	}
	if doc.IsXML() {
		return partyFromXML(doc.Body)
	}
	return partyFromHTML(doc.Body)
}

// partyFromXML prefers the current role and falls back to the last historical caucus role.
// TODO: re-check the last-entry tie-break against profiles with overlapping caucus roles.
func partyFromXML(body []byte) (string, error) {
	root, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("invalid profile XML: %w", err)
	}

	if n := xmlquery.FindOne(root, xpathCurrentCaucus); n != nil {
		if party := strings.TrimSpace(n.InnerText()); party != "" {
			return party, nil
		}
	}

	roles := xmlquery.Find(root, xpathHistoricalCaucus)
	if len(roles) > 0 {
		if party := strings.TrimSpace(roles[len(roles)-1].InnerText()); party != "" {
			return party, nil
		}
	}

	return "", errNoCaucus
}

func partyFromHTML(body []byte) (string, error) {
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse profile HTML: %w", err)
	}
	party := strings.TrimSpace(page.Find(selectorPartyHTML).First().Text())
	if party == "" {
		return "", errNoCaucus
	}
	return party, nil
}

// slug lower-cases a name and joins its words with hyphens
func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
