package engine

import (
	"context"

	"github.com/law-makers/legisinfo/pkg/models"
)

// Extractor is the interface that every bill document format must implement
type Extractor interface {
	// Name returns the name of the extractor implementation
	Name() string

	// DocumentURL maps a canonical bill URL to the URL of the document this extractor reads
	DocumentURL(billURL string) string

	// Extract pulls the bill fields out of a fetched document
	Extract(doc *models.Document) (*models.BillFields, error)
}

// Fetcher retrieves raw upstream documents
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*models.Document, error)
}

// PartyResolver determines a sponsor's party affiliation.
// Implementations never fail; they fall back to models.Unknown.
type PartyResolver interface {
	Resolve(ctx context.Context, fields *models.BillFields) string
}
