package output

import (
	"encoding/csv"
	"os"

	"github.com/law-makers/legisinfo/pkg/models"
)

// csvHeader matches the JSON field names of models.BillRecord
var csvHeader = []string{"bill_number", "bill_type", "status", "sponsor_name", "sponsor_party", "last_updated"}

// SaveCSV writes the record to a CSV file. Returns an error on failure.
func SaveCSV(record *models.BillRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	row := []string{
		record.BillNumber,
		record.BillType,
		record.Status,
		record.SponsorName,
		record.SponsorParty,
		record.LastUpdated,
	}
	if err := writer.Write(row); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
