package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/law-makers/legisinfo/pkg/models"
)

// SaveJSON writes an indented JSON export of the record to path
func SaveJSON(record *models.BillRecord, path string) error {
	content, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(content, '\n'), 0644)
}

// SaveRecord writes the record in the format implied by the file extension.
// .csv produces a header row and one data row; anything else is JSON.
func SaveRecord(record *models.BillRecord, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return SaveCSV(record, path)
	default:
		return SaveJSON(record, path)
	}
}
