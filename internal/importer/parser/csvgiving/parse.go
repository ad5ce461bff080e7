// Package csvgiving parses giving CSV files with the columns
// date, envelope, category, amount, note.
package csvgiving

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/importer"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/shopspring/decimal"
)

// Column indices of the giving CSV format.
const (
	Date = iota
	Envelope
	Category
	Amount
	Note
)

// Parse parses a giving CSV file.
//
// The first line is treated as a header and skipped. Dates use the
// MM/DD/YYYY format. Amounts must be positive decimals.
func Parse(f io.Reader) ([]importer.GivingPreview, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true
	reader.FieldsPerRecord = 5

	var previews []importer.GivingPreview

	// Skip the first line
	_, err := reader.Read()
	if err == io.EOF {
		return []importer.GivingPreview{}, nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		date, err := time.Parse("01/02/2006", record[Date])
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse date: %w", err))
		}

		envelope, err := strconv.Atoi(strings.TrimSpace(record[Envelope]))
		if err != nil {
			return csvReadError(reader, errors.New("the envelope number could not be parsed to an integer"))
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[Amount]))
		if err != nil {
			return csvReadError(reader, errors.New("the amount could not be parsed to a decimal"))
		}

		if !amount.IsPositive() {
			return csvReadError(reader, errors.New("the amount for a gift must be positive"))
		}

		previews = append(previews, importer.GivingPreview{
			Record: models.GivingRecord{
				DateGiven: date,
				Note:      strings.TrimSpace(record[Note]),
				Items: []models.GivingItem{
					{Amount: amount},
				},
			},
			EnvelopeNumber: envelope,
			CategoryName:   strings.TrimSpace(record[Category]),
		})
	}

	return previews, nil
}

// csvReadError returns the an error with the format string, including the line of the input
// the error occurred in in the message.
func csvReadError(r *csv.Reader, err error) ([]importer.GivingPreview, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []importer.GivingPreview{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
