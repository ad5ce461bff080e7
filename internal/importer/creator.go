package importer

import (
	"fmt"
	"strings"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// Create attributes the parsed previews to members and categories and
// saves them.
//
// The import is all or nothing: a single line that cannot be attributed
// rolls back the whole import, so that a partially imported file can
// simply be fixed and uploaded again.
func Create(db *gorm.DB, churchID uuid.UUID, previews []GivingPreview) ([]models.GivingRecord, error) {
	var categories []models.GivingCategory
	err := db.
		Where(&models.GivingCategory{ChurchID: churchID, Active: true}).
		Order("display_order ASC").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	records := make([]models.GivingRecord, 0, len(previews))
	err = db.Transaction(func(tx *gorm.DB) error {
		for i, preview := range previews {
			record := preview.Record
			record.ChurchID = churchID

			var member models.Member
			err := tx.
				Where(&models.Member{ChurchID: churchID}).
				Where("envelope_number = ?", preview.EnvelopeNumber).
				First(&member).Error
			if err != nil {
				return fmt.Errorf("line %d: no member with envelope number %d", i+2, preview.EnvelopeNumber)
			}
			record.MemberID = member.ID

			categoryID, err := matchCategory(categories, preview.CategoryName)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+2, err)
			}
			for j := range record.Items {
				record.Items[j].CategoryID = categoryID
			}

			err = tx.Create(&record).Error
			if err != nil {
				return err
			}

			records = append(records, record)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// matchCategory resolves a CSV category cell against the categories of
// the church. The cell may contain * wildcards. An empty cell leaves the
// item uncategorized.
func matchCategory(categories []models.GivingCategory, name string) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}

	pattern := strings.ToLower(name)
	for _, category := range categories {
		if glob.Glob(pattern, strings.ToLower(category.Name)) {
			id := category.ID
			return &id, nil
		}
	}

	return nil, fmt.Errorf("no giving category matches %q", name)
}
