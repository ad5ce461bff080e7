package statement

import (
	"database/sql"
	"errors"
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Line is one itemized contribution on a statement.
type Line struct {
	Date     time.Time       `json:"date" example:"2024-03-17T00:00:00Z"`
	Category string          `json:"category" example:"General"`
	Amount   decimal.Decimal `json:"amount" example:"25.00"`
}

var (
	ErrNoMembers      = errors.New("the household has no members")
	ErrNoGivingItems  = errors.New("the giving records for this period contain no items")
	ErrNoGivingOnFile = errors.New("No giving records found for this period")
)

// aggregateRow is the scan target for the itemization query.
type aggregateRow struct {
	Date     time.Time
	Category sql.NullString
	Amount   decimal.Decimal
}

// Aggregate collects all giving items of a household for a tax year.
//
// Lines are ordered by date, then by category display order and name.
// Items without a category are reported under "General". Amounts are
// summed as exact decimals, zero amount items are kept on the statement.
// The total carries two decimal places.
func Aggregate(db *gorm.DB, churchID, householdID uuid.UUID, year types.Year) ([]Line, decimal.Decimal, error) {
	var members []models.Member
	err := db.Where(&models.Member{ChurchID: churchID, HouseholdID: householdID}).Find(&members).Error
	if err != nil {
		return nil, decimal.Zero, err
	}

	if len(members) == 0 {
		return nil, decimal.Zero, ErrNoMembers
	}

	memberIDs := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		memberIDs = append(memberIDs, member.ID)
	}

	var count int64
	err = db.Model(&models.GivingRecord{}).
		Where("member_id IN ?", memberIDs).
		Where("date_given >= ?", year.Start()).
		Where("date_given <= ?", year.End()).
		Count(&count).Error
	if err != nil {
		return nil, decimal.Zero, err
	}

	if count == 0 {
		return nil, decimal.Zero, ErrNoGivingOnFile
	}

	var rows []aggregateRow
	err = db.Table("giving_items").
		Select("giving_records.date_given AS date, giving_categories.name AS category, giving_items.amount AS amount").
		Joins("JOIN giving_records ON giving_records.id = giving_items.giving_record_id").
		Joins("LEFT JOIN giving_categories ON giving_categories.id = giving_items.category_id AND giving_categories.deleted_at IS NULL").
		Where("giving_items.deleted_at IS NULL").
		Where("giving_records.deleted_at IS NULL").
		Where("giving_records.member_id IN ?", memberIDs).
		Where("giving_records.date_given >= ?", year.Start()).
		Where("giving_records.date_given <= ?", year.End()).
		Order("giving_records.date_given ASC").
		Order("giving_categories.display_order ASC").
		Order("giving_categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, decimal.Zero, err
	}

	if len(rows) == 0 {
		return nil, decimal.Zero, ErrNoGivingItems
	}

	lines := make([]Line, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		category := "General"
		if row.Category.Valid && row.Category.String != "" {
			category = row.Category.String
		}

		lines = append(lines, Line{
			Date:     row.Date.In(time.UTC),
			Category: category,
			Amount:   row.Amount,
		})
		total = total.Add(row.Amount)
	}

	return lines, total.Round(2), nil
}
