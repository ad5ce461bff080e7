package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GivingStatement is the persisted record of a generated year-end giving
// statement for one household and tax year.
//
// At most one non-preview statement exists per household and year.
// Regenerating overwrites the existing row instead of creating a second
// one, and clears the send tracking fields: a statement whose content
// changed must not appear as already sent.
type GivingStatement struct {
	DefaultModel
	Church      Church    `json:"-"`
	ChurchID    uuid.UUID `gorm:"index"`
	Household   Household `json:"-"`
	HouseholdID uuid.UUID `gorm:"uniqueIndex:statement_household_year"`

	Year        int  `gorm:"uniqueIndex:statement_household_year"`
	PreviewOnly bool `gorm:"default:false"`

	TotalAmount     decimal.Decimal `gorm:"type:DECIMAL(20,2)"`
	StatementNumber string

	GeneratedAt   time.Time
	GeneratedBy   User      `json:"-"`
	GeneratedByID uuid.UUID

	// PDF is the rendered document, embedded in the row.
	PDF []byte `gorm:"type:blob" json:"-"`

	// Send tracking. All three are nil until the statement is sent and
	// reset to nil whenever the statement is regenerated.
	EmailStatus *string
	SentAt      *time.Time
	SentBy      *User `json:"-"`
	SentByID    *uuid.UUID
}

var ErrStatementExists = errors.New("a giving statement for this household and year already exists")

// UpsertStatement persists a generated statement for a household and year.
//
// If a non-preview statement already exists for the household and year,
// it is updated in place and its send tracking fields are set back to
// NULL. Otherwise a new row is inserted. The returned bool reports
// whether a new row was created.
func UpsertStatement(db *gorm.DB, churchID, householdID uuid.UUID, year int, total decimal.Decimal, number string, pdf []byte, actorID uuid.UUID) (GivingStatement, bool, error) {
	var statement GivingStatement

	err := db.
		Where(&GivingStatement{HouseholdID: householdID, Year: year}).
		Where("preview_only = ?", false).
		First(&statement).Error

	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		return GivingStatement{}, false, err
	}

	// Not found: insert a new row
	if err != nil {
		statement = GivingStatement{
			ChurchID:        churchID,
			HouseholdID:     householdID,
			Year:            year,
			PreviewOnly:     false,
			TotalAmount:     total,
			StatementNumber: number,
			GeneratedAt:     time.Now().In(time.UTC),
			GeneratedByID:   actorID,
			PDF:             pdf,
		}

		err = db.Create(&statement).Error
		if err != nil {
			return GivingStatement{}, false, err
		}

		return statement, true, nil
	}

	// Found: overwrite the computed fields and reset send tracking.
	// A map is used so that gorm writes the NULLs.
	err = db.Model(&statement).Updates(map[string]any{
		"total_amount":     total,
		"statement_number": number,
		"generated_at":     time.Now().In(time.UTC),
		"generated_by_id":  actorID,
		"pdf":              pdf,
		"email_status":     nil,
		"sent_at":          nil,
		"sent_by_id":       nil,
	}).Error
	if err != nil {
		return GivingStatement{}, false, err
	}

	statement.EmailStatus = nil
	statement.SentAt = nil
	statement.SentByID = nil

	return statement, false, nil
}

// MarkSent records that the statement was sent to the household.
func (s *GivingStatement) MarkSent(db *gorm.DB, status string, actorID uuid.UUID) error {
	now := time.Now().In(time.UTC)

	return db.Model(s).Updates(map[string]any{
		"email_status": status,
		"sent_at":      now,
		"sent_by_id":   actorID,
	}).Error
}
