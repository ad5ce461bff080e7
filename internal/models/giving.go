package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GivingCategory is a tenant scoped label for giving line items, e.g.
// "Current" or "Mission".
type GivingCategory struct {
	DefaultModel
	Church   Church    `json:"-"`
	ChurchID uuid.UUID `gorm:"uniqueIndex:giving_category_church_name"`

	Name         string `gorm:"uniqueIndex:giving_category_church_name"`
	DisplayOrder int
	Active       bool `gorm:"default:true"`
}

// GivingRecord is one giving entry for a member on a date. It owns one or
// more GivingItems that split the gift over categories.
type GivingRecord struct {
	DefaultModel
	Church   Church    `json:"-"`
	ChurchID uuid.UUID `gorm:"index"`
	Member   Member    `json:"-"`
	MemberID uuid.UUID `gorm:"index"`

	DateGiven time.Time `gorm:"index"`
	Note      string

	Items []GivingItem
}

// GivingItem is a single category amount on a giving record.
type GivingItem struct {
	DefaultModel
	GivingRecord   GivingRecord `json:"-"`
	GivingRecordID uuid.UUID    `gorm:"index"`

	// CategoryID may be nil. Items without a category are reported
	// under the "General" label.
	Category   *GivingCategory `json:"-"`
	CategoryID *uuid.UUID

	Amount decimal.Decimal `gorm:"type:DECIMAL(20,2)"`
}

var (
	ErrCategoryNameNotUnique = errors.New("the giving category name must be unique for the church")
	ErrAmountNegative        = errors.New("giving amounts must not be negative")
	ErrNoPositiveItem        = errors.New("a giving record needs at least one item with a positive amount")
)

// BeforeSave trims the name.
func (c *GivingCategory) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// BeforeSave normalizes the giving date to midnight UTC.
//
// Giving dates are calendar dates, not timestamps. Normalizing them at
// write time keeps the inclusive tax year range queries simple.
func (r *GivingRecord) BeforeSave(_ *gorm.DB) error {
	if r.DateGiven.IsZero() {
		r.DateGiven = time.Now().In(time.UTC)
	}

	year, month, day := r.DateGiven.In(time.UTC).Date()
	r.DateGiven = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	r.Note = strings.TrimSpace(r.Note)
	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (r *GivingRecord) AfterFind(_ *gorm.DB) error {
	r.DateGiven = r.DateGiven.In(time.UTC)
	return nil
}

// BeforeSave refuses negative amounts.
func (i *GivingItem) BeforeSave(_ *gorm.DB) error {
	if i.Amount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

// Total returns the sum of all item amounts of the record.
func (r GivingRecord) Total(db *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("giving_items").
		Where(&GivingItem{GivingRecordID: r.ID}).
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}
