package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Household is the billing and contact unit grouping one or more members
// sharing an address and envelope number. Giving statements are addressed
// to households, not individual members.
type Household struct {
	DefaultModel
	Church   Church    `json:"-"`
	ChurchID uuid.UUID `gorm:"index"`

	// Name is optional. When it is empty, DisplayName derives a name
	// from the household members.
	Name     string
	Address  string
	Address2 string
	City     string
	State    string
	Zip      string
}

var ErrHouseholdHasMembers = errors.New("the household cannot be deleted because it still has members")

// BeforeSave trims whitespace from all strings.
func (h *Household) BeforeSave(_ *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Address = strings.TrimSpace(h.Address)
	h.Address2 = strings.TrimSpace(h.Address2)
	h.City = strings.TrimSpace(h.City)
	h.State = strings.TrimSpace(h.State)
	h.Zip = strings.TrimSpace(h.Zip)

	return nil
}

// BeforeDelete refuses to delete a household that still has members.
// Members have to be moved to another household or deleted first.
func (h *Household) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Member{}).Where(&Member{HouseholdID: h.ID}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrHouseholdHasMembers
	}

	return nil
}

// Members returns all members of the household, ordered by last and
// first name.
func (h Household) Members(db *gorm.DB) ([]Member, error) {
	var members []Member

	err := db.
		Where(&Member{HouseholdID: h.ID}).
		Order("last_name ASC").
		Order("first_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	return members, nil
}

// DisplayName returns the household name, falling back to a name derived
// from the first member when no explicit name is set.
func (h Household) DisplayName(db *gorm.DB) (string, error) {
	if h.Name != "" {
		return h.Name, nil
	}

	members, err := h.Members(db)
	if err != nil {
		return "", err
	}

	if len(members) == 0 {
		return "Household", nil
	}

	return fmt.Sprintf("%s Household", members[0].LastName), nil
}

// EnvelopeNumber returns the envelope number shared by the household
// members, or nil if no member has one.
func (h Household) EnvelopeNumber(db *gorm.DB) (*int, error) {
	members, err := h.Members(db)
	if err != nil {
		return nil, err
	}

	for _, member := range members {
		if member.EnvelopeNumber != nil {
			return member.EnvelopeNumber, nil
		}
	}

	return nil, nil
}
