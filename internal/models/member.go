package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberStatus is the participation status of a member.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusInactive  MemberStatus = "inactive"
	MemberStatusDeceased  MemberStatus = "deceased"
	MemberStatusHomebound MemberStatus = "homebound"
	MemberStatusMilitary  MemberStatus = "military"
	MemberStatusSchool    MemberStatus = "school"
)

// ClassificationGuest is the sentinel classification for walk-in
// attendees that are created ad hoc, e.g. during attendance entry.
const ClassificationGuest = "GUEST"

// Member is a person belonging to exactly one household.
type Member struct {
	DefaultModel
	Church      Church    `json:"-"`
	ChurchID    uuid.UUID `gorm:"index"`
	Household   Household `json:"-"`
	HouseholdID uuid.UUID `gorm:"index"`

	FirstName  string
	MiddleName string
	LastName   string
	Suffix     string
	Email      string
	Phone      string

	Status MemberStatus `gorm:"default:active"`

	// EnvelopeNumber is the legacy giving attribution code. It is
	// usually shared by all members of a household.
	EnvelopeNumber *int

	// Classification is the membership classification code, e.g.
	// "COMMUNICANT", "BAPTIZED" or the GUEST sentinel.
	Classification string
}

var (
	ErrMemberStatusInvalid = errors.New("the member status is invalid")
	ErrMemberNameRequired  = errors.New("a member needs at least a last name")
)

var memberStatuses = []MemberStatus{
	MemberStatusActive,
	MemberStatusInactive,
	MemberStatusDeceased,
	MemberStatusHomebound,
	MemberStatusMilitary,
	MemberStatusSchool,
}

// BeforeSave validates the status and trims whitespace from all strings.
func (m *Member) BeforeSave(_ *gorm.DB) error {
	m.FirstName = strings.TrimSpace(m.FirstName)
	m.MiddleName = strings.TrimSpace(m.MiddleName)
	m.LastName = strings.TrimSpace(m.LastName)
	m.Suffix = strings.TrimSpace(m.Suffix)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Classification = strings.ToUpper(strings.TrimSpace(m.Classification))

	if m.LastName == "" {
		return ErrMemberNameRequired
	}

	if m.Status == "" {
		m.Status = MemberStatusActive
	}

	for _, status := range memberStatuses {
		if m.Status == status {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrMemberStatusInvalid, m.Status)
}

// FullName returns the member name in display order.
func (m Member) FullName() string {
	parts := []string{}
	for _, part := range []string{m.FirstName, m.MiddleName, m.LastName, m.Suffix} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, " ")
}
