package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a single worship service, e.g. "Sunday 9:00" on a date.
type Service struct {
	DefaultModel
	Church   Church    `json:"-"`
	ChurchID uuid.UUID `gorm:"index"`

	Date time.Time `gorm:"index"`
	Name string
	Note string
}

// AttendanceRecord tracks whether a member attended a service and whether
// they took communion. Taking communion implies attendance.
type AttendanceRecord struct {
	DefaultModel
	Church    Church    `json:"-"`
	ChurchID  uuid.UUID `gorm:"index"`
	Member    Member    `json:"-"`
	MemberID  uuid.UUID `gorm:"uniqueIndex:attendance_member_service"`
	Service   Service   `json:"-"`
	ServiceID uuid.UUID `gorm:"uniqueIndex:attendance_member_service"`

	Attended      bool
	TookCommunion bool
}

var (
	ErrAttendanceExists           = errors.New("an attendance record for this member and service already exists")
	ErrCommunionWithoutAttendance = errors.New("a member cannot take communion without attending the service")
)

// BeforeSave normalizes the service date to midnight UTC.
func (s *Service) BeforeSave(_ *gorm.DB) error {
	if s.Date.IsZero() {
		s.Date = time.Now().In(time.UTC)
	}

	year, month, day := s.Date.In(time.UTC).Date()
	s.Date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	s.Name = strings.TrimSpace(s.Name)
	s.Note = strings.TrimSpace(s.Note)
	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (s *Service) AfterFind(_ *gorm.DB) error {
	s.Date = s.Date.In(time.UTC)
	return nil
}

// BeforeSave enforces that communion implies attendance. The UI already
// prevents this combination, the API boundary has to as well.
func (a *AttendanceRecord) BeforeSave(_ *gorm.DB) error {
	if a.TookCommunion && !a.Attended {
		return ErrCommunionWithoutAttendance
	}

	return nil
}
