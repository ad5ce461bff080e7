package v1

import (
	"fmt"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	cm_uuid "github.com/dchoinie/church-membership-app-sub000/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MemberEditable represents all user configurable parameters
type MemberEditable struct {
	HouseholdID    uuid.UUID           `json:"householdId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the household the member belongs to
	FirstName      string              `json:"firstName" example:"Anna" default:""`
	MiddleName     string              `json:"middleName" example:"" default:""`
	LastName       string              `json:"lastName" example:"Miller" default:""`
	Suffix         string              `json:"suffix" example:"" default:""`
	Email          string              `json:"email" example:"anna@example.com" default:""`
	Phone          string              `json:"phone" example:"" default:""`
	Status         models.MemberStatus `json:"status" example:"active" default:"active"`
	EnvelopeNumber *int                `json:"envelopeNumber" example:"143"`
	Classification string              `json:"classification" example:"GUEST" default:""`
}

func (editable MemberEditable) model(churchID uuid.UUID) models.Member {
	return models.Member{
		ChurchID:       churchID,
		HouseholdID:    editable.HouseholdID,
		FirstName:      editable.FirstName,
		MiddleName:     editable.MiddleName,
		LastName:       editable.LastName,
		Suffix:         editable.Suffix,
		Email:          editable.Email,
		Phone:          editable.Phone,
		Status:         editable.Status,
		EnvelopeNumber: editable.EnvelopeNumber,
		Classification: editable.Classification,
	}
}

type MemberLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/members/d1b7d8dc-0b22-4e4c-a63b-6d0f6a787b9b"`
	Household string `json:"household" example:"https://example.com/api/v1/households/65392deb-5e92-4268-b114-297faad6cdce"`
}

type Member struct {
	models.DefaultModel
	MemberEditable
	Links MemberLinks `json:"links"`

	// These fields are computed
	FullName string `json:"fullName" example:"Anna Miller"` // Full name assembled from the name parts
}

func newMember(c *gin.Context, model models.Member) Member {
	url := c.GetString(string(models.DBContextURL))

	return Member{
		DefaultModel: model.DefaultModel,
		MemberEditable: MemberEditable{
			HouseholdID:    model.HouseholdID,
			FirstName:      model.FirstName,
			MiddleName:     model.MiddleName,
			LastName:       model.LastName,
			Suffix:         model.Suffix,
			Email:          model.Email,
			Phone:          model.Phone,
			Status:         model.Status,
			EnvelopeNumber: model.EnvelopeNumber,
			Classification: model.Classification,
		},
		Links: MemberLinks{
			Self:      fmt.Sprintf("%s/v1/members/%s", url, model.ID),
			Household: fmt.Sprintf("%s/v1/households/%s", url, model.HouseholdID),
		},
		FullName: model.FullName(),
	}
}

type MemberListResponse struct {
	Data       []Member    `json:"data"`                                                          // List of members
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MemberCreateResponse struct {
	Data  []MemberResponse `json:"data"`                                                          // List of the created members or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MemberCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MemberResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MemberResponse struct {
	Data  *Member `json:"data"`                                                          // Data for the member
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MemberQueryFilter struct {
	HouseholdID    cm_uuid.UUID        `form:"household"`                  // By ID of the household
	Status         models.MemberStatus `form:"status"`                     // By membership status
	EnvelopeNumber int                 `form:"envelope"`                   // By envelope number
	Search         string              `form:"search" filterField:"false"` // By string in first or last name
	Offset         uint                `form:"offset" filterField:"false"` // The offset of the first member returned. Defaults to 0.
	Limit          int                 `form:"limit" filterField:"false"`  // Maximum number of members to return. Defaults to 50.
}

func (f MemberQueryFilter) model() models.Member {
	var envelope *int
	if f.EnvelopeNumber != 0 {
		envelope = &f.EnvelopeNumber
	}

	return models.Member{
		HouseholdID:    f.HouseholdID.UUID,
		Status:         f.Status,
		EnvelopeNumber: envelope,
	}
}
