package v1

import (
	"fmt"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	cm_uuid "github.com/dchoinie/church-membership-app-sub000/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceEditable represents all user configurable parameters
type AttendanceEditable struct {
	ServiceID     uuid.UUID `json:"serviceId" example:"d27dd3a1-3a8a-4825-b4a6-4f20d0d9a631"` // ID of the service
	MemberID      uuid.UUID `json:"memberId" example:"d1b7d8dc-0b22-4e4c-a63b-6d0f6a787b9b"`  // ID of the member
	Attended      bool      `json:"attended" example:"true" default:"false"`
	TookCommunion bool      `json:"tookCommunion" example:"true" default:"false"` // Implies attended
}

func (editable AttendanceEditable) model(churchID uuid.UUID) models.AttendanceRecord {
	return models.AttendanceRecord{
		ChurchID:      churchID,
		ServiceID:     editable.ServiceID,
		MemberID:      editable.MemberID,
		Attended:      editable.Attended,
		TookCommunion: editable.TookCommunion,
	}
}

type AttendanceLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/attendance/dd201ae9-b72c-4a86-aa70-3d08a338b4e7"`
	Service string `json:"service" example:"https://example.com/api/v1/services/d27dd3a1-3a8a-4825-b4a6-4f20d0d9a631"`
	Member  string `json:"member" example:"https://example.com/api/v1/members/d1b7d8dc-0b22-4e4c-a63b-6d0f6a787b9b"`
}

type Attendance struct {
	models.DefaultModel
	AttendanceEditable
	Links AttendanceLinks `json:"links"`
}

func newAttendance(c *gin.Context, model models.AttendanceRecord) Attendance {
	url := c.GetString(string(models.DBContextURL))

	return Attendance{
		DefaultModel: model.DefaultModel,
		AttendanceEditable: AttendanceEditable{
			ServiceID:     model.ServiceID,
			MemberID:      model.MemberID,
			Attended:      model.Attended,
			TookCommunion: model.TookCommunion,
		},
		Links: AttendanceLinks{
			Self:    fmt.Sprintf("%s/v1/attendance/%s", url, model.ID),
			Service: fmt.Sprintf("%s/v1/services/%s", url, model.ServiceID),
			Member:  fmt.Sprintf("%s/v1/members/%s", url, model.MemberID),
		},
	}
}

type AttendanceListResponse struct {
	Data       []Attendance `json:"data"`                                                          // List of attendance records
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type AttendanceCreateResponse struct {
	Data  []AttendanceResponse `json:"data"`                                                          // List of the created attendance records or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AttendanceCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AttendanceResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AttendanceResponse struct {
	Data  *Attendance `json:"data"`                                                          // Data for the attendance record
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AttendanceQueryFilter struct {
	ServiceID cm_uuid.UUID `form:"service"`                    // By ID of the service
	MemberID  cm_uuid.UUID `form:"member"`                     // By ID of the member
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first record returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of records to return. Defaults to 50.
}

func (f AttendanceQueryFilter) model() models.AttendanceRecord {
	return models.AttendanceRecord{
		ServiceID: f.ServiceID.UUID,
		MemberID:  f.MemberID.UUID,
	}
}
