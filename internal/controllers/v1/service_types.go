package v1

import (
	"fmt"
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceEditable represents all user configurable parameters
type ServiceEditable struct {
	// Date is the calendar date of the service, normalized to midnight UTC
	Date time.Time `json:"date" example:"2024-03-17T00:00:00Z"`
	Name string    `json:"name" example:"Sunday 9:00" default:""`
	Note string    `json:"note" example:"" default:""`
}

func (editable ServiceEditable) model(churchID uuid.UUID) models.Service {
	return models.Service{
		ChurchID: churchID,
		Date:     editable.Date,
		Name:     editable.Name,
		Note:     editable.Note,
	}
}

type ServiceLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/services/d27dd3a1-3a8a-4825-b4a6-4f20d0d9a631"`
	Attendance string `json:"attendance" example:"https://example.com/api/v1/attendance?service=d27dd3a1-3a8a-4825-b4a6-4f20d0d9a631"`
}

type Service struct {
	models.DefaultModel
	ServiceEditable
	Links ServiceLinks `json:"links"`

	// These fields are computed
	Attended  int64 `json:"attended" example:"87"`  // Number of members marked as attended
	Communion int64 `json:"communion" example:"62"` // Number of members who took communion
}

func newService(c *gin.Context, db *gorm.DB, model models.Service) (Service, error) {
	url := c.GetString(string(models.DBContextURL))

	var attended, communion int64
	err := db.Model(&models.AttendanceRecord{}).
		Where(&models.AttendanceRecord{ServiceID: model.ID}).
		Where("attended = ?", true).
		Count(&attended).Error
	if err != nil {
		return Service{}, err
	}

	err = db.Model(&models.AttendanceRecord{}).
		Where(&models.AttendanceRecord{ServiceID: model.ID}).
		Where("took_communion = ?", true).
		Count(&communion).Error
	if err != nil {
		return Service{}, err
	}

	return Service{
		DefaultModel: model.DefaultModel,
		ServiceEditable: ServiceEditable{
			Date: model.Date,
			Name: model.Name,
			Note: model.Note,
		},
		Links: ServiceLinks{
			Self:       fmt.Sprintf("%s/v1/services/%s", url, model.ID),
			Attendance: fmt.Sprintf("%s/v1/attendance?service=%s", url, model.ID),
		},
		Attended:  attended,
		Communion: communion,
	}, nil
}

type ServiceListResponse struct {
	Data       []Service   `json:"data"`                                                          // List of services
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ServiceCreateResponse struct {
	Data  []ServiceResponse `json:"data"`                                                          // List of the created services or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ServiceCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ServiceResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ServiceResponse struct {
	Data  *Service `json:"data"`                                                          // Data for the service
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ServiceQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	From   string `form:"from" filterField:"false"`   // Earliest date, format 2006-01-02
	To     string `form:"to" filterField:"false"`     // Latest date, format 2006-01-02
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first service returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of services to return. Defaults to 50.
}
