package v1

import (
	"fmt"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HouseholdEditable represents all user configurable parameters
type HouseholdEditable struct {
	Name     string `json:"name" example:"Miller Household" default:""` // Optional name, a name is derived from the members when empty
	Address  string `json:"address" example:"42 Elm St" default:""`
	Address2 string `json:"address2" example:"" default:""`
	City     string `json:"city" example:"Mankato" default:""`
	State    string `json:"state" example:"MN" default:""`
	Zip      string `json:"zip" example:"56001" default:""`
}

func (editable HouseholdEditable) model(churchID uuid.UUID) models.Household {
	return models.Household{
		ChurchID: churchID,
		Name:     editable.Name,
		Address:  editable.Address,
		Address2: editable.Address2,
		City:     editable.City,
		State:    editable.State,
		Zip:      editable.Zip,
	}
}

type HouseholdLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/households/65392deb-5e92-4268-b114-297faad6cdce"`
	Members string `json:"members" example:"https://example.com/api/v1/members?household=65392deb-5e92-4268-b114-297faad6cdce"`
}

type Household struct {
	models.DefaultModel
	HouseholdEditable
	Links HouseholdLinks `json:"links"`

	// These fields are computed
	DisplayName    string `json:"displayName" example:"Miller Household"` // Name with fallback to the members' last name
	EnvelopeNumber *int   `json:"envelopeNumber" example:"143"`           // Envelope number shared by the household members
}

func newHousehold(c *gin.Context, db *gorm.DB, model models.Household) (Household, error) {
	url := c.GetString(string(models.DBContextURL))

	displayName, err := model.DisplayName(db)
	if err != nil {
		return Household{}, err
	}

	envelope, err := model.EnvelopeNumber(db)
	if err != nil {
		return Household{}, err
	}

	return Household{
		DefaultModel: model.DefaultModel,
		HouseholdEditable: HouseholdEditable{
			Name:     model.Name,
			Address:  model.Address,
			Address2: model.Address2,
			City:     model.City,
			State:    model.State,
			Zip:      model.Zip,
		},
		Links: HouseholdLinks{
			Self:    fmt.Sprintf("%s/v1/households/%s", url, model.ID),
			Members: fmt.Sprintf("%s/v1/members?household=%s", url, model.ID),
		},
		DisplayName:    displayName,
		EnvelopeNumber: envelope,
	}, nil
}

type HouseholdListResponse struct {
	Data       []Household `json:"data"`                                                          // List of households
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type HouseholdCreateResponse struct {
	Data  []HouseholdResponse `json:"data"`                                                          // List of the created households or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (h *HouseholdCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	h.Data = append(h.Data, HouseholdResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type HouseholdResponse struct {
	Data  *Household `json:"data"`                                                          // Data for the household
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type HouseholdQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first household returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of households to return. Defaults to 50.
}
