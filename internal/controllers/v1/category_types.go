package v1

import (
	"fmt"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name         string `json:"name" example:"Building Fund" default:""` // Name of the giving category, unique per church
	DisplayOrder int    `json:"displayOrder" example:"1" default:"0"`    // Sort order on entry forms and statements
	Active       bool   `json:"active" example:"true" default:"true"`    // Inactive categories are hidden on entry forms
}

func (editable CategoryEditable) model(churchID uuid.UUID) models.GivingCategory {
	return models.GivingCategory{
		ChurchID:     churchID,
		Name:         editable.Name,
		DisplayOrder: editable.DisplayOrder,
		Active:       editable.Active,
	}
}

type CategoryLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.GivingCategory) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:         model.Name,
			DisplayOrder: model.DisplayOrder,
			Active:       model.Active,
		},
		Links: CategoryLinks{
			Self: fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Active bool   `form:"active"`                     // Is the category active?
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.GivingCategory {
	return models.GivingCategory{
		Active: f.Active,
	}
}
