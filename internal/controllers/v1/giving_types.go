package v1

import (
	"fmt"
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	cm_uuid "github.com/dchoinie/church-membership-app-sub000/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GivingItemEditable represents one category amount on a giving record
type GivingItemEditable struct {
	CategoryID *uuid.UUID      `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // Optional giving category, uncategorized items are reported as "General"
	Amount     decimal.Decimal `json:"amount" example:"25.00"`                                    // Amount, must not be negative
}

// GivingEditable represents all user configurable parameters
type GivingEditable struct {
	MemberID  uuid.UUID            `json:"memberId" example:"d1b7d8dc-0b22-4e4c-a63b-6d0f6a787b9b"` // ID of the member the gift is attributed to
	DateGiven time.Time            `json:"dateGiven" example:"2024-03-17T00:00:00Z"`                // Calendar date of the gift, normalized to midnight UTC
	Note      string               `json:"note" example:"" default:""`
	Items     []GivingItemEditable `json:"items"` // At least one item with a positive amount is required
}

func (editable GivingEditable) model(churchID uuid.UUID) models.GivingRecord {
	items := make([]models.GivingItem, 0, len(editable.Items))
	for _, item := range editable.Items {
		items = append(items, models.GivingItem{
			CategoryID: item.CategoryID,
			Amount:     item.Amount,
		})
	}

	return models.GivingRecord{
		ChurchID:  churchID,
		MemberID:  editable.MemberID,
		DateGiven: editable.DateGiven,
		Note:      editable.Note,
		Items:     items,
	}
}

// validate checks the giving record invariants before anything is saved.
func (editable GivingEditable) validate() error {
	positive := false
	for _, item := range editable.Items {
		if item.Amount.IsNegative() {
			return models.ErrAmountNegative
		}
		if item.Amount.IsPositive() {
			positive = true
		}
	}

	if !positive {
		return models.ErrNoPositiveItem
	}

	return nil
}

type GivingItem struct {
	CategoryID   *uuid.UUID      `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	CategoryName string          `json:"categoryName" example:"Building Fund"` // Resolved category name, "General" for uncategorized items
	Amount       decimal.Decimal `json:"amount" example:"25.00"`
}

type GivingLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/giving/d27dd3a1-3a8a-4825-b4a6-4f20d0d9a631"`
	Member string `json:"member" example:"https://example.com/api/v1/members/d1b7d8dc-0b22-4e4c-a63b-6d0f6a787b9b"`
}

type Giving struct {
	models.DefaultModel
	MemberID  uuid.UUID    `json:"memberId" example:"d1b7d8dc-0b22-4e4c-a63b-6d0f6a787b9b"`
	DateGiven time.Time    `json:"dateGiven" example:"2024-03-17T00:00:00Z"`
	Note      string       `json:"note" example:""`
	Items     []GivingItem `json:"items"`
	Links     GivingLinks  `json:"links"`

	// Total is computed from the items
	Total decimal.Decimal `json:"total" example:"25.00"`
}

func newGiving(c *gin.Context, db *gorm.DB, model models.GivingRecord) (Giving, error) {
	url := c.GetString(string(models.DBContextURL))

	var items []models.GivingItem
	err := db.
		Where(&models.GivingItem{GivingRecordID: model.ID}).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return Giving{}, err
	}

	giving := Giving{
		DefaultModel: model.DefaultModel,
		MemberID:     model.MemberID,
		DateGiven:    model.DateGiven,
		Note:         model.Note,
		Items:        make([]GivingItem, 0, len(items)),
		Links: GivingLinks{
			Self:   fmt.Sprintf("%s/v1/giving/%s", url, model.ID),
			Member: fmt.Sprintf("%s/v1/members/%s", url, model.MemberID),
		},
		Total: decimal.Zero,
	}

	for _, item := range items {
		name := "General"
		if item.CategoryID != nil {
			var category models.GivingCategory
			if err := db.First(&category, *item.CategoryID).Error; err == nil {
				name = category.Name
			}
		}

		giving.Items = append(giving.Items, GivingItem{
			CategoryID:   item.CategoryID,
			CategoryName: name,
			Amount:       item.Amount,
		})
		giving.Total = giving.Total.Add(item.Amount)
	}

	return giving, nil
}

type GivingListResponse struct {
	Data       []Giving    `json:"data"`                                                          // List of giving records
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GivingCreateResponse struct {
	Data  []GivingResponse `json:"data"`                                                          // List of the created giving records or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GivingCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GivingResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GivingResponse struct {
	Data  *Giving `json:"data"`                                                          // Data for the giving record
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GivingQueryFilter struct {
	MemberID cm_uuid.UUID `form:"member"`                     // By ID of the member
	From     string       `form:"from" filterField:"false"`   // Earliest date, format 2006-01-02
	To       string       `form:"to" filterField:"false"`     // Latest date, format 2006-01-02
	Note     string       `form:"note" filterField:"false"`   // By note
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first record returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of records to return. Defaults to 50.
}

func (f GivingQueryFilter) model() models.GivingRecord {
	return models.GivingRecord{
		MemberID: f.MemberID.UUID,
	}
}
