package v1

import (
	"fmt"
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/types"
	cm_uuid "github.com/dchoinie/church-membership-app-sub000/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StatementLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/giving-statements/a4f6cb4e-93ae-4a13-9114-479b9db28aee"`
	Pdf       string `json:"pdf" example:"https://example.com/api/v1/giving-statements/a4f6cb4e-93ae-4a13-9114-479b9db28aee/pdf"`
	Household string `json:"household" example:"https://example.com/api/v1/households/65392deb-5e92-4268-b114-297faad6cdce"`
}

// Statement is the API representation of a persisted giving statement.
// The PDF itself is not embedded, it is served by the pdf link.
type Statement struct {
	models.DefaultModel
	HouseholdID     uuid.UUID       `json:"householdId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Year            types.Year      `json:"year" example:"2024"`
	StatementNumber string          `json:"statementNumber" example:"GS-2024-6BA7B810"`
	TotalAmount     decimal.Decimal `json:"totalAmount" example:"1250.00"`
	GeneratedAt     time.Time       `json:"generatedAt" example:"2025-01-05T14:06:05.21Z"`
	GeneratedByID   uuid.UUID       `json:"generatedById" example:"ec6e05e6-431b-4de2-b4a2-66ef51c53161"`
	EmailStatus     *string         `json:"emailStatus" example:"sent"` // nil until the statement is sent
	SentAt          *time.Time      `json:"sentAt" example:"2025-01-06T09:12:00Z"`
	SentByID        *uuid.UUID      `json:"sentById" example:"ec6e05e6-431b-4de2-b4a2-66ef51c53161"`
	Links           StatementLinks  `json:"links"`
}

func newStatement(c *gin.Context, model models.GivingStatement) Statement {
	url := c.GetString(string(models.DBContextURL))

	return Statement{
		DefaultModel:    model.DefaultModel,
		HouseholdID:     model.HouseholdID,
		Year:            types.Year(model.Year),
		StatementNumber: model.StatementNumber,
		TotalAmount:     model.TotalAmount,
		GeneratedAt:     model.GeneratedAt,
		GeneratedByID:   model.GeneratedByID,
		EmailStatus:     model.EmailStatus,
		SentAt:          model.SentAt,
		SentByID:        model.SentByID,
		Links: StatementLinks{
			Self:      fmt.Sprintf("%s/v1/giving-statements/%s", url, model.ID),
			Pdf:       fmt.Sprintf("%s/v1/giving-statements/%s/pdf", url, model.ID),
			Household: fmt.Sprintf("%s/v1/households/%s", url, model.HouseholdID),
		},
	}
}

type StatementListResponse struct {
	Data       []Statement `json:"data"`                                                          // List of statements
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type StatementResponse struct {
	Data  *Statement `json:"data"`                                                          // Data for the statement
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type StatementQueryFilter struct {
	Year        int          `form:"year"`                       // By tax year
	HouseholdID cm_uuid.UUID `form:"household"`                  // By ID of the household
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first statement returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of statements to return. Defaults to 50.
}

func (f StatementQueryFilter) model() models.GivingStatement {
	return models.GivingStatement{
		Year:        f.Year,
		HouseholdID: f.HouseholdID.UUID,
	}
}
