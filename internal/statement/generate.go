package statement

import (
	"fmt"
	"strings"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Request describes one generation run. The zero HouseholdID means all
// households with giving activity in the year.
type Request struct {
	Year           types.Year `json:"year" binding:"required" example:"2024"`
	HouseholdID    uuid.UUID  `json:"householdId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Preview        bool       `json:"preview" example:"false"`
	SkipValidation bool       `json:"skipValidation" example:"false"`
}

// Confirmation asks the caller to confirm generating statements despite
// incomplete church tax information.
type Confirmation struct {
	RequiresConfirmation bool     `json:"requiresConfirmation" example:"true"`
	Missing              []string `json:"missing" example:"taxId"`
	Message              string   `json:"message" example:"The church tax information is incomplete. Repeat the request with skipValidation to generate statements anyway."`
}

// HouseholdResult is the per-household outcome of a successful
// generation.
type HouseholdResult struct {
	HouseholdID     uuid.UUID       `json:"householdId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	HouseholdName   string          `json:"householdName" example:"Miller Household"`
	StatementNumber string          `json:"statementNumber" example:"GS-2024-6BA7B810"`
	TotalAmount     decimal.Decimal `json:"totalAmount" example:"1250.00"`
	Status          string          `json:"status" enums:"created,updated,preview" example:"created"`
}

// HouseholdError is the per-household outcome of a failed generation.
// One failing household never aborts the run.
type HouseholdError struct {
	HouseholdID   uuid.UUID `json:"householdId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	HouseholdName string    `json:"householdName" example:"Miller Household"`
	Error         string    `json:"error" example:"No giving records found for this period"`
}

// Summary reports the outcome of a generation run over all resolved
// households. Partial success is the normal outcome, success stays true
// even when single households failed.
type Summary struct {
	Success   bool              `json:"success" example:"true"`
	Year      types.Year        `json:"year" example:"2024"`
	Preview   bool              `json:"preview" example:"false"`
	Generated int               `json:"generated" example:"17"`
	Results   []HouseholdResult `json:"results"`
	Errors    []HouseholdError  `json:"errors"`
}

const (
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusPreview = "preview"
)

// Result is the outcome of Generate. Exactly one field is set: a
// confirmation request, raw PDF bytes for a single household preview, or
// the run summary.
type Result struct {
	Confirmation *Confirmation
	PDF          []byte
	Summary      *Summary
}

// Generate runs the statement pipeline for one or all households of a
// church.
//
// With the strict policy, incomplete church tax information always fails
// the run. With the confirm policy, it returns a Confirmation result
// unless the request sets SkipValidation. Household failures are
// collected in the summary and do not abort the run. A preview that
// resolves to a single household returns the PDF bytes and writes
// nothing.
func Generate(db *gorm.DB, church models.Church, actor models.User, policy Policy, request Request) (Result, error) {
	if !request.Year.Valid() {
		return Result{}, types.ErrYearInvalid
	}

	compliance, err := Validate(church)
	if err != nil {
		return Result{}, err
	}

	if !compliance.Valid {
		if policy == PolicyStrict {
			return Result{}, fmt.Errorf("%w: missing %s", models.ErrChurchTaxInfoIncomplete, strings.Join(compliance.Missing, ", "))
		}

		if !request.SkipValidation {
			return Result{Confirmation: &Confirmation{
				RequiresConfirmation: true,
				Missing:              compliance.Missing,
				Message:              "The church tax information is incomplete. Repeat the request with skipValidation to generate statements anyway.",
			}}, nil
		}
	}

	churchInfo, err := NewChurchInfo(church)
	if err != nil {
		return Result{}, err
	}

	householdIDs, err := resolveHouseholds(db, church.ID, request)
	if err != nil {
		return Result{}, err
	}

	summary := Summary{
		Success: true,
		Year:    request.Year,
		Preview: request.Preview,
		Results: []HouseholdResult{},
		Errors:  []HouseholdError{},
	}

	var lastPDF []byte
	for _, householdID := range householdIDs {
		result, pdf, err := generateForHousehold(db, churchInfo, church.ID, actor.ID, householdID, request)
		if err != nil {
			log.Warn().
				Str("household", householdID.String()).
				Int("year", int(request.Year)).
				Err(err).
				Msg("statement generation failed for household")

			summary.Errors = append(summary.Errors, HouseholdError{
				HouseholdID:   householdID,
				HouseholdName: householdName(db, householdID),
				Error:         err.Error(),
			})
			continue
		}

		summary.Results = append(summary.Results, result)
		lastPDF = pdf
	}

	summary.Generated = len(summary.Results)

	// The resolved set decides the response shape, not the request. A
	// year with exactly one giving household previews as a PDF too.
	if request.Preview && len(householdIDs) == 1 && len(summary.Results) == 1 {
		return Result{PDF: lastPDF}, nil
	}

	return Result{Summary: &summary}, nil
}

// resolveHouseholds determines the scope of a run: the explicitly
// requested household, or every household with giving activity in the
// year. Households whose members have since been removed still resolve,
// the aggregation reports them in the error list.
func resolveHouseholds(db *gorm.DB, churchID uuid.UUID, request Request) ([]uuid.UUID, error) {
	if request.HouseholdID != uuid.Nil {
		var household models.Household
		err := db.Where(&models.Household{ChurchID: churchID}).First(&household, request.HouseholdID).Error
		if err != nil {
			return nil, err
		}

		return []uuid.UUID{household.ID}, nil
	}

	var ids []uuid.UUID
	err := db.Table("households").
		Distinct("households.id").
		Joins("JOIN members ON members.household_id = households.id").
		Joins("JOIN giving_records ON giving_records.member_id = members.id").
		Where("households.church_id = ?", churchID).
		Where("households.deleted_at IS NULL").
		Where("giving_records.deleted_at IS NULL").
		Where("giving_records.date_given >= ?", request.Year.Start()).
		Where("giving_records.date_given <= ?", request.Year.End()).
		Order("households.id ASC").
		Pluck("households.id", &ids).Error
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, ErrNoGivingOnFile
	}

	return ids, nil
}

// generateForHousehold runs aggregation, numbering, rendering and, for
// non-preview runs, persistence for a single household.
func generateForHousehold(db *gorm.DB, churchInfo ChurchInfo, churchID, actorID, householdID uuid.UUID, request Request) (HouseholdResult, []byte, error) {
	var household models.Household
	err := db.First(&household, householdID).Error
	if err != nil {
		return HouseholdResult{}, nil, err
	}

	name, err := household.DisplayName(db)
	if err != nil {
		return HouseholdResult{}, nil, err
	}

	lines, total, err := Aggregate(db, churchID, householdID, request.Year)
	if err != nil {
		return HouseholdResult{}, nil, err
	}

	number := Number(request.Year, householdID)

	pdf, err := Render(churchInfo, HouseholdInfo{
		Name:     name,
		Address:  household.Address,
		Address2: household.Address2,
		City:     household.City,
		State:    household.State,
		Zip:      household.Zip,
	}, request.Year, lines, total, number)
	if err != nil {
		return HouseholdResult{}, nil, err
	}

	result := HouseholdResult{
		HouseholdID:     householdID,
		HouseholdName:   name,
		StatementNumber: number,
		TotalAmount:     total,
		Status:          StatusPreview,
	}

	if request.Preview {
		return result, pdf, nil
	}

	_, created, err := models.UpsertStatement(db, churchID, householdID, int(request.Year), total, number, pdf, actorID)
	if err != nil {
		return HouseholdResult{}, nil, err
	}

	if created {
		result.Status = StatusCreated
	} else {
		result.Status = StatusUpdated
	}

	return result, pdf, nil
}

// householdName resolves a display name for error reporting, falling
// back to the ID when the household cannot be loaded.
func householdName(db *gorm.DB, householdID uuid.UUID) string {
	var household models.Household
	if err := db.First(&household, householdID).Error; err != nil {
		return householdID.String()
	}

	name, err := household.DisplayName(db)
	if err != nil {
		return householdID.String()
	}

	return name
}
