package statement_test

import (
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/statement"
	"github.com/dchoinie/church-membership-app-sub000/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fixture is a church with an acting user and n households, each with
// one member who gave once in 2024.
func (suite *TestSuiteStandard) createGenerationFixture(households int) (models.Church, models.User, []models.Household) {
	church := suite.createTestChurch(models.Church{})
	actor := suite.createTestUser(models.User{ChurchID: church.ID})

	var created []models.Household
	for i := 0; i < households; i++ {
		household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
		member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})
		suite.createTestGiving(church.ID, member.ID, time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), nil)

		created = append(created, household)
	}

	return church, actor, created
}

func (suite *TestSuiteStandard) TestGenerateAll() {
	church, actor, households := suite.createGenerationFixture(2)

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.Summary)

	suite.Assert().True(result.Summary.Success)
	suite.Assert().Equal(2, result.Summary.Generated)
	suite.Assert().Len(result.Summary.Results, 2)
	suite.Assert().Empty(result.Summary.Errors)

	for _, r := range result.Summary.Results {
		suite.Assert().Equal(statement.StatusCreated, r.Status)
		suite.Assert().True(r.TotalAmount.Equal(decimal.NewFromInt(50)))
		suite.Assert().Equal("50.00", r.TotalAmount.String(), "totals carry two decimal places")
	}

	var count int64
	models.DB.Model(&models.GivingStatement{}).Count(&count)
	suite.Assert().Equal(int64(2), count)

	var saved models.GivingStatement
	err = models.DB.Where(&models.GivingStatement{HouseholdID: households[0].ID, Year: 2024}).First(&saved).Error
	suite.Require().Nil(err)
	suite.Assert().Equal(statement.Number(2024, households[0].ID), saved.StatementNumber)
	suite.Assert().NotEmpty(saved.PDF)
	suite.Assert().Equal(actor.ID, saved.GeneratedByID)
	suite.Assert().Nil(saved.EmailStatus)
}

// One failing household must not abort the run for the others.
func (suite *TestSuiteStandard) TestGenerateFailureIsolation() {
	church, actor, _ := suite.createGenerationFixture(2)

	// Third household whose only giving record has no remaining items
	broken := suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: "Broken Household"})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: broken.ID})
	record := suite.createTestGiving(church.ID, member.ID, time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), nil)
	suite.Require().Nil(models.DB.Delete(&record.Items[0]).Error)

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.Summary)

	suite.Assert().Equal(2, result.Summary.Generated)
	suite.Require().Len(result.Summary.Errors, 1)
	suite.Assert().Equal(broken.ID, result.Summary.Errors[0].HouseholdID)
	suite.Assert().Equal("Broken Household", result.Summary.Errors[0].HouseholdName)
	suite.Assert().Equal(statement.ErrNoGivingItems.Error(), result.Summary.Errors[0].Error)
}

// A household without members in scope reports the error in the summary.
func (suite *TestSuiteStandard) TestGenerateHouseholdWithoutMembers() {
	church, actor, _ := suite.createGenerationFixture(1)
	empty := suite.createTestHousehold(models.Household{ChurchID: church.ID})

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024, HouseholdID: empty.ID})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.Summary)

	suite.Assert().Equal(0, result.Summary.Generated)
	suite.Require().Len(result.Summary.Errors, 1)
	suite.Assert().Equal(statement.ErrNoMembers.Error(), result.Summary.Errors[0].Error)
}

// A household whose members were removed after giving was recorded must
// surface in the error list of a batch run instead of dropping out
// silently.
func (suite *TestSuiteStandard) TestGenerateBatchRemovedMembers() {
	church, actor, _ := suite.createGenerationFixture(2)

	orphaned := suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: "Orphaned Household"})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: orphaned.ID})
	suite.createTestGiving(church.ID, member.ID, time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), nil)
	suite.Require().Nil(models.DB.Delete(&member).Error)

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.Summary)

	suite.Assert().True(result.Summary.Success)
	suite.Assert().Equal(2, result.Summary.Generated)
	suite.Require().Len(result.Summary.Errors, 1)
	suite.Assert().Equal(orphaned.ID, result.Summary.Errors[0].HouseholdID)
	suite.Assert().Equal("Orphaned Household", result.Summary.Errors[0].HouseholdName)
	suite.Assert().Equal(statement.ErrNoMembers.Error(), result.Summary.Errors[0].Error)

	for _, r := range result.Summary.Results {
		suite.Assert().Equal(statement.StatusCreated, r.Status)
	}
}

// Regenerating overwrites the existing statement instead of creating a
// second one, and clears the send tracking.
func (suite *TestSuiteStandard) TestGenerateIdempotent() {
	church, actor, households := suite.createGenerationFixture(1)

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024})
	suite.Require().Nil(err)
	suite.Assert().Equal(statement.StatusCreated, result.Summary.Results[0].Status)

	var saved models.GivingStatement
	suite.Require().Nil(models.DB.Where(&models.GivingStatement{HouseholdID: households[0].ID, Year: 2024}).First(&saved).Error)
	suite.Require().Nil(saved.MarkSent(models.DB, "sent", actor.ID))

	// Additional giving after the first generation
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: households[0].ID})
	suite.createTestGiving(church.ID, member.ID, time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(25), nil)

	result, err = statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024})
	suite.Require().Nil(err)
	suite.Assert().Equal(statement.StatusUpdated, result.Summary.Results[0].Status)
	suite.Assert().True(result.Summary.Results[0].TotalAmount.Equal(decimal.NewFromInt(75)))

	var count int64
	models.DB.Model(&models.GivingStatement{}).Where("household_id = ?", households[0].ID).Count(&count)
	suite.Assert().Equal(int64(1), count)

	// Reload into a fresh struct: gorm does not clear fields whose
	// column is NULL when scanning into an already populated struct.
	savedID := saved.ID
	saved = models.GivingStatement{}
	suite.Require().Nil(models.DB.First(&saved, savedID).Error)
	suite.Assert().True(saved.TotalAmount.Equal(decimal.NewFromInt(75)))
	suite.Assert().Nil(saved.EmailStatus, "send tracking must be reset on regeneration")
	suite.Assert().Nil(saved.SentAt)
	suite.Assert().Nil(saved.SentByID)
	suite.Assert().Equal(statement.Number(2024, households[0].ID), saved.StatementNumber)
}

// A single household preview returns the PDF and writes nothing.
func (suite *TestSuiteStandard) TestGeneratePreviewSingle() {
	church, actor, households := suite.createGenerationFixture(1)

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{
		Year:        2024,
		HouseholdID: households[0].ID,
		Preview:     true,
	})
	suite.Require().Nil(err)
	suite.Require().NotEmpty(result.PDF)
	suite.Assert().Equal("%PDF", string(result.PDF[:4]))

	var count int64
	models.DB.Model(&models.GivingStatement{}).Count(&count)
	suite.Assert().Equal(int64(0), count, "preview must not persist statements")
}

// A preview without an explicit household still returns the PDF when
// the year resolves to exactly one household.
func (suite *TestSuiteStandard) TestGeneratePreviewSingleResolved() {
	church, actor, _ := suite.createGenerationFixture(1)

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{
		Year:    2024,
		Preview: true,
	})
	suite.Require().Nil(err)
	suite.Require().NotEmpty(result.PDF)
	suite.Assert().Equal("%PDF", string(result.PDF[:4]))
	suite.Assert().Nil(result.Summary)

	var count int64
	models.DB.Model(&models.GivingStatement{}).Count(&count)
	suite.Assert().Equal(int64(0), count)
}

// A preview over all households returns a summary and writes nothing.
func (suite *TestSuiteStandard) TestGeneratePreviewAll() {
	church, actor, _ := suite.createGenerationFixture(2)

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024, Preview: true})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.Summary)

	suite.Assert().True(result.Summary.Preview)
	suite.Assert().Equal(2, result.Summary.Generated)
	for _, r := range result.Summary.Results {
		suite.Assert().Equal(statement.StatusPreview, r.Status)
	}

	var count int64
	models.DB.Model(&models.GivingStatement{}).Count(&count)
	suite.Assert().Equal(int64(0), count)
}

// Incomplete tax information asks for confirmation under the confirm
// policy and proceeds once the caller skips validation.
func (suite *TestSuiteStandard) TestGenerateConfirmation() {
	church := models.Church{
		Name:           "Zion Lutheran Church",
		Address:        "100 Church St",
		City:           "Mankato",
		State:          "MN",
		Zip:            "56001",
		NonProfit501c3: true,
	}
	suite.Require().Nil(models.DB.Create(&church).Error)

	actor := suite.createTestUser(models.User{ChurchID: church.ID})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})
	suite.createTestGiving(church.ID, member.ID, time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50), nil)

	result, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.Confirmation)
	suite.Assert().True(result.Confirmation.RequiresConfirmation)
	suite.Assert().Equal([]string{"taxId"}, result.Confirmation.Missing)

	var count int64
	models.DB.Model(&models.GivingStatement{}).Count(&count)
	suite.Assert().Equal(int64(0), count)

	result, err = statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2024, SkipValidation: true})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.Summary)
	suite.Assert().Equal(1, result.Summary.Generated)
}

// The strict policy fails closed, even when the caller tries to skip
// validation.
func (suite *TestSuiteStandard) TestGenerateStrictPolicy() {
	church := models.Church{Name: "Zion Lutheran Church"}
	suite.Require().Nil(models.DB.Create(&church).Error)
	actor := suite.createTestUser(models.User{ChurchID: church.ID})

	_, err := statement.Generate(models.DB, church, actor, statement.PolicyStrict, statement.Request{Year: 2024})
	suite.Assert().ErrorIs(err, models.ErrChurchTaxInfoIncomplete)

	_, err = statement.Generate(models.DB, church, actor, statement.PolicyStrict, statement.Request{Year: 2024, SkipValidation: true})
	suite.Assert().ErrorIs(err, models.ErrChurchTaxInfoIncomplete)
}

func (suite *TestSuiteStandard) TestGenerateInvalidYear() {
	church, actor, _ := suite.createGenerationFixture(1)

	_, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 0})
	suite.Assert().ErrorIs(err, types.ErrYearInvalid)
}

func (suite *TestSuiteStandard) TestGenerateUnknownHousehold() {
	church, actor, _ := suite.createGenerationFixture(1)

	_, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{
		Year:        2024,
		HouseholdID: uuid.New(),
	})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestGenerateNoGivingInYear() {
	church, actor, _ := suite.createGenerationFixture(1)

	_, err := statement.Generate(models.DB, church, actor, statement.PolicyConfirm, statement.Request{Year: 2019})
	suite.Assert().ErrorIs(err, statement.ErrNoGivingOnFile)
}
