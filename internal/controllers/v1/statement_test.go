package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/dchoinie/church-membership-app-sub000/internal/controllers/v1"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/statement"
	"github.com/dchoinie/church-membership-app-sub000/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// createGivingHousehold creates a household with one member and one gift
// in 2024.
func (suite *TestSuiteStandard) createGivingHousehold(church models.Church, name string) models.Household {
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: name})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: name})
	suite.createTestGiving(church.ID, member.ID, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(50))

	return household
}

func (suite *TestSuiteStandard) TestGenerateStatements() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")
	suite.createGivingHousehold(church, "Berg")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{
		Year: 2024,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary statement.Summary
	test.DecodeResponse(suite.T(), &recorder, &summary)

	suite.Assert().True(summary.Success)
	suite.Assert().Equal(2, summary.Generated)
	suite.Assert().Empty(summary.Errors)

	var count int64
	suite.Assert().NoError(models.DB.Model(&models.GivingStatement{}).Count(&count).Error)
	suite.Assert().Equal(int64(2), count)
}

func (suite *TestSuiteStandard) TestGenerateStatementsMissingYear() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", map[string]any{}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGenerateStatementsNoGiving() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{
		Year: 2019,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGenerateStatementsConfirmation() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	// Blank out the tax ID so the compliance gate triggers
	church.TaxIDEncrypted = ""
	suite.Require().NoError(models.DB.Model(&church).Select("TaxIDEncrypted").Updates(&church).Error)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{
		Year: 2024,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var confirmation statement.Confirmation
	test.DecodeResponse(suite.T(), &recorder, &confirmation)

	suite.Assert().True(confirmation.RequiresConfirmation)
	suite.Assert().Contains(confirmation.Missing, "taxId")

	// Nothing may be persisted before the confirmation
	var count int64
	suite.Assert().NoError(models.DB.Model(&models.GivingStatement{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)

	// Repeating the request with skipValidation generates the statements
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{
		Year:           2024,
		SkipValidation: true,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary statement.Summary
	test.DecodeResponse(suite.T(), &recorder, &summary)
	suite.Assert().Equal(1, summary.Generated)
}

func (suite *TestSuiteStandard) TestGenerateStatementPreviewPDF() {
	church, headers := suite.createTestSession()
	household := suite.createGivingHousehold(church, "Miller")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{
		Year:        2024,
		HouseholdID: household.ID,
		Preview:     true,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	suite.Assert().Equal("application/pdf", recorder.Header().Get("Content-Type"))
	suite.Assert().True(len(recorder.Body.Bytes()) > 4)
	suite.Assert().Equal("%PDF", string(recorder.Body.Bytes()[:4]))

	// Previews never persist anything
	var count int64
	suite.Assert().NoError(models.DB.Model(&models.GivingStatement{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestGetStatements() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{Year: 2024}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/giving-statements?year=2024", nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.StatementListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(2024, int(response.Data[0].Year))
	suite.Assert().Contains(response.Data[0].Links.Pdf, "/pdf")

	// No statements for another year
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/giving-statements?year=2023", nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 0)
}

func (suite *TestSuiteStandard) TestGetStatementPDF() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{Year: 2024}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var saved models.GivingStatement
	suite.Require().NoError(models.DB.First(&saved).Error)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/giving-statements/%s/pdf", saved.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().Equal("application/pdf", recorder.Header().Get("Content-Type"))
	suite.Assert().Equal("%PDF", string(recorder.Body.Bytes()[:4]))
}

func (suite *TestSuiteStandard) TestSendStatement() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{Year: 2024}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var saved models.GivingStatement
	suite.Require().NoError(models.DB.First(&saved).Error)

	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/giving-statements/%s/send", saved.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.StatementResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Require().NotNil(response.Data.EmailStatus)
	suite.Assert().Equal("sent", *response.Data.EmailStatus)
	suite.Assert().NotNil(response.Data.SentAt)

	// Regenerating resets the send tracking
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{Year: 2024}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/giving-statements/%s", saved.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Nil(response.Data.EmailStatus)
	suite.Assert().Nil(response.Data.SentAt)
}

func (suite *TestSuiteStandard) TestDeleteStatement() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{Year: 2024}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var saved models.GivingStatement
	suite.Require().NoError(models.DB.First(&saved).Error)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/giving-statements/%s", saved.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/giving-statements/%s", saved.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

// An unexpected failure outside the per household loop reports a
// generic error with the underlying message as detail.
func (suite *TestSuiteStandard) TestGenerateStatementsServerError() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	// Break the schema underneath the resolver query
	suite.Require().NoError(models.DB.Migrator().DropTable(&models.GivingItem{}))
	suite.Require().NoError(models.DB.Migrator().DropTable(&models.GivingRecord{}))

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{Year: 2024}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(models.ErrGeneral.Error(), response.Error)
	suite.Assert().NotEmpty(response.Details)
}

func (suite *TestSuiteStandard) TestGenerateStatementUnknownHousehold() {
	church, headers := suite.createTestSession()
	suite.createGivingHousehold(church, "Miller")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/giving-statements/generate", statement.Request{
		Year:        2024,
		HouseholdID: uuid.New(),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
