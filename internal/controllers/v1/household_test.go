package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/dchoinie/church-membership-app-sub000/internal/controllers/v1"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestHouseholdsUnauthorized() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/households", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestHouseholdsCSRF() {
	_, headers := suite.createTestSession()

	// Mutating requests without the X-Csrf-Token header are rejected
	delete(headers, "X-Csrf-Token")
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/households", []v1.HouseholdEditable{{Name: "Miller Household"}}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestOptionsHouseholds() {
	_, headers := suite.createTestSession()

	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/households", nil, headers)
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)
	suite.Assert().Equal("GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateHouseholds() {
	_, headers := suite.createTestSession()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/households", []v1.HouseholdEditable{
		{Name: "Miller Household", City: "Mankato"},
		{Name: "Berg Household"},
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.HouseholdCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Miller Household", response.Data[0].Data.Name)
	suite.Assert().Equal("Miller Household", response.Data[0].Data.DisplayName)
	suite.Assert().Contains(response.Data[0].Data.Links.Self, "/v1/households/")
}

func (suite *TestSuiteStandard) TestGetHouseholdsFilter() {
	church, headers := suite.createTestSession()
	suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: "Miller Household"})
	suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: "Berg Household"})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/households?name=Miller", nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.HouseholdListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Miller Household", response.Data[0].Name)
	suite.Require().NotNil(response.Pagination)
	suite.Assert().Equal(int64(1), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestGetHouseholdNotFound() {
	_, headers := suite.createTestSession()

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/households/%s", uuid.New()), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetHouseholdInvalidUUID() {
	_, headers := suite.createTestSession()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/households/definitely-not-a-uuid", nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetHouseholdOtherChurch() {
	// A household of another tenant must not be readable
	otherChurch := models.Church{Name: "Other Church"}
	suite.Require().NoError(models.DB.Create(&otherChurch).Error)
	household := suite.createTestHousehold(models.Household{ChurchID: otherChurch.ID, Name: "Foreign Household"})

	_, headers := suite.createTestSession()

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/households/%s", household.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateHousehold() {
	church, headers := suite.createTestSession()
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: "Miller Household"})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/households/%s", household.ID), map[string]any{
		"city": "North Mankato",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.HouseholdResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("North Mankato", response.Data.City)
	suite.Assert().Equal("Miller Household", response.Data.Name, "PATCH must only update the fields in the body")
}

func (suite *TestSuiteStandard) TestDeleteHousehold() {
	church, headers := suite.createTestSession()
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: "Miller Household"})

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/households/%s", household.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestDeleteHouseholdWithMembers() {
	church, headers := suite.createTestSession()
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: "Miller Household"})
	suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: "Miller"})

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/households/%s", household.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
