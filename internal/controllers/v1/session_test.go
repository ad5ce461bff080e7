package v1_test

import (
	"net/http"

	v1 "github.com/dchoinie/church-membership-app-sub000/internal/controllers/v1"
	"github.com/dchoinie/church-membership-app-sub000/test"
)

func (suite *TestSuiteStandard) TestGetSessionUnauthorized() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/session", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestGetSessionInvalidToken() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/session", nil, map[string]string{
		"Authorization": "Bearer not-a-known-token",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestGetSession() {
	church, headers := suite.createTestSession()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/session", nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Secretary", response.Data.Name)
	suite.Assert().Equal(church.ID.String(), response.Data.ChurchID)
	suite.Assert().Equal([]string{"*:*"}, response.Data.Permissions)

	// The CSRF token from the session endpoint is what mutating
	// requests have to send
	suite.Assert().Equal(headers["X-Csrf-Token"], response.Data.CSRFToken)
}
