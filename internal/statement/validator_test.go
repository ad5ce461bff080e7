package statement_test

import (
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/statement"
)

func (suite *TestSuiteStandard) TestValidateComplete() {
	church := suite.createTestChurch(models.Church{})

	compliance, err := statement.Validate(church)
	suite.Assert().Nil(err)
	suite.Assert().True(compliance.Valid)
	suite.Assert().Empty(compliance.Missing)
}

func (suite *TestSuiteStandard) TestValidateMissingFields() {
	church := models.Church{
		Name: "Zion Lutheran Church",
		City: "Mankato",
	}

	err := church.SetTaxID("")
	suite.Assert().Nil(err)

	compliance, err := statement.Validate(church)
	suite.Assert().Nil(err)
	suite.Assert().False(compliance.Valid)
	suite.Assert().ElementsMatch([]string{"address", "state", "zip", "taxId", "goodsStatement"}, compliance.Missing)
}

// A 501(c)(3) church that provided no goods may leave the goods statement
// empty, the default wording covers it.
func (suite *TestSuiteStandard) TestValidateGoodsStatementOptional() {
	church := suite.createTestChurch(models.Church{})
	church.NonProfit501c3 = true
	church.GoodsProvided = false
	church.GoodsStatement = ""

	compliance, err := statement.Validate(church)
	suite.Assert().Nil(err)
	suite.Assert().True(compliance.Valid)

	// Goods were provided, so wording is required
	church.GoodsProvided = true
	compliance, err = statement.Validate(church)
	suite.Assert().Nil(err)
	suite.Assert().False(compliance.Valid)
	suite.Assert().Contains(compliance.Missing, "goodsStatement")
}

func (suite *TestSuiteStandard) TestPolicyFromEnv() {
	suite.T().Setenv("STATEMENT_VALIDATION_POLICY", "strict")
	suite.Assert().Equal(statement.PolicyStrict, statement.PolicyFromEnv())

	suite.T().Setenv("STATEMENT_VALIDATION_POLICY", "")
	suite.Assert().Equal(statement.PolicyConfirm, statement.PolicyFromEnv())

	suite.T().Setenv("STATEMENT_VALIDATION_POLICY", "nonsense")
	suite.Assert().Equal(statement.PolicyConfirm, statement.PolicyFromEnv())
}
