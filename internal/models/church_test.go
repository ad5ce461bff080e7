package models_test

import (
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
)

func (suite *TestSuiteStandard) TestChurchTaxIDRoundtrip() {
	church := models.Church{Name: "Zion Lutheran Church"}

	err := church.SetTaxID(" 41-1234567 ")
	suite.Assert().NoError(err)
	suite.Assert().NotContains(church.TaxIDEncrypted, "41-1234567", "the tax ID must not be stored in plain text")

	err = models.DB.Create(&church).Error
	suite.Assert().NoError(err)

	var saved models.Church
	suite.Assert().NoError(models.DB.First(&saved, church.ID).Error)

	taxID, err := saved.TaxID()
	suite.Assert().NoError(err)
	suite.Assert().Equal("41-1234567", taxID)
}

func (suite *TestSuiteStandard) TestChurchEmptyTaxID() {
	church := suite.createTestChurch(models.Church{})

	taxID, err := church.TaxID()
	suite.Assert().NoError(err)
	suite.Assert().Equal("", taxID)
}

func (suite *TestSuiteStandard) TestUserTokenUnique() {
	church := suite.createTestChurch(models.Church{})
	user := suite.createTestUser(models.User{ChurchID: church.ID, Name: "Secretary"})

	duplicate := models.User{ChurchID: church.ID, Name: "Treasurer", Token: user.Token}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrTokenNotUnique)
}
