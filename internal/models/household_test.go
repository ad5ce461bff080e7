package models_test

import (
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
)

func (suite *TestSuiteStandard) TestHouseholdTrimsWhitespace() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{
		ChurchID: church.ID,
		Name:     "  Miller Household ",
		City:     " Mankato ",
	})

	suite.Assert().Equal("Miller Household", household.Name)
	suite.Assert().Equal("Mankato", household.City)
}

func (suite *TestSuiteStandard) TestHouseholdDeleteWithMembers() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: "Miller"})

	err := models.DB.Delete(&household).Error
	suite.Assert().ErrorIs(err, models.ErrHouseholdHasMembers)

	// The household must still exist
	err = models.DB.First(&models.Household{}, household.ID).Error
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestHouseholdDeleteEmpty() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})

	err := models.DB.Delete(&household).Error
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestHouseholdDisplayName() {
	church := suite.createTestChurch(models.Church{})

	named := suite.createTestHousehold(models.Household{ChurchID: church.ID, Name: "The Millers"})
	name, err := named.DisplayName(models.DB)
	suite.Assert().NoError(err)
	suite.Assert().Equal("The Millers", name)

	derived := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: derived.ID, FirstName: "Anna", LastName: "Berg"})

	name, err = derived.DisplayName(models.DB)
	suite.Assert().NoError(err)
	suite.Assert().Equal("Berg Household", name)

	empty := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	name, err = empty.DisplayName(models.DB)
	suite.Assert().NoError(err)
	suite.Assert().Equal("Household", name)
}

func (suite *TestSuiteStandard) TestHouseholdEnvelopeNumber() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})

	number, err := household.EnvelopeNumber(models.DB)
	suite.Assert().NoError(err)
	suite.Assert().Nil(number)

	envelope := 143
	suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: "Berg", EnvelopeNumber: &envelope})

	number, err = household.EnvelopeNumber(models.DB)
	suite.Assert().NoError(err)
	suite.Require().NotNil(number)
	suite.Assert().Equal(143, *number)
}
