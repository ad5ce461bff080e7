package models_test

import (
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestGivingDateNormalized() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: "Berg"})

	loc := time.FixedZone("UTC-6", -6*60*60)
	record := models.GivingRecord{
		ChurchID:  church.ID,
		MemberID:  member.ID,
		DateGiven: time.Date(2024, 12, 31, 20, 0, 0, 0, loc),
		Items: []models.GivingItem{
			{Amount: decimal.NewFromInt(10)},
		},
	}

	err := models.DB.Create(&record).Error
	suite.Assert().NoError(err)

	// 2024-12-31 20:00 -0600 is 2025-01-01 02:00 UTC, so the gift counts
	// towards the 2025 tax year
	suite.Assert().Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), record.DateGiven)
}

func (suite *TestSuiteStandard) TestGivingItemNegativeAmount() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: "Berg"})

	record := models.GivingRecord{
		ChurchID: church.ID,
		MemberID: member.ID,
		Items: []models.GivingItem{
			{Amount: decimal.NewFromInt(-5)},
		},
	}

	err := models.DB.Create(&record).Error
	suite.Assert().ErrorIs(err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestGivingRecordTotal() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: "Berg"})

	record := models.GivingRecord{
		ChurchID: church.ID,
		MemberID: member.ID,
		Items: []models.GivingItem{
			{Amount: decimal.RequireFromString("12.50")},
			{Amount: decimal.RequireFromString("7.51")},
		},
	}

	err := models.DB.Create(&record).Error
	suite.Assert().NoError(err)

	total, err := record.Total(models.DB)
	suite.Assert().NoError(err)
	suite.Assert().True(total.Equal(decimal.RequireFromString("20.01")), "Total is %s", total)
}

func (suite *TestSuiteStandard) TestGivingCategoryNameUnique() {
	church := suite.createTestChurch(models.Church{})

	first := models.GivingCategory{ChurchID: church.ID, Name: "Building Fund"}
	err := models.DB.Create(&first).Error
	suite.Assert().NoError(err)

	second := models.GivingCategory{ChurchID: church.ID, Name: "Building Fund"}
	err = models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)

	// The same name is fine for another church
	other := suite.createTestChurch(models.Church{Name: "Other Church"})
	third := models.GivingCategory{ChurchID: other.ID, Name: "Building Fund"}
	err = models.DB.Create(&third).Error
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	err := models.DB.First(&models.GivingCategory{}, "name = ?", "does not exist").Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no giving category matching your query", err.Error())
}
