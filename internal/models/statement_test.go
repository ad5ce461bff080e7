package models_test

import (
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestUpsertStatementCreates() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	user := suite.createTestUser(models.User{ChurchID: church.ID, Name: "Secretary"})

	statement, created, err := models.UpsertStatement(models.DB, church.ID, household.ID, 2024, decimal.NewFromInt(100), "GS-2024-AAAAAAAA", []byte("%PDF"), user.ID)
	suite.Assert().NoError(err)
	suite.Assert().True(created)
	suite.Assert().Equal("GS-2024-AAAAAAAA", statement.StatementNumber)
	suite.Assert().Equal(user.ID, statement.GeneratedByID)
	suite.Assert().Nil(statement.EmailStatus)

	var count int64
	suite.Assert().NoError(models.DB.Model(&models.GivingStatement{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestUpsertStatementOverwrites() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	user := suite.createTestUser(models.User{ChurchID: church.ID, Name: "Secretary"})

	first, created, err := models.UpsertStatement(models.DB, church.ID, household.ID, 2024, decimal.NewFromInt(100), "GS-2024-AAAAAAAA", []byte("%PDF-1"), user.ID)
	suite.Assert().NoError(err)
	suite.Assert().True(created)

	second, created, err := models.UpsertStatement(models.DB, church.ID, household.ID, 2024, decimal.NewFromInt(175), "GS-2024-AAAAAAAA", []byte("%PDF-2"), user.ID)
	suite.Assert().NoError(err)
	suite.Assert().False(created)
	suite.Assert().Equal(first.ID, second.ID)

	var count int64
	suite.Assert().NoError(models.DB.Model(&models.GivingStatement{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)

	var saved models.GivingStatement
	suite.Assert().NoError(models.DB.First(&saved, first.ID).Error)
	suite.Assert().True(saved.TotalAmount.Equal(decimal.NewFromInt(175)), "TotalAmount is %s", saved.TotalAmount)
	suite.Assert().Equal([]byte("%PDF-2"), saved.PDF)
}

func (suite *TestSuiteStandard) TestUpsertStatementResetsSendTracking() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	user := suite.createTestUser(models.User{ChurchID: church.ID, Name: "Secretary"})

	statement, _, err := models.UpsertStatement(models.DB, church.ID, household.ID, 2024, decimal.NewFromInt(100), "GS-2024-AAAAAAAA", []byte("%PDF"), user.ID)
	suite.Assert().NoError(err)

	err = statement.MarkSent(models.DB, "sent", user.ID)
	suite.Assert().NoError(err)

	var sent models.GivingStatement
	suite.Assert().NoError(models.DB.First(&sent, statement.ID).Error)
	suite.Require().NotNil(sent.EmailStatus)
	suite.Assert().Equal("sent", *sent.EmailStatus)
	suite.Assert().NotNil(sent.SentAt)
	suite.Assert().NotNil(sent.SentByID)

	// Regenerating resets the send tracking, the content changed
	_, created, err := models.UpsertStatement(models.DB, church.ID, household.ID, 2024, decimal.NewFromInt(120), "GS-2024-AAAAAAAA", []byte("%PDF-2"), user.ID)
	suite.Assert().NoError(err)
	suite.Assert().False(created)

	var reset models.GivingStatement
	suite.Assert().NoError(models.DB.First(&reset, statement.ID).Error)
	suite.Assert().Nil(reset.EmailStatus)
	suite.Assert().Nil(reset.SentAt)
	suite.Assert().Nil(reset.SentByID)
}

func (suite *TestSuiteStandard) TestUpsertStatementPerYear() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	user := suite.createTestUser(models.User{ChurchID: church.ID, Name: "Secretary"})

	_, created, err := models.UpsertStatement(models.DB, church.ID, household.ID, 2023, decimal.NewFromInt(90), "GS-2023-AAAAAAAA", []byte("%PDF"), user.ID)
	suite.Assert().NoError(err)
	suite.Assert().True(created)

	_, created, err = models.UpsertStatement(models.DB, church.ID, household.ID, 2024, decimal.NewFromInt(100), "GS-2024-AAAAAAAA", []byte("%PDF"), user.ID)
	suite.Assert().NoError(err)
	suite.Assert().True(created)

	var count int64
	suite.Assert().NoError(models.DB.Model(&models.GivingStatement{}).Count(&count).Error)
	suite.Assert().Equal(int64(2), count)
}
