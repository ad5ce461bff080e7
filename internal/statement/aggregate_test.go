package statement_test

import (
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/statement"
	"github.com/dchoinie/church-membership-app-sub000/internal/types"
	"github.com/shopspring/decimal"
)

// Giving on the first and last day of the year belongs to the statement,
// giving on the surrounding days does not.
func (suite *TestSuiteStandard) TestAggregateYearBoundaries() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})

	suite.createTestGiving(church.ID, member.ID, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(100), nil)
	suite.createTestGiving(church.ID, member.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(10), nil)
	suite.createTestGiving(church.ID, member.ID, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(20), nil)
	suite.createTestGiving(church.ID, member.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(100), nil)

	lines, total, err := statement.Aggregate(models.DB, church.ID, household.ID, types.Year(2024))
	suite.Assert().Nil(err)
	suite.Assert().Len(lines, 2)
	suite.Assert().True(total.Equal(decimal.NewFromInt(30)), "total is %s, not 30", total)
}

// Amounts are summed as exact decimals. The float64 sum of these values
// would be 20.009999999999998.
func (suite *TestSuiteStandard) TestAggregateDecimalExact() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})

	date := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	suite.createTestGiving(church.ID, member.ID, date, decimal.RequireFromString("12.50"), nil)
	suite.createTestGiving(church.ID, member.ID, date, decimal.RequireFromString("7.50"), nil)
	suite.createTestGiving(church.ID, member.ID, date, decimal.RequireFromString("0.01"), nil)

	_, total, err := statement.Aggregate(models.DB, church.ID, household.ID, types.Year(2024))
	suite.Assert().Nil(err)
	suite.Assert().Equal("20.01", total.StringFixed(2))
}

// Lines are ordered by date, then by the category display order.
// Uncategorized items show up as "General".
func (suite *TestSuiteStandard) TestAggregateOrdering() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})

	missions := suite.createTestCategory(models.GivingCategory{ChurchID: church.ID, Name: "Missions", DisplayOrder: 2})
	building := suite.createTestCategory(models.GivingCategory{ChurchID: church.ID, Name: "Building Fund", DisplayOrder: 1})

	march := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	january := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	suite.createTestGiving(church.ID, member.ID, march, decimal.NewFromInt(5), nil)
	suite.createTestGiving(church.ID, member.ID, january, decimal.NewFromInt(10), &missions.ID)
	suite.createTestGiving(church.ID, member.ID, january, decimal.NewFromInt(15), &building.ID)

	lines, _, err := statement.Aggregate(models.DB, church.ID, household.ID, types.Year(2024))
	suite.Assert().Nil(err)
	suite.Require().Len(lines, 3)

	suite.Assert().Equal("Building Fund", lines[0].Category)
	suite.Assert().Equal("Missions", lines[1].Category)
	suite.Assert().Equal("General", lines[2].Category)
	suite.Assert().Equal(march, lines[2].Date)
}

// Zero amount items stay on the statement.
func (suite *TestSuiteStandard) TestAggregateKeepsZeroAmounts() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})

	date := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	suite.createTestGiving(church.ID, member.ID, date, decimal.Zero, nil)
	suite.createTestGiving(church.ID, member.ID, date, decimal.NewFromInt(25), nil)

	lines, total, err := statement.Aggregate(models.DB, church.ID, household.ID, types.Year(2024))
	suite.Assert().Nil(err)
	suite.Assert().Len(lines, 2)
	suite.Assert().True(total.Equal(decimal.NewFromInt(25)))
}

// Giving of all household members is combined on one statement.
func (suite *TestSuiteStandard) TestAggregateCombinesMembers() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	first := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})
	second := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})

	date := time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)
	suite.createTestGiving(church.ID, first.ID, date, decimal.NewFromInt(40), nil)
	suite.createTestGiving(church.ID, second.ID, date, decimal.NewFromInt(60), nil)

	lines, total, err := statement.Aggregate(models.DB, church.ID, household.ID, types.Year(2024))
	suite.Assert().Nil(err)
	suite.Assert().Len(lines, 2)
	suite.Assert().True(total.Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestAggregateNoMembers() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})

	_, _, err := statement.Aggregate(models.DB, church.ID, household.ID, types.Year(2024))
	suite.Assert().ErrorIs(err, statement.ErrNoMembers)
}

func (suite *TestSuiteStandard) TestAggregateNoGiving() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID})

	// Giving exists, but outside the requested year
	suite.createTestGiving(church.ID, member.ID, time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(10), nil)

	_, _, err := statement.Aggregate(models.DB, church.ID, household.ID, types.Year(2024))
	suite.Assert().ErrorIs(err, statement.ErrNoGivingOnFile)
}
