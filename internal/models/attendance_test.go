package models_test

import (
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/models"
)

func (suite *TestSuiteStandard) TestServiceDateNormalized() {
	church := suite.createTestChurch(models.Church{})

	loc := time.FixedZone("UTC-6", -6*60*60)
	service := suite.createTestService(models.Service{
		ChurchID: church.ID,
		Name:     "Sunday 9:00",
		Date:     time.Date(2024, 3, 17, 22, 15, 0, 0, loc),
	})

	// 2024-03-17 22:15 -0600 is 2024-03-18 04:15 UTC
	suite.Assert().Equal(time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), service.Date)
}

func (suite *TestSuiteStandard) TestAttendanceCommunionRequiresAttendance() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: "Berg"})
	service := suite.createTestService(models.Service{ChurchID: church.ID, Name: "Sunday 9:00"})

	record := models.AttendanceRecord{
		ChurchID:      church.ID,
		ServiceID:     service.ID,
		MemberID:      member.ID,
		Attended:      false,
		TookCommunion: true,
	}

	err := models.DB.Create(&record).Error
	suite.Assert().ErrorIs(err, models.ErrCommunionWithoutAttendance)
}

func (suite *TestSuiteStandard) TestAttendanceUniquePerMemberAndService() {
	church := suite.createTestChurch(models.Church{})
	household := suite.createTestHousehold(models.Household{ChurchID: church.ID})
	member := suite.createTestMember(models.Member{ChurchID: church.ID, HouseholdID: household.ID, LastName: "Berg"})
	service := suite.createTestService(models.Service{ChurchID: church.ID, Name: "Sunday 9:00"})

	first := models.AttendanceRecord{
		ChurchID:  church.ID,
		ServiceID: service.ID,
		MemberID:  member.ID,
		Attended:  true,
	}
	err := models.DB.Create(&first).Error
	suite.Assert().NoError(err)

	second := models.AttendanceRecord{
		ChurchID:  church.ID,
		ServiceID: service.ID,
		MemberID:  member.ID,
		Attended:  true,
	}
	err = models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrAttendanceExists)
}
