package services

import (
	"context"
	"testing"
	"time"

	"maintdesk/internal/calendar"
	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type EventServiceTestSuite struct {
	suite.Suite
	mockEventRepo    *MockEventRepository
	mockContractRepo *MockContractRepository
	mockHolidaySvc   *MockHolidayService
	service          EventService
}

func (suite *EventServiceTestSuite) SetupTest() {
	suite.mockEventRepo = &MockEventRepository{}
	suite.mockContractRepo = &MockContractRepository{}
	suite.mockHolidaySvc = &MockHolidayService{}
	suite.service = NewEventService(suite.mockEventRepo, suite.mockContractRepo, suite.mockHolidaySvc)
}

func (suite *EventServiceTestSuite) TearDownTest() {
	suite.mockEventRepo.AssertExpectations(suite.T())
	suite.mockContractRepo.AssertExpectations(suite.T())
	suite.mockHolidaySvc.AssertExpectations(suite.T())
}

func TestEventServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EventServiceTestSuite))
}

func (suite *EventServiceTestSuite) contract() *models.Contract {
	end := utcDay(2024, 12, 31)
	engineer := "Lee"
	return &models.Contract{
		ID:           7,
		CustomerName: "Acme",
		ProjectTitle: "Storage upkeep",
		StartDate:    utcDay(2024, 1, 31),
		EndDate:      &end,
		Assets: []*models.Asset{
			{ID: 11, Item: "NAS", InspectionCycle: "quarter", MainEngineer: models.Contact{Name: &engineer}},
			{ID: 12, Item: "Backup", InspectionCycle: "on_failure"},
			{ID: 13, Item: "Legacy", InspectionCycle: "fortnightly"},
		},
	}
}

func (suite *EventServiceTestSuite) TestGenerateInspections_SkipsExisting() {
	existing := map[calendar.OccurrenceKey]struct{}{
		calendar.KeyOf(7, 11, utcDay(2024, 4, 30)): {},
	}
	suite.mockContractRepo.On("GetWithAssets", mock.Anything, int64(7)).Return(suite.contract(), nil).Once()
	suite.mockEventRepo.On("InspectionKeys", mock.Anything, int64(7)).Return(existing, nil).Once()

	var stored []*models.CalendarEvent
	suite.mockEventRepo.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).([]*models.CalendarEvent)
	}).Return(3, nil).Once()

	result, err := suite.service.GenerateInspections(context.Background(), "admin", 7, nil)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, result.Created)
	assert.Equal(suite.T(), 1, result.Skipped)
	require.Len(suite.T(), stored, 3)

	var days []string
	for _, e := range stored {
		days = append(days, calendar.DateKey(e.StartAt))
		assert.Equal(suite.T(), models.EventTypeInspection, e.Type)
		assert.True(suite.T(), e.AllDay)
		assert.Equal(suite.T(), "Inspection: Acme / NAS", e.Title)
		assert.Equal(suite.T(), "Lee", *e.Assignee)
		assert.Equal(suite.T(), int64(11), *e.AssetID)
		assert.Equal(suite.T(), "admin", *e.CreatedBy)
	}
	assert.Equal(suite.T(), []string{"2024-01-31", "2024-07-31", "2024-10-31"}, days)
}

func (suite *EventServiceTestSuite) TestGenerateInspections_RequestedHorizonShortens() {
	horizon := utcDay(2024, 3, 1)
	suite.mockContractRepo.On("GetWithAssets", mock.Anything, int64(7)).Return(suite.contract(), nil).Once()
	suite.mockEventRepo.On("InspectionKeys", mock.Anything, int64(7)).Return(map[calendar.OccurrenceKey]struct{}{}, nil).Once()
	suite.mockEventRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(events []*models.CalendarEvent) bool {
		return len(events) == 1
	})).Return(1, nil).Once()

	result, err := suite.service.GenerateInspections(context.Background(), "", 7, &horizon)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Created)
}

func (suite *EventServiceTestSuite) TestGenerateInspections_OpenEndedFollowsRequestedHorizon() {
	c := suite.contract()
	c.EndDate = nil
	c.StartDate = utcDay(2024, 1, 15)
	horizon := utcDay(2026, 1, 15)
	suite.mockContractRepo.On("GetWithAssets", mock.Anything, int64(7)).Return(c, nil).Once()
	suite.mockEventRepo.On("InspectionKeys", mock.Anything, int64(7)).Return(map[calendar.OccurrenceKey]struct{}{}, nil).Once()

	var stored []*models.CalendarEvent
	suite.mockEventRepo.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).([]*models.CalendarEvent)
	}).Return(9, nil).Once()

	result, err := suite.service.GenerateInspections(context.Background(), "admin", 7, &horizon)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 9, result.Created)
	require.Len(suite.T(), stored, 9)
	assert.Equal(suite.T(), "2026-01-15", calendar.DateKey(stored[8].StartAt))
}

func (suite *EventServiceTestSuite) TestGenerateInspections_ConflictsCountAsSkipped() {
	horizon := utcDay(2024, 12, 31)
	suite.mockContractRepo.On("GetWithAssets", mock.Anything, int64(7)).Return(suite.contract(), nil).Once()
	suite.mockEventRepo.On("InspectionKeys", mock.Anything, int64(7)).Return(map[calendar.OccurrenceKey]struct{}{}, nil).Once()
	suite.mockEventRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(1, nil).Once()

	result, err := suite.service.GenerateInspections(context.Background(), "admin", 7, &horizon)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Created)
	assert.Equal(suite.T(), 3, result.Skipped)
}

func (suite *EventServiceTestSuite) TestGenerateInspections_ContractNotFound() {
	suite.mockContractRepo.On("GetWithAssets", mock.Anything, int64(99)).Return(nil, pgx.ErrNoRows).Once()

	_, err := suite.service.GenerateInspections(context.Background(), "admin", 99, nil)

	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func keepDay(want time.Time) any {
	return mock.MatchedBy(func(keep *time.Time) bool {
		return keep != nil && keep.Equal(want)
	})
}

func (suite *EventServiceTestSuite) TestEnsureContractEndEvent_CreatesOnce() {
	c := suite.contract()
	suite.mockEventRepo.On("DeleteContractEndExcept", mock.Anything, int64(7), keepDay(utcDay(2024, 12, 31))).Return(0, nil).Once()
	suite.mockEventRepo.On("ContractEndExists", mock.Anything, int64(7), utcDay(2024, 12, 31)).Return(false, nil).Once()
	suite.mockEventRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(events []*models.CalendarEvent) bool {
		if len(events) != 1 {
			return false
		}
		e := events[0]
		return e.Type == models.EventTypeContractEnd &&
			e.AllDay &&
			e.Title == "Contract end: Acme - Storage upkeep" &&
			e.StartAt.Equal(utcDay(2024, 12, 31))
	})).Return(1, nil).Once()

	created, err := suite.service.EnsureContractEndEvent(context.Background(), "admin", c)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), created)
}

func (suite *EventServiceTestSuite) TestEnsureContractEndEvent_Existing() {
	suite.mockEventRepo.On("DeleteContractEndExcept", mock.Anything, int64(7), keepDay(utcDay(2024, 12, 31))).Return(0, nil).Once()
	suite.mockEventRepo.On("ContractEndExists", mock.Anything, int64(7), utcDay(2024, 12, 31)).Return(true, nil).Once()

	created, err := suite.service.EnsureContractEndEvent(context.Background(), "admin", suite.contract())

	require.NoError(suite.T(), err)
	assert.False(suite.T(), created)
}

func (suite *EventServiceTestSuite) TestEnsureContractEndEvent_MovesMarkerWhenEndDateChanges() {
	c := suite.contract()
	moved := utcDay(2025, 6, 30)
	c.EndDate = &moved
	suite.mockEventRepo.On("DeleteContractEndExcept", mock.Anything, int64(7), keepDay(moved)).Return(1, nil).Once()
	suite.mockEventRepo.On("ContractEndExists", mock.Anything, int64(7), moved).Return(false, nil).Once()
	suite.mockEventRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(events []*models.CalendarEvent) bool {
		return len(events) == 1 && events[0].StartAt.Equal(moved)
	})).Return(1, nil).Once()

	created, err := suite.service.EnsureContractEndEvent(context.Background(), "admin", c)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), created)
}

func (suite *EventServiceTestSuite) TestEnsureContractEndEvent_OpenEndedClearsMarkers() {
	c := suite.contract()
	c.EndDate = nil
	suite.mockEventRepo.On("DeleteContractEndExcept", mock.Anything, int64(7), mock.MatchedBy(func(keep *time.Time) bool {
		return keep == nil
	})).Return(1, nil).Once()

	created, err := suite.service.EnsureContractEndEvent(context.Background(), "admin", c)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), created)
}

func (suite *EventServiceTestSuite) TestEnsureContractEndEvent_ConcurrentInsertNotCreated() {
	suite.mockEventRepo.On("DeleteContractEndExcept", mock.Anything, int64(7), keepDay(utcDay(2024, 12, 31))).Return(0, nil).Once()
	suite.mockEventRepo.On("ContractEndExists", mock.Anything, int64(7), utcDay(2024, 12, 31)).Return(false, nil).Once()
	suite.mockEventRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(0, nil).Once()

	created, err := suite.service.EnsureContractEndEvent(context.Background(), "admin", suite.contract())

	require.NoError(suite.T(), err)
	assert.False(suite.T(), created)
}

func (suite *EventServiceTestSuite) TestCreate_Validation() {
	err := suite.service.Create(context.Background(), "admin", &models.CalendarEvent{Title: "  "})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	start := time.Date(2024, 5, 7, 10, 0, 0, 0, time.UTC)
	err = suite.service.Create(context.Background(), "admin", &models.CalendarEvent{Title: "x", StartAt: start, EndAt: start.Add(-time.Hour)})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	err = suite.service.Create(context.Background(), "admin", &models.CalendarEvent{Title: "x", Type: "party", StartAt: start})
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *EventServiceTestSuite) TestCreate_SameAssetAndDayIsDuplicate() {
	contractID, assetID := int64(7), int64(11)
	start := utcDay(2024, 4, 30)
	suite.mockEventRepo.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"}).Once()

	err := suite.service.Create(context.Background(), "admin", &models.CalendarEvent{
		Title: "Extra inspection", Type: models.EventTypeInspection, ContractID: &contractID, AssetID: &assetID,
		StartAt: start, EndAt: start, AllDay: true,
	})

	assert.ErrorIs(suite.T(), err, ErrDuplicate)
	assert.Contains(suite.T(), err.Error(), "2024-04-30")
}

func (suite *EventServiceTestSuite) TestCreate_Defaults() {
	start := time.Date(2024, 5, 7, 14, 30, 0, 0, time.UTC)
	suite.mockEventRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	e := &models.CalendarEvent{Title: "Visit", StartAt: start, EndAt: start.Add(2 * time.Hour)}
	require.NoError(suite.T(), suite.service.Create(context.Background(), "kim", e))

	assert.Equal(suite.T(), models.EventTypeEtc, e.Type)
	assert.Equal(suite.T(), models.EventStatusScheduled, e.Status)
	assert.Equal(suite.T(), calendar.SupportHours(e.StartAt, e.EndAt), e.SupportHours)
	assert.Equal(suite.T(), "kim", *e.CreatedBy)
}

func (suite *EventServiceTestSuite) TestCreate_AllDayHasNoSupportHours() {
	suite.mockEventRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	e := &models.CalendarEvent{Title: "Offsite", AllDay: true, StartAt: time.Date(2024, 5, 7, 9, 0, 0, 0, time.UTC)}
	require.NoError(suite.T(), suite.service.Create(context.Background(), "", e))

	assert.Zero(suite.T(), e.SupportHours)
	assert.Equal(suite.T(), utcDay(2024, 5, 7), e.StartAt)
	assert.Nil(suite.T(), e.CreatedBy)
}

func (suite *EventServiceTestSuite) TestUpdateStatus() {
	err := suite.service.UpdateStatus(context.Background(), 1, "paused")
	assert.ErrorIs(suite.T(), err, ErrValidation)

	suite.mockEventRepo.On("UpdateStatus", mock.Anything, int64(2), models.EventStatusDone).Return(false, nil).Once()
	err = suite.service.UpdateStatus(context.Background(), 2, models.EventStatusDone)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *EventServiceTestSuite) TestCalendar_MergesHolidaysFirst() {
	from, to := utcDay(2024, 5, 4), utcDay(2024, 5, 10)
	visit := &models.CalendarEvent{ID: 1, Title: "Visit", AllDay: true, StartAt: utcDay(2024, 5, 6), EndAt: utcDay(2024, 5, 6)}
	early := &models.CalendarEvent{ID: 2, Title: "Kickoff", AllDay: true, StartAt: utcDay(2024, 5, 4), EndAt: utcDay(2024, 5, 4)}
	holiday := &models.Holiday{ID: 3, Date: utcDay(2024, 5, 6), Name: "Substitute holiday", Type: models.HolidayNational}

	suite.mockEventRepo.On("List", mock.Anything, mock.MatchedBy(func(f *models.EventFilter) bool {
		return f.From.Equal(from) && f.To.After(to) && f.To.Before(utcDay(2024, 5, 11))
	})).Return([]*models.CalendarEvent{visit, early}, nil).Once()
	suite.mockHolidaySvc.On("List", mock.Anything, from, to).Return([]*models.Holiday{holiday}, nil).Once()

	feed, err := suite.service.Calendar(context.Background(), from, to)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "2024-05-04", feed.From)
	assert.Equal(suite.T(), "2024-05-10", feed.To)
	assert.Equal(suite.T(), 4, feed.BusinessDays)
	require.Len(suite.T(), feed.Entries, 3)
	assert.Equal(suite.T(), "Kickoff", feed.Entries[0].Title)
	assert.True(suite.T(), feed.Entries[0].IsWeekend)
	assert.Equal(suite.T(), "holiday", feed.Entries[1].Kind)
	assert.Equal(suite.T(), "Visit", feed.Entries[2].Title)
}

func (suite *EventServiceTestSuite) TestCalendar_RangeChecks() {
	_, err := suite.service.Calendar(context.Background(), utcDay(2024, 5, 10), utcDay(2024, 5, 1))
	assert.ErrorIs(suite.T(), err, ErrValidation)

	_, err = suite.service.Calendar(context.Background(), utcDay(2024, 1, 1), utcDay(2026, 1, 1))
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *EventServiceTestSuite) TestGenerateContractEndEvents_Counts() {
	a := suite.contract()
	b := suite.contract()
	b.ID = 8
	suite.mockContractRepo.On("ListEndingBetween", mock.Anything, "1900-01-01", "9999-12-31").Return([]*models.Contract{a, b}, nil).Once()
	suite.mockEventRepo.On("DeleteContractEndExcept", mock.Anything, mock.Anything, keepDay(utcDay(2024, 12, 31))).Return(0, nil).Twice()
	suite.mockEventRepo.On("ContractEndExists", mock.Anything, int64(7), utcDay(2024, 12, 31)).Return(true, nil).Once()
	suite.mockEventRepo.On("ContractEndExists", mock.Anything, int64(8), utcDay(2024, 12, 31)).Return(false, nil).Once()
	suite.mockEventRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(1, nil).Once()

	result, err := suite.service.GenerateContractEndEvents(context.Background(), "admin")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Created)
	assert.Equal(suite.T(), 1, result.Skipped)
}
