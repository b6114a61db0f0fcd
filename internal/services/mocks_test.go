package services

import (
	"context"
	"io"
	"time"

	"maintdesk/internal/calendar"
	"maintdesk/internal/holidayapi"
	"maintdesk/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, approvalStatus string, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, approvalStatus, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByRoles(ctx context.Context, roles ...string) ([]*models.User, error) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	return m.Called(ctx, username, passwordHash).Error(0)
}

func (m *MockUserRepository) UpdateApproval(ctx context.Context, username, status string) (bool, error) {
	args := m.Called(ctx, username, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, username, role string) (bool, error) {
	args := m.Called(ctx, username, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) CreateWithAssets(ctx context.Context, contract *models.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *MockContractRepository) UpdateWithAssets(ctx context.Context, contract *models.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractRepository) GetWithAssets(ctx context.Context, id int64) (*models.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context, filter *models.ContractFilter) ([]*models.Contract, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractRepository) ListWithAssets(ctx context.Context) ([]*models.Contract, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractRepository) ListEndingBetween(ctx context.Context, from, to string) ([]*models.Contract, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractRepository) CountActive(ctx context.Context, on string) (int, error) {
	args := m.Called(ctx, on)
	return args.Int(0), args.Error(1)
}

func (m *MockContractRepository) CountEndingBetween(ctx context.Context, from, to string) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) CreateBatch(ctx context.Context, events []*models.CalendarEvent) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*models.CalendarEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarEvent), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, filter *models.EventFilter) ([]*models.CalendarEvent, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.CalendarEvent), args.Error(1)
}

func (m *MockEventRepository) InspectionKeys(ctx context.Context, contractID int64) (map[calendar.OccurrenceKey]struct{}, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(map[calendar.OccurrenceKey]struct{}), args.Error(1)
}

func (m *MockEventRepository) ContractEndExists(ctx context.Context, contractID int64, date time.Time) (bool, error) {
	args := m.Called(ctx, contractID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) DeleteContractEndExcept(ctx context.Context, contractID int64, keep *time.Time) (int, error) {
	args := m.Called(ctx, contractID, keep)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) CountByStatusBetween(ctx context.Context, from, to time.Time) (map[string]int, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockHolidayRepository struct {
	mock.Mock
}

func (m *MockHolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	return m.Called(ctx, holiday).Error(0)
}

func (m *MockHolidayRepository) InsertIfNotExists(ctx context.Context, holiday *models.Holiday) (bool, error) {
	args := m.Called(ctx, holiday)
	return args.Bool(0), args.Error(1)
}

func (m *MockHolidayRepository) GetByID(ctx context.Context, id int64) (*models.Holiday, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) Update(ctx context.Context, holiday *models.Holiday) error {
	return m.Called(ctx, holiday).Error(0)
}

func (m *MockHolidayRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHolidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Holiday, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*models.Holiday), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) CreateIfAbsent(ctx context.Context, n *models.Notification, since time.Time) (bool, error) {
	args := m.Called(ctx, n, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, username string, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	args := m.Called(ctx, username, unreadOnly, limit, offset)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, username string, id int64) (bool, error) {
	args := m.Called(ctx, username, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, username string, id int64) (bool, error) {
	args := m.Called(ctx, username, id)
	return args.Bool(0), args.Error(1)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.ProjectMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int64) (*models.ProjectMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMember), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *models.ProjectMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) List(ctx context.Context, contractID *int64) ([]*models.ProjectMember, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]*models.ProjectMember), args.Error(1)
}

type MockSupportReportRepository struct {
	mock.Mock
}

func (m *MockSupportReportRepository) Create(ctx context.Context, report *models.ClientSupportReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockSupportReportRepository) GetByID(ctx context.Context, id int64) (*models.ClientSupportReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientSupportReport), args.Error(1)
}

func (m *MockSupportReportRepository) Update(ctx context.Context, report *models.ClientSupportReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockSupportReportRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupportReportRepository) List(ctx context.Context, filter *models.SupportReportFilter) ([]*models.ClientSupportReport, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.ClientSupportReport), args.Error(1)
}

func (m *MockSupportReportRepository) MonthlyStats(ctx context.Context, year int) ([]*models.MonthlySupportStat, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([]*models.MonthlySupportStat), args.Error(1)
}

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, file *models.StoredFile) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockFileRepository) GetByID(ctx context.Context, ownerID, id int64) (*models.StoredFile, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredFile), args.Error(1)
}

func (m *MockFileRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.StoredFile, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*models.StoredFile), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	return m.Called(ctx, objectName, reader, objectSize, contentType).Error(0)
}

func (m *MockObjectStorage) PresignedURL(ctx context.Context, objectName, downloadName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, downloadName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

func (m *MockObjectStorage) EnsureBucketExists(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockObjectStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetHolidays(ctx context.Context, year int) ([]*models.Holiday, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Holiday), args.Error(1)
}

func (m *MockCacheService) SetHolidays(ctx context.Context, year int, holidays []*models.Holiday, ttl time.Duration) error {
	return m.Called(ctx, year, holidays, ttl).Error(0)
}

func (m *MockCacheService) InvalidateHolidays(ctx context.Context, years ...int) error {
	return m.Called(ctx, years).Error(0)
}

func (m *MockCacheService) GetDashboard(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockCacheService) SetDashboard(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error {
	return m.Called(ctx, stats, ttl).Error(0)
}

func (m *MockCacheService) InvalidateDashboard(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCacheService) LoginFailures(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheService) RecordLoginFailure(ctx context.Context, username string, window time.Duration) (int, error) {
	args := m.Called(ctx, username, window)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheService) ResetLoginFailures(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *MockCacheService) InvalidateAllCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockHolidayClient struct {
	mock.Mock
}

func (m *MockHolidayClient) PublicHolidays(ctx context.Context, year int) ([]holidayapi.PublicHoliday, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]holidayapi.PublicHoliday), args.Error(1)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, actor string, event *models.CalendarEvent) error {
	return m.Called(ctx, actor, event).Error(0)
}

func (m *MockEventService) Get(ctx context.Context, id int64) (*models.CalendarEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarEvent), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, event *models.CalendarEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventService) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockEventService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEventService) List(ctx context.Context, filter *models.EventFilter) ([]*models.CalendarEvent, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.CalendarEvent), args.Error(1)
}

func (m *MockEventService) GenerateInspections(ctx context.Context, actor string, contractID int64, horizon *time.Time) (*models.GenerationResult, error) {
	args := m.Called(ctx, actor, contractID, horizon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationResult), args.Error(1)
}

func (m *MockEventService) GenerateContractEndEvents(ctx context.Context, actor string) (*models.GenerationResult, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationResult), args.Error(1)
}

func (m *MockEventService) EnsureContractEndEvent(ctx context.Context, actor string, contract *models.Contract) (bool, error) {
	args := m.Called(ctx, actor, contract)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventService) Calendar(ctx context.Context, from, to time.Time) (*models.CalendarFeed, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CalendarFeed), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, username string, kind models.NotificationType, message string, link *string) error {
	return m.Called(ctx, username, kind, message, link).Error(0)
}

func (m *MockNotificationService) NotifyRoles(ctx context.Context, roles []string, kind models.NotificationType, message string, link *string) error {
	return m.Called(ctx, roles, kind, message, link).Error(0)
}

func (m *MockNotificationService) List(ctx context.Context, username string, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	args := m.Called(ctx, username, unreadOnly, limit, offset)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, username string, id int64) error {
	return m.Called(ctx, username, id).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, username string, id int64) error {
	return m.Called(ctx, username, id).Error(0)
}

func (m *MockNotificationService) SweepExpiringContracts(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) Create(ctx context.Context, actor string, contract *models.Contract) error {
	return m.Called(ctx, actor, contract).Error(0)
}

func (m *MockContractService) Update(ctx context.Context, actor string, contract *models.Contract) error {
	return m.Called(ctx, actor, contract).Error(0)
}

func (m *MockContractService) Get(ctx context.Context, id int64) (*models.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractService) List(ctx context.Context, filter *models.ContractFilter) ([]*models.Contract, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractService) ListWithAssets(ctx context.Context) ([]*models.Contract, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockHolidayService struct {
	mock.Mock
}

func (m *MockHolidayService) List(ctx context.Context, from, to time.Time) ([]*models.Holiday, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*models.Holiday), args.Error(1)
}

func (m *MockHolidayService) Create(ctx context.Context, holiday *models.Holiday) error {
	return m.Called(ctx, holiday).Error(0)
}

func (m *MockHolidayService) Update(ctx context.Context, holiday *models.Holiday) error {
	return m.Called(ctx, holiday).Error(0)
}

func (m *MockHolidayService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockHolidayService) Sync(ctx context.Context, years []int) (*models.HolidaySyncResult, error) {
	args := m.Called(ctx, years)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HolidaySyncResult), args.Error(1)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListByContract(ctx context.Context, contractID int64) ([]*models.Asset, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) List(ctx context.Context, category, search string, limit, offset int) ([]*models.AssetWithContract, error) {
	args := m.Called(ctx, category, search, limit, offset)
	return args.Get(0).([]*models.AssetWithContract), args.Error(1)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *models.Asset) error {
	return m.Called(ctx, asset).Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int), args.Error(1)
}
