package handlers

import (
	"context"
	"io"
	"time"

	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthService) GenerateToken(user *models.User) (*models.TokenResponse, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*services.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CheckPassword(hash, password string) bool {
	return m.Called(hash, password).Bool(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CreateByAdmin(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, approvalStatus string, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, approvalStatus, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, username string, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, username string, req *models.ChangePasswordRequest) error {
	return m.Called(ctx, username, req).Error(0)
}

func (m *MockUserService) Approve(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *MockUserService) Reject(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *MockUserService) UpdateRole(ctx context.Context, username, role string) error {
	return m.Called(ctx, username, role).Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, actor, username string) error {
	return m.Called(ctx, actor, username).Error(0)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractService) ListWithAssets(ctx context.Context) ([]*models.Contract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockExcelService struct {
	mock.Mock
}

func (m *MockExcelService) Export(ctx context.Context, w io.Writer) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockExcelService) Import(ctx context.Context, actor string, r io.Reader) (*models.ImportResult, error) {
	args := m.Called(ctx, actor, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, ownerID int64, filename, contentType string, reader io.Reader, size int64, uploadedBy string) (*models.StoredFile, error) {
	args := m.Called(ctx, ownerID, filename, contentType, reader, size, uploadedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredFile), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, ownerID int64) ([]*models.StoredFile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StoredFile), args.Error(1)
}

func (m *MockFileService) DownloadURL(ctx context.Context, ownerID, fileID int64) (string, error) {
	args := m.Called(ctx, ownerID, fileID)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, ownerID, fileID int64) error {
	return m.Called(ctx, ownerID, fileID).Error(0)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type MockHolidayService struct {
	mock.Mock
}

func (m *MockHolidayService) List(ctx context.Context, from, to time.Time) ([]*models.Holiday, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

type MockJobRunner struct {
	mock.Mock
}

func (m *MockJobRunner) RunNow(name string) error {
	return m.Called(name).Error(0)
}

func (m *MockJobRunner) JobNames() []string {
	return m.Called().Get(0).([]string)
}

type MockCacheFlusher struct {
	mock.Mock
}

func (m *MockCacheFlusher) InvalidateAllCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
