package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	CreateByAdmin(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	List(ctx context.Context, approvalStatus string, limit, offset int) ([]*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, username string, req *models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, username string, req *models.ChangePasswordRequest) error
	Approve(ctx context.Context, username string) error
	Reject(ctx context.Context, username string) error
	UpdateRole(ctx context.Context, username, role string) error
	Delete(ctx context.Context, actor, username string) error
}

type userService struct {
	userRepo        repositories.UserRepository
	authService     AuthService
	notificationSvc NotificationService
}

func NewUserService(userRepo repositories.UserRepository, authService AuthService, notificationSvc NotificationService) UserService {
	return &userService{
		userRepo:        userRepo,
		authService:     authService,
		notificationSvc: notificationSvc,
	}
}

func validateRegistration(req *models.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if !usernamePattern.MatchString(req.Username) {
		return invalid("username must be 3-50 characters of letters, digits, '.', '_' or '-'")
	}
	if len(req.Password) < minPasswordLength {
		return invalid("password must be at least %d characters", minPasswordLength)
	}
	if req.DisplayName == "" {
		req.DisplayName = req.Username
	}
	req.Email = common.StringPtr(common.SafeString(req.Email))
	req.Phone = common.StringPtr(common.SafeString(req.Phone))
	return nil
}

func (s *userService) create(ctx context.Context, req *models.RegisterRequest, role, status string) (*models.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}
	exists, err := s.userRepo.Exists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("username %s %w", req.Username, ErrDuplicate)
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:       req.Username,
		DisplayName:    req.DisplayName,
		PasswordHash:   hash,
		Role:           role,
		ApprovalStatus: status,
		Email:          req.Email,
		Phone:          req.Phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a pending account with the user role and tells the admins
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	user, err := s.create(ctx, req, models.RoleUser, models.ApprovalPending)
	if err != nil {
		return nil, err
	}
	link := "/users?status=pending"
	message := fmt.Sprintf("New account %s (%s) is waiting for approval", user.Username, user.DisplayName)
	if err := s.notificationSvc.NotifyRoles(ctx, []string{models.RoleAdmin}, models.NotificationRegistrationPending, message, &link); err != nil {
		log.Printf("Failed to notify admins about %s: %v", user.Username, err)
	}
	return user, nil
}

// CreateByAdmin creates an already approved account
func (s *userService) CreateByAdmin(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return nil, invalid("invalid role %q", role)
	}
	return s.create(ctx, req, role, models.ApprovalApproved)
}

func (s *userService) List(ctx context.Context, approvalStatus string, limit, offset int) ([]*models.User, error) {
	switch approvalStatus {
	case "", models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
	default:
		return nil, invalid("invalid approval status %q", approvalStatus)
	}
	users, err := s.userRepo.List(ctx, approvalStatus, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, username string, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		user.DisplayName = name
	}
	user.Email = common.StringPtr(common.SafeString(req.Email))
	user.Phone = common.StringPtr(common.SafeString(req.Phone))
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, username string, req *models.ChangePasswordRequest) error {
	user, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if !s.authService.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return invalid("current password is incorrect")
	}
	if len(req.NewPassword) < minPasswordLength {
		return invalid("password must be at least %d characters", minPasswordLength)
	}
	hash, err := s.authService.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, username, hash)
}

func (s *userService) Approve(ctx context.Context, username string) error {
	return s.setApproval(ctx, username, models.ApprovalApproved, models.NotificationAccountApproved, "Your account has been approved")
}

func (s *userService) Reject(ctx context.Context, username string) error {
	return s.setApproval(ctx, username, models.ApprovalRejected, models.NotificationAccountRejected, "Your account registration was rejected")
}

func (s *userService) setApproval(ctx context.Context, username, status string, kind models.NotificationType, message string) error {
	ok, err := s.userRepo.UpdateApproval(ctx, username, status)
	if err := missing(ok, err, "user"); err != nil {
		return err
	}
	if err := s.notificationSvc.Notify(ctx, username, kind, message, nil); err != nil {
		log.Printf("Failed to notify %s about approval change: %v", username, err)
	}
	return nil
}

func (s *userService) UpdateRole(ctx context.Context, username, role string) error {
	if !models.IsValidRole(role) {
		return invalid("invalid role %q", role)
	}
	ok, err := s.userRepo.UpdateRole(ctx, username, role)
	return missing(ok, err, "user")
}

// Delete removes an account; admins cannot delete themselves
func (s *userService) Delete(ctx context.Context, actor, username string) error {
	if strings.EqualFold(actor, username) {
		return invalid("you cannot delete your own account")
	}
	ok, err := s.userRepo.Delete(ctx, username)
	return missing(ok, err, "user")
}
