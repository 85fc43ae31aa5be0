package services

import (
	"context"
	"fmt"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/logger"
	"fleetadmin/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgUserNotFound     = "User not found."
	msgUserEmailExists  = "A user with this email already exists."
	msgAccountInactive  = "Your account is inactive."
	msgAccountSuspended = "Your account has been suspended."

	userImageFolder = "users"
)

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type LoginResult struct {
	User  *models.User       `json:"user"`
	Token *utils.AccessToken `json:"token"`
}

type UserService interface {
	Signup(ctx context.Context, req *validators.SignupRequest, image *ImageUpload) (*models.User, error)
	CreateUser(ctx context.Context, req *validators.CreateUserRequest, image *ImageUpload) (*models.User, error)
	Login(ctx context.Context, req *validators.LoginRequest) (*LoginResult, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, req *validators.UpdateUserRequest, image *ImageUpload) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context, filter interfaces.UserFilter, params *utils.PaginationParams) ([]*models.User, int64, error)
}

type userService struct {
	userRepo interfaces.UserRepository
	images   *imageStore
	tokens   TokenConfig
	audit    SystemLogService
	logger   *logger.Logger
}

func NewUserService(
	userRepo interfaces.UserRepository,
	storageProvider storage.StorageProvider,
	imageMaxSide uint,
	tokens TokenConfig,
	audit SystemLogService,
	log *logger.Logger,
) UserService {
	return &userService{
		userRepo: userRepo,
		images:   &imageStore{storage: storageProvider, maxSide: imageMaxSide, logger: log},
		tokens:   tokens,
		audit:    audit,
		logger:   log,
	}
}

// Signup registers a passenger account. The role is always "user".
func (s *userService) Signup(ctx context.Context, req *validators.SignupRequest, image *ImageUpload) (*models.User, error) {
	user, err := s.create(ctx, req, models.RoleUser, models.UserStatusActive, image)
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).Info("User signed up")
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req *validators.CreateUserRequest, image *ImageUpload) (*models.User, error) {
	status := models.UserStatusActive
	if req.Status != "" {
		status = models.UserStatus(req.Status)
	}

	user, err := s.create(ctx, &req.SignupRequest, models.NormalizeRole(req.Role), status, image)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "user.create", fmt.Sprintf("Created %s account %s", user.Role, user.Email), "user", user.ID)
	return user, nil
}

func (s *userService) create(ctx context.Context, req *validators.SignupRequest, role models.UserRole, status models.UserStatus, image *ImageUpload) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err := checkUnique(err, func() bool { return existing != nil }, msgUserEmailExists); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}

	profileImage := utils.DefaultProfileImage
	if image != nil {
		key, err := s.images.save(ctx, userImageFolder, image)
		if err != nil {
			return nil, err
		}
		profileImage = key
	}

	user := &models.User{
		FirebaseID:   req.FirebaseID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     hash,
		ProfileImage: profileImage,
		Role:         role,
		Status:       status,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.images.remove(ctx, profileImage)
		return nil, writeErr(err, msgUserEmailExists)
	}
	return user, nil
}

// Login checks credentials and issues an access token. Deleted accounts are
// indistinguishable from unknown emails.
func (s *userService) Login(ctx context.Context, req *validators.LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NewUnauthorizedError(utils.ErrInvalidCredentials)
		}
		return nil, utils.WrapInternal(err)
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, utils.NewUnauthorizedError(utils.ErrInvalidCredentials)
	}

	switch user.Status {
	case models.UserStatusSuspended:
		return nil, utils.NewForbiddenError(msgAccountSuspended)
	case models.UserStatusInactive:
		return nil, utils.NewForbiddenError(msgAccountInactive)
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Email, string(user.Role), user.RoleID, s.tokens.Secret, s.tokens.TTL)
	if err != nil {
		return nil, utils.WrapInternal(fmt.Errorf("failed to sign token: %w", err))
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to update last login")
	}

	s.logger.WithUserID(user.ID).Info("User logged in")
	return &LoginResult{User: user, Token: token}, nil
}

func (s *userService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgUserNotFound)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id primitive.ObjectID, req *validators.UpdateUserRequest, image *ImageUpload) (*models.User, error) {
	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgUserNotFound)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["f_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["l_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		updates["role"] = models.NormalizeRole(*req.Role)
	}
	if req.Status != nil {
		updates["status"] = models.UserStatus(*req.Status)
	}
	if req.Email != nil && *req.Email != current.Email {
		existing, err := s.userRepo.GetByEmail(ctx, *req.Email)
		if err := checkUnique(err, func() bool { return existing.ID != id }, msgUserEmailExists); err != nil {
			return nil, err
		}
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, utils.WrapInternal(err)
		}
		updates["password"] = hash
	}

	var newImage string
	if image != nil {
		key, err := s.images.save(ctx, userImageFolder, image)
		if err != nil {
			return nil, err
		}
		newImage = key
		updates["profile_image"] = key
	}

	if len(updates) == 0 {
		return current, nil
	}

	// current may be refreshed by Update, so keep the key being replaced.
	oldImage := current.ProfileImage
	user, err := s.userRepo.Update(ctx, id, updates)
	if err != nil {
		s.images.remove(ctx, newImage)
		if utils.IsNotFound(err) {
			return nil, utils.NewNotFoundError(msgUserNotFound)
		}
		return nil, writeErr(err, msgUserEmailExists)
	}

	if newImage != "" {
		s.images.remove(ctx, oldImage)
	}

	s.audit.Record(ctx, "user.update", fmt.Sprintf("Updated user %s", user.Email), "user", user.ID)
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgUserNotFound)
	}

	s.audit.Record(ctx, "user.delete", fmt.Sprintf("Deleted user %s", user.Email), "user", user.ID)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, filter interfaces.UserFilter, params *utils.PaginationParams) ([]*models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return users, total, nil
}
