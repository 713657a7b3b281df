package service

import (
	"context"
	"strings"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/pkg/session"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/admin/mapper"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error)
	SignOut(ctx context.Context, s *session.Session) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *session.Manager
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, sessions *session.Manager, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		sessions:   sessions,
		logger:     logger,
	}
}

func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	email := normalizeEmail(req.Email)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, apperror.Persistence("Failed to look up user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         entity.UserRoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Persistence("Failed to create user", err)
	}

	s.logger.Info("AUTH", "User signed up", map[string]interface{}{"user_id": user.Id})

	return s.issue(ctx, user)
}

func (s *authService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: normalizeEmail(req.Email)})
	if err != nil {
		return nil, apperror.Persistence("Failed to look up user", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("AUTH", "Failed sign in attempt", map[string]interface{}{"user_id": user.Id})
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	return s.issue(ctx, user)
}

func (s *authService) SignOut(ctx context.Context, sess *session.Session) error {
	if err := s.sessions.Teardown(ctx, sess); err != nil {
		return apperror.Persistence("Failed to end session", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Persistence("Failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	profile := mapper.UserToProfileResponse(user)
	return &profile, nil
}

func (s *authService) issue(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	token, sess, err := s.sessions.Init(ctx, user.Id, user.Email, string(user.Role))
	if err != nil {
		return nil, apperror.Persistence("Failed to start session", err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		ExpiresAt:   sess.ExpiresAt,
		User:        mapper.UserToProfileResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
