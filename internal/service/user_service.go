package service

import (
	"context"
	"strings"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/admin/dashboard"
	"pharaohvault-be/pkg/admin/mapper"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	GetStats(ctx context.Context, userId uuid.UUID) (*dto.UserStatsResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, aggregator *dashboard.Aggregator) IUserService {
	return &userService{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
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

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Persistence("Failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Phone = strings.TrimSpace(req.Phone)
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Persistence("Failed to update profile", err)
	}

	profile := mapper.UserToProfileResponse(user)
	return &profile, nil
}

func (s *userService) GetStats(ctx context.Context, userId uuid.UUID) (*dto.UserStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats, err := s.aggregator.GetUserStats(ctx, uow, userId)
	if err != nil {
		return nil, apperror.Persistence("Failed to compute investment stats", err)
	}
	return &dto.UserStatsResponse{
		TotalInvested:     stats.TotalInvested,
		MonthlyInvested:   stats.MonthlyInvested,
		SubscriptionCount: stats.SubscriptionCount,
	}, nil
}
