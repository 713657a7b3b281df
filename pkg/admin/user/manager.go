package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager handles user-related admin operations
type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger}
}

// FindAll retrieves users with pagination, newest first. An empty role lists every user.
func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, role string) ([]*entity.User, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if role != "" {
		parsed, err := parseRole(role)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByRole{Role: string(parsed)})
	}

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Persistence("Failed to load users", err)
	}
	return users, nil
}

func (m *Manager) FindOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Persistence("Failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

// Update edits another user's profile fields.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req dto.UpdateProfileRequest) (*entity.User, error) {
	user, err := m.FindOne(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Phone = strings.TrimSpace(req.Phone)
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Persistence("Failed to update user", err)
	}
	return user, nil
}

// UpdateRole changes a user's role. Admins cannot change their own role.
func (m *Manager) UpdateRole(ctx context.Context, uow unitofwork.UnitOfWork, actorId, userId uuid.UUID, role string) (*entity.User, error) {
	parsed, err := parseRole(role)
	if err != nil {
		return nil, err
	}
	if actorId == userId {
		return nil, apperror.Conflict("You cannot change your own role")
	}

	user, err := m.FindOne(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if user.Role == parsed {
		return user, nil
	}

	if err := uow.UserRepository().UpdateRole(ctx, userId, parsed); err != nil {
		return nil, apperror.Persistence("Failed to update user role", err)
	}

	m.logger.Info("ADMIN", "Updated user role", map[string]interface{}{
		"userId": userId.String(),
		"from":   string(user.Role),
		"to":     string(parsed),
	})

	user.Role = parsed
	return user, nil
}

// Delete removes a user. Their subscriptions and requests go with them.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, actorId, userId uuid.UUID) error {
	if actorId == userId {
		return apperror.Conflict("You cannot delete your own account")
	}
	if _, err := m.FindOne(ctx, uow, userId); err != nil {
		return err
	}

	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return apperror.Persistence("Failed to delete user", err)
	}

	m.logger.Info("ADMIN", "Deleted User", map[string]interface{}{
		"userId": userId.String(),
	})
	return nil
}

func parseRole(role string) (entity.UserRole, error) {
	switch entity.UserRole(role) {
	case entity.UserRoleUser, entity.UserRoleAdmin:
		return entity.UserRole(role), nil
	}
	return "", apperror.Validation(fmt.Sprintf("Unknown role '%s'", role))
}
