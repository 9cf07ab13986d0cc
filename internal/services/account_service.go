package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cottageplayer/internal/models"
	"cottageplayer/internal/repository"
	"cottageplayer/internal/utils"
)

// AccountService owns the user lifecycle: provisioning, role changes and
// activation toggles. Users are never hard-deleted; they are deactivated.
type AccountService struct {
	users *repository.UserRepo
	log   *zap.SugaredLogger
}

func NewAccountService(users *repository.UserRepo, log *zap.SugaredLogger) *AccountService {
	return &AccountService{users: users, log: log}
}

func (s *AccountService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.ByEmail(ctx, email)
}

func (s *AccountService) ByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.ByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// EnsureUser refreshes name/picture for an existing account, or creates a
// viewer account when createIfMissing is set. Returns (nil, nil) for an
// unknown email when creation is disabled.
func (s *AccountService) EnsureUser(ctx context.Context, email, name, picture string, createIfMissing bool) (*models.User, error) {
	email = models.NormalizeEmail(email)
	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		changed := false
		if name != "" && user.Name != name {
			user.Name = name
			changed = true
		}
		if picture != "" && user.Picture != picture {
			user.Picture = picture
			changed = true
		}
		if changed {
			if err := s.users.Save(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !createIfMissing {
		return nil, nil
	}
	user = &models.User{Email: email, Name: name, Picture: picture, Role: models.RoleViewer, Active: true}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Infow("user auto-provisioned", "email", email)
	return user, nil
}

func (s *AccountService) SetRole(ctx context.Context, id uint, role models.Role) error {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", id, utils.ErrNotFound)
	}
	user.Role = role
	return s.users.Save(ctx, user)
}

func (s *AccountService) SetActive(ctx context.Context, id uint, active bool) error {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", id, utils.ErrNotFound)
	}
	user.Active = active
	return s.users.Save(ctx, user)
}

// AddOrActivate is the idempotent admin-driven upsert: an existing account
// is reactivated (name and role updated when provided), a missing one is
// created active. The bool reports whether a row was created.
func (s *AccountService) AddOrActivate(ctx context.Context, email, name string, role models.Role) (*models.User, bool, error) {
	email = models.NormalizeEmail(email)
	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		user.Active = true
		if name != "" {
			user.Name = name
		}
		if role != "" && user.Role != role {
			user.Role = role
		}
		if err := s.users.Save(ctx, user); err != nil {
			return nil, false, err
		}
		return user, false, nil
	}
	user = &models.User{Email: email, Name: name, Role: role, Active: true}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// InitAdmins promotes the configured bootstrap emails to active admins,
// creating accounts that do not exist yet. Called once at startup.
func (s *AccountService) InitAdmins(ctx context.Context, emails []string) error {
	for _, email := range emails {
		if email == "" {
			continue
		}
		email = models.NormalizeEmail(email)
		user, err := s.users.ByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user != nil {
			user.Role = models.RoleAdmin
			user.Active = true
			if err := s.users.Save(ctx, user); err != nil {
				return err
			}
			continue
		}
		admin := &models.User{Email: email, Role: models.RoleAdmin, Active: true}
		if err := s.users.Create(ctx, admin); err != nil {
			return err
		}
		s.log.Infow("bootstrap admin created", "email", email)
	}
	return nil
}
