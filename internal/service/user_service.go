package service

import (
	"context"
	"errors"

	"cadence/internal/models"
	"cadence/internal/repository"
	"cadence/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID uint
	Name   string
	Email  string
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// UpdateProfile changes the display name and email. Changing the email to
// one held by another account is a conflict.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := validation.ValidateUserName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Email != user.Email {
		existing, lookupErr := s.userRepo.GetByEmail(ctx, in.Email)
		if lookupErr != nil {
			return nil, models.NewInternalError(lookupErr)
		}
		if existing != nil {
			return nil, models.NewConflictError("This email address is already in use")
		}
	}

	user.Name = in.Name
	user.Email = in.Email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.GetProfile(ctx, in.UserID)
	if err != nil {
		return err
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); cmpErr != nil {
		return models.NewValidationError("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
