package service

import (
	"context"

	"bibliotec/internal/entities"
	"bibliotec/internal/repository"
)

type ProfileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context, userID int) (*entities.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &entities.ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *ProfileService) Update(ctx context.Context, userID int, req entities.UpdateProfileRequest) error {
	return s.users.UpdateProfile(ctx, userID, req.Name, req.Phone)
}

func (s *ProfileService) Delete(ctx context.Context, userID int) error {
	return s.users.Delete(ctx, userID)
}
