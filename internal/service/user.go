package service

import (
	"context"
	"errors"
	"fmt"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/repository"
)

type userService struct {
	userRepo       repository.UserRepository
	familyRepo     repository.FamilyRepository
	membershipRepo repository.MembershipRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	familyRepo repository.FamilyRepository,
	membershipRepo repository.MembershipRepository,
) UserService {
	return &userService{
		userRepo:       userRepo,
		familyRepo:     familyRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.Family, *domain.Membership, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	membership, err := s.membershipRepo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFamilyMember) {
		return user, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load membership: %w", err)
	}

	family, err := s.familyRepo.GetByID(ctx, membership.FamilyID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load family: %w", err)
	}

	return user, family, membership, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, avatarURL string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if name != "" {
		user.Name = name
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}
	return s.userRepo.Update(ctx, user)
}
