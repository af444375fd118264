package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/repository"
)

type familyService struct {
	familyRepo     repository.FamilyRepository
	membershipRepo repository.MembershipRepository
}

func NewFamilyService(
	familyRepo repository.FamilyRepository,
	membershipRepo repository.MembershipRepository,
) FamilyService {
	return &familyService{
		familyRepo:     familyRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *familyService) CreateFamily(ctx context.Context, userID int32, name string) (*domain.Family, error) {
	if _, err := s.membershipRepo.GetByUser(ctx, userID); err == nil {
		return nil, domain.ErrMembershipConflict
	} else if !errors.Is(err, domain.ErrNotFamilyMember) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	// Family row, founder OWNER membership and the founder's family
	// reference land in one transaction; a fault leaves no orphan family.
	family := &domain.Family{
		Name:      name,
		CreatedBy: userID,
	}
	if err := s.familyRepo.CreateWithOwner(ctx, family, userID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrMembershipConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	return family, nil
}

func (s *familyService) GetFamily(ctx context.Context, userID, familyID int32) (*domain.Family, error) {
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, familyID); err != nil {
		return nil, err
	}
	return s.familyRepo.GetByID(ctx, familyID)
}

func (s *familyService) ListMembers(ctx context.Context, userID, familyID int32) ([]domain.User, []domain.Membership, error) {
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, familyID); err != nil {
		return nil, nil, err
	}
	return s.membershipRepo.ListMembersByFamily(ctx, familyID)
}
