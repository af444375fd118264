package service

import (
	"context"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/repository"
)

type pantryService struct {
	pantryRepo     repository.PantryRepository
	membershipRepo repository.MembershipRepository
}

func NewPantryService(pantryRepo repository.PantryRepository, membershipRepo repository.MembershipRepository) PantryService {
	return &pantryService{
		pantryRepo:     pantryRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *pantryService) AddItem(ctx context.Context, userID int32, item *domain.PantryItem) error {
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, item.FamilyID); err != nil {
		return err
	}
	item.CreatedBy = userID
	return s.pantryRepo.Create(ctx, item)
}

func (s *pantryService) UpdateItem(ctx context.Context, userID int32, item *domain.PantryItem) error {
	existing, err := s.pantryRepo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, existing.FamilyID); err != nil {
		return err
	}
	item.FamilyID = existing.FamilyID
	return s.pantryRepo.Update(ctx, item)
}

func (s *pantryService) DeleteItem(ctx context.Context, userID, itemID int32) error {
	existing, err := s.pantryRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, existing.FamilyID); err != nil {
		return err
	}
	return s.pantryRepo.Delete(ctx, itemID)
}

func (s *pantryService) ListItems(ctx context.Context, userID, familyID int32) ([]domain.PantryItem, error) {
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, familyID); err != nil {
		return nil, err
	}
	return s.pantryRepo.ListByFamily(ctx, familyID)
}
