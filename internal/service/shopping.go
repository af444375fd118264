package service

import (
	"context"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/repository"
)

type shoppingService struct {
	shoppingRepo   repository.ShoppingRepository
	membershipRepo repository.MembershipRepository
}

func NewShoppingService(shoppingRepo repository.ShoppingRepository, membershipRepo repository.MembershipRepository) ShoppingService {
	return &shoppingService{
		shoppingRepo:   shoppingRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *shoppingService) AddItem(ctx context.Context, userID int32, item *domain.ShoppingItem) error {
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, item.FamilyID); err != nil {
		return err
	}
	item.CreatedBy = userID
	return s.shoppingRepo.Create(ctx, item)
}

func (s *shoppingService) UpdateItem(ctx context.Context, userID int32, item *domain.ShoppingItem) error {
	existing, err := s.shoppingRepo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, existing.FamilyID); err != nil {
		return err
	}
	item.FamilyID = existing.FamilyID
	return s.shoppingRepo.Update(ctx, item)
}

func (s *shoppingService) DeleteItem(ctx context.Context, userID, itemID int32) error {
	existing, err := s.shoppingRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, existing.FamilyID); err != nil {
		return err
	}
	return s.shoppingRepo.Delete(ctx, itemID)
}

func (s *shoppingService) ListItems(ctx context.Context, userID, familyID int32) ([]domain.ShoppingItem, error) {
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, familyID); err != nil {
		return nil, err
	}
	return s.shoppingRepo.ListByFamily(ctx, familyID)
}

func (s *shoppingService) CheckItem(ctx context.Context, userID, itemID int32, checked bool) error {
	existing, err := s.shoppingRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, userID, existing.FamilyID); err != nil {
		return err
	}
	return s.shoppingRepo.SetChecked(ctx, itemID, userID, checked)
}
