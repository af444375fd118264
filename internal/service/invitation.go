package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/invitecode"
	"homehub-backend/internal/logger"
	"homehub-backend/internal/repository"
)

// maxCodeAttempts bounds issuance retries on code collision. With 32^8
// possible codes a second collision in a row already signals something
// operationally wrong, so the bound is small.
const maxCodeAttempts = 5

type invitationService struct {
	inviteRepo     repository.InvitationRepository
	familyRepo     repository.FamilyRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
	noteRepo       repository.NotificationRepository
	emailSvc       EmailService
	expiry         time.Duration
}

func NewInvitationService(
	inviteRepo repository.InvitationRepository,
	familyRepo repository.FamilyRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	expiryDays int,
) InvitationService {
	return &invitationService{
		inviteRepo:     inviteRepo,
		familyRepo:     familyRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		noteRepo:       noteRepo,
		emailSvc:       emailSvc,
		expiry:         time.Duration(expiryDays) * 24 * time.Hour,
	}
}

func (s *invitationService) Issue(ctx context.Context, familyID, issuerID int32, inviteeEmail, inviteeName string) (*domain.Invitation, error) {
	if _, err := s.membershipRepo.GetByUserAndFamily(ctx, issuerID, familyID); err != nil {
		if errors.Is(err, domain.ErrNotFamilyMember) {
			return nil, domain.ErrNotFamilyMember
		}
		return nil, fmt.Errorf("failed to check issuer membership: %w", err)
	}

	now := time.Now()
	var inv *domain.Invitation
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := invitecode.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate invitation code: %w", err)
		}
		candidate := &domain.Invitation{
			Code:      code,
			FamilyID:  familyID,
			CreatedBy: issuerID,
			CreatedOn: now,
			ExpiresOn: now.Add(s.expiry),
		}
		err = s.inviteRepo.Create(ctx, candidate)
		if err == nil {
			inv = candidate
			break
		}
		if !errors.Is(err, domain.ErrDuplicateCode) {
			return nil, fmt.Errorf("failed to store invitation: %w", err)
		}
		logger.Warn("Invitation code collision, regenerating", "family_id", familyID, "attempt", attempt)
	}
	if inv == nil {
		// Operational alarm, not routine user-facing text.
		logger.Error("Invitation issuance exhausted retries", "family_id", familyID, "attempts", maxCodeAttempts)
		return nil, domain.ErrIssuanceExhausted
	}

	if inviteeEmail != "" {
		s.sendInvitationEmail(ctx, inv, inviteeEmail, inviteeName)
	}

	return inv, nil
}

// sendInvitationEmail is best effort; the code is shown to the issuer in the
// app regardless, so a mail fault never fails issuance.
func (s *invitationService) sendInvitationEmail(ctx context.Context, inv *domain.Invitation, email, name string) {
	family, err := s.familyRepo.GetByID(ctx, inv.FamilyID)
	if err != nil {
		logger.Warn("Invitation email skipped, could not load family", "family_id", inv.FamilyID, "error", err)
		return
	}
	if err := s.emailSvc.SendInvitation(ctx, email, name, inv.Code, family.Name); err != nil {
		logger.Warn("Failed to send invitation email", "family_id", inv.FamilyID, "error", err)
	}
}

func (s *invitationService) Validate(ctx context.Context, rawCode string) (*domain.ValidationResult, error) {
	code := invitecode.Normalize(rawCode)
	if len(code) < invitecode.Length {
		// Still typing; the UI must not style this as an error.
		return &domain.ValidationResult{
			Status: domain.ValidationIndeterminate,
			Reason: domain.ValidationReasonIncomplete,
		}, nil
	}

	inv, err := s.inviteRepo.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrInviteNotFound) {
		return &domain.ValidationResult{
			Status: domain.ValidationInvalid,
			Reason: domain.ValidationReasonNotFound,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}
	if inv.IsUsed() {
		return &domain.ValidationResult{
			Status: domain.ValidationInvalid,
			Reason: domain.ValidationReasonAlreadyUsed,
		}, nil
	}
	if inv.IsExpired(time.Now()) {
		return &domain.ValidationResult{
			Status: domain.ValidationInvalid,
			Reason: domain.ValidationReasonExpired,
		}, nil
	}
	return &domain.ValidationResult{Status: domain.ValidationValid}, nil
}

func (s *invitationService) Redeem(ctx context.Context, rawCode string, userID int32) (*domain.Family, error) {
	code := invitecode.Normalize(rawCode)
	if len(code) < invitecode.Length {
		return nil, domain.ErrCodeIncomplete
	}

	inv, err := s.inviteRepo.Redeem(ctx, code, userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInviteNotFound),
			errors.Is(err, domain.ErrInviteUsed),
			errors.Is(err, domain.ErrInviteExpired),
			errors.Is(err, domain.ErrMembershipConflict):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to redeem invitation: %w", err)
		}
	}

	family, err := s.familyRepo.GetByID(ctx, inv.FamilyID)
	if err != nil {
		// The membership is already committed; surface the family lookup
		// failure without pretending the redemption failed.
		return nil, fmt.Errorf("joined family %d but failed to load it: %w", inv.FamilyID, err)
	}

	logger.Info("Invitation redeemed", "code", inv.Code, "family_id", family.ID, "user_id", userID)

	go s.announceJoin(family, userID)

	return family, nil
}

// announceJoin tells existing members somebody joined. Fire and forget: it
// runs after the redemption transaction committed and its failures are only
// logged, never propagated.
func (s *invitationService) announceJoin(family *domain.Family, newMemberID int32) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	newMember, err := s.userRepo.GetByID(ctx, newMemberID)
	if err != nil {
		logger.Warn("Join announcement skipped, could not load new member", "user_id", newMemberID, "error", err)
		return
	}

	members, _, err := s.membershipRepo.ListMembersByFamily(ctx, family.ID)
	if err != nil {
		logger.Warn("Join announcement skipped, could not list members", "family_id", family.ID, "error", err)
		return
	}

	title := "New family member"
	message := fmt.Sprintf("%s joined %s", newMember.Name, family.Name)
	for _, member := range members {
		if member.ID == newMemberID {
			continue
		}
		note := &domain.Notification{
			UserID:   member.ID,
			FamilyID: family.ID,
			Title:    title,
			Message:  message,
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create join notification", "user_id", member.ID, "error", err)
		}
		if err := s.emailSvc.SendJoinAnnouncement(ctx, member.Email, member.Name, newMember.Name, family.Name); err != nil {
			logger.Warn("Failed to send join announcement email", "user_id", member.ID, "error", err)
		}
	}
}
