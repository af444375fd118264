package service

import (
	"context"

	"homehub-backend/internal/domain"
)

type InvitationService interface {
	// Issue creates a fresh single-use code for the family. The issuer must
	// be a current member. inviteeEmail/inviteeName are optional; when set,
	// the code is also emailed to the invitee.
	Issue(ctx context.Context, familyID, issuerID int32, inviteeEmail, inviteeName string) (*domain.Invitation, error)

	// Validate is a pure read for live UI feedback; it never consumes the
	// code and may be called on every keystroke.
	Validate(ctx context.Context, rawCode string) (*domain.ValidationResult, error)

	// Redeem atomically consumes the code and admits the user into its
	// family, returning the family for the post-join redirect.
	Redeem(ctx context.Context, rawCode string, userID int32) (*domain.Family, error)
}

type FamilyService interface {
	CreateFamily(ctx context.Context, userID int32, name string) (*domain.Family, error)
	GetFamily(ctx context.Context, userID, familyID int32) (*domain.Family, error)
	ListMembers(ctx context.Context, userID, familyID int32) ([]domain.User, []domain.Membership, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.Family, *domain.Membership, error)
	UpdateProfile(ctx context.Context, userID int32, name, avatarURL string) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type PantryService interface {
	AddItem(ctx context.Context, userID int32, item *domain.PantryItem) error
	UpdateItem(ctx context.Context, userID int32, item *domain.PantryItem) error
	DeleteItem(ctx context.Context, userID, itemID int32) error
	ListItems(ctx context.Context, userID, familyID int32) ([]domain.PantryItem, error)
}

type ShoppingService interface {
	AddItem(ctx context.Context, userID int32, item *domain.ShoppingItem) error
	UpdateItem(ctx context.Context, userID int32, item *domain.ShoppingItem) error
	DeleteItem(ctx context.Context, userID, itemID int32) error
	ListItems(ctx context.Context, userID, familyID int32) ([]domain.ShoppingItem, error)
	CheckItem(ctx context.Context, userID, itemID int32, checked bool) error
}

type EmailService interface {
	SendInvitation(ctx context.Context, email, name, code, familyName string) error
	SendJoinAnnouncement(ctx context.Context, email, name, newMemberName, familyName string) error
}
