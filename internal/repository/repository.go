package repository

import (
	"context"
	"time"

	"homehub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type FamilyRepository interface {
	// CreateWithOwner inserts the family, the founder's OWNER membership and
	// the founder's family reference in one transaction. A failure in any of
	// the three writes leaves no orphan family row. Returns
	// domain.ErrMembershipConflict when the founder already belongs to a
	// family.
	CreateWithOwner(ctx context.Context, family *domain.Family, ownerID int32, now time.Time) error
	GetByID(ctx context.Context, id int32) (*domain.Family, error)
	Update(ctx context.Context, family *domain.Family) error
}

type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	GetByUser(ctx context.Context, userID int32) (*domain.Membership, error)
	GetByUserAndFamily(ctx context.Context, userID, familyID int32) (*domain.Membership, error)
	ListMembersByFamily(ctx context.Context, familyID int32) ([]domain.User, []domain.Membership, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByCode(ctx context.Context, code string) (*domain.Invitation, error)

	// Redeem performs the single-use state transition and the membership
	// writes in one transaction. Exactly one of any number of concurrent
	// attempts for the same code can succeed; the rest observe
	// domain.ErrInviteUsed. A failed attempt writes nothing.
	Redeem(ctx context.Context, code string, userID int32, now time.Time) (*domain.Invitation, error)

	// DeleteExpired prunes long-dead rows for the retention job. Not part of
	// the correctness contract; expiry is enforced at redemption time.
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type PantryRepository interface {
	Create(ctx context.Context, item *domain.PantryItem) error
	GetByID(ctx context.Context, id int32) (*domain.PantryItem, error)
	Update(ctx context.Context, item *domain.PantryItem) error
	Delete(ctx context.Context, id int32) error
	ListByFamily(ctx context.Context, familyID int32) ([]domain.PantryItem, error)
}

type ShoppingRepository interface {
	Create(ctx context.Context, item *domain.ShoppingItem) error
	GetByID(ctx context.Context, id int32) (*domain.ShoppingItem, error)
	Update(ctx context.Context, item *domain.ShoppingItem) error
	Delete(ctx context.Context, id int32) error
	ListByFamily(ctx context.Context, familyID int32) ([]domain.ShoppingItem, error)
	SetChecked(ctx context.Context, id int32, userID int32, checked bool) error
}
