package postgres

import (
	"database/sql"
	"errors"

	"homehub-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.FamilyRepository
	repository.MembershipRepository
	repository.InvitationRepository
	repository.NotificationRepository
	repository.PantryRepository
	repository.ShoppingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		FamilyRepository:       NewFamilyRepository(db),
		MembershipRepository:   NewMembershipRepository(db),
		InvitationRepository:   NewInvitationRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		PantryRepository:       NewPantryRepository(db),
		ShoppingRepository:     NewShoppingRepository(db),
	}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
