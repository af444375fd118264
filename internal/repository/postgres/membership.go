package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	if m.JoinedOn.IsZero() {
		m.JoinedOn = time.Now()
	}
	query := `INSERT INTO memberships (user_id, family_id, role, joined_on) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.FamilyID, m.Role, m.JoinedOn)
	if isUniqueViolation(err) {
		return domain.ErrMembershipConflict
	}
	return err
}

func (r *membershipRepository) GetByUser(ctx context.Context, userID int32) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT user_id, family_id, role, joined_on FROM memberships WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&m.UserID, &m.FamilyID, &m.Role, &m.JoinedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFamilyMember
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) GetByUserAndFamily(ctx context.Context, userID, familyID int32) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT user_id, family_id, role, joined_on FROM memberships WHERE user_id = $1 AND family_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, familyID).
		Scan(&m.UserID, &m.FamilyID, &m.Role, &m.JoinedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFamilyMember
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) ListMembersByFamily(ctx context.Context, familyID int32) ([]domain.User, []domain.Membership, error) {
	query := `SELECT u.id, u.email, u.name, u.avatar_url, u.family_id, u.created_on, u.updated_on,
	                 m.user_id, m.family_id, m.role, m.joined_on
	          FROM memberships m
	          JOIN users u ON u.id = m.user_id
	          WHERE m.family_id = $1
	          ORDER BY m.joined_on`
	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var users []domain.User
	var memberships []domain.Membership
	for rows.Next() {
		var u domain.User
		var m domain.Membership
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.FamilyID, &u.CreatedOn, &u.UpdatedOn,
			&m.UserID, &m.FamilyID, &m.Role, &m.JoinedOn); err != nil {
			return nil, nil, err
		}
		users = append(users, u)
		memberships = append(memberships, m)
	}
	return users, memberships, rows.Err()
}
