package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/repository"
)

type familyRepository struct {
	db *sql.DB
}

func NewFamilyRepository(db *sql.DB) repository.FamilyRepository {
	return &familyRepository{db: db}
}

// CreateWithOwner runs the family insert, the founder membership insert and
// the founder's family-reference update in one transaction, the same shape
// the invitation redeemer uses. A fault in any write rolls back all three.
func (r *familyRepository) CreateWithOwner(ctx context.Context, family *domain.Family, ownerID int32, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin family creation: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO families (name, created_by, created_on) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRowContext(ctx, insert, family.Name, family.CreatedBy, now).Scan(&family.ID); err != nil {
		return fmt.Errorf("failed to insert family: %w", err)
	}
	family.CreatedOn = now

	membership := `INSERT INTO memberships (user_id, family_id, role, joined_on)
	               VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, membership, ownerID, family.ID, domain.MembershipRoleOwner, now); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMembershipConflict
		}
		return fmt.Errorf("failed to insert founder membership: %w", err)
	}

	link := `UPDATE users SET family_id = $1, updated_on = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, link, family.ID, now, ownerID); err != nil {
		return fmt.Errorf("failed to update founder family reference: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit family creation: %w", err)
	}
	return nil
}

func (r *familyRepository) GetByID(ctx context.Context, id int32) (*domain.Family, error) {
	family := &domain.Family{}
	query := `SELECT id, name, created_by, created_on FROM families WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&family.ID, &family.Name, &family.CreatedBy, &family.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFamilyNotFound
	}
	if err != nil {
		return nil, err
	}
	return family, nil
}

func (r *familyRepository) Update(ctx context.Context, family *domain.Family) error {
	query := `UPDATE families SET name = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, family.Name, family.ID)
	return err
}
