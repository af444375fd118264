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

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	if inv.CreatedOn.IsZero() {
		inv.CreatedOn = time.Now()
	}
	query := `INSERT INTO invitations (code, family_id, created_by, created_on, expires_on)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, inv.Code, inv.FamilyID, inv.CreatedBy, inv.CreatedOn, inv.ExpiresOn)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateCode
	}
	return err
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	query := `SELECT code, family_id, created_by, created_on, expires_on, used_on, used_by
	          FROM invitations WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).
		Scan(&inv.Code, &inv.FamilyID, &inv.CreatedBy, &inv.CreatedOn, &inv.ExpiresOn, &inv.UsedOn, &inv.UsedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Redeem consumes the invitation and links the user to its family in one
// transaction. The consume is a single conditional UPDATE guarded by
// used_on IS NULL AND expires_on > now, never a read followed by a write,
// so two racing attempts cannot both pass the precondition.
func (r *invitationRepository) Redeem(ctx context.Context, code string, userID int32, now time.Time) (*domain.Invitation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin redemption: %w", err)
	}
	defer tx.Rollback()

	inv := &domain.Invitation{Code: code}
	consume := `UPDATE invitations SET used_on = $1, used_by = $2
	            WHERE code = $3 AND used_on IS NULL AND expires_on > $1
	            RETURNING family_id, created_by, created_on, expires_on`
	err = tx.QueryRowContext(ctx, consume, now, userID, code).
		Scan(&inv.FamilyID, &inv.CreatedBy, &inv.CreatedOn, &inv.ExpiresOn)
	if errors.Is(err, sql.ErrNoRows) {
		// Nothing transitioned. Classify why; the rollback discards nothing
		// because nothing was written.
		return nil, r.classifyFailedConsume(ctx, tx, code, now)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark invitation used: %w", err)
	}
	usedOn := now
	inv.UsedOn = &usedOn
	inv.UsedBy = &userID

	insert := `INSERT INTO memberships (user_id, family_id, role, joined_on)
	           VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insert, userID, inv.FamilyID, domain.MembershipRoleMember, now); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrMembershipConflict
		}
		return nil, fmt.Errorf("failed to insert membership: %w", err)
	}

	link := `UPDATE users SET family_id = $1, updated_on = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, link, inv.FamilyID, now, userID); err != nil {
		return nil, fmt.Errorf("failed to update user family reference: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit redemption: %w", err)
	}
	return inv, nil
}

func (r *invitationRepository) classifyFailedConsume(ctx context.Context, tx *sql.Tx, code string, now time.Time) error {
	var usedOn *time.Time
	var expiresOn time.Time
	query := `SELECT used_on, expires_on FROM invitations WHERE code = $1`
	err := tx.QueryRowContext(ctx, query, code).Scan(&usedOn, &expiresOn)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrInviteNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to inspect invitation: %w", err)
	}
	if usedOn != nil {
		return domain.ErrInviteUsed
	}
	if !expiresOn.After(now) {
		return domain.ErrInviteExpired
	}
	// The row looks redeemable now but the conditional update saw otherwise;
	// a concurrent winner committed between the two statements.
	return domain.ErrInviteUsed
}

func (r *invitationRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `DELETE FROM invitations
	          WHERE (used_on IS NOT NULL AND used_on < $1)
	             OR (used_on IS NULL AND expires_on < $1)`
	res, err := r.db.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
