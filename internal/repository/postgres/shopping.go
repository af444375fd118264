package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/repository"
)

type shoppingRepository struct {
	db *sql.DB
}

func NewShoppingRepository(db *sql.DB) repository.ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) Create(ctx context.Context, item *domain.ShoppingItem) error {
	now := time.Now()
	query := `INSERT INTO shopping_items (family_id, name, quantity, note, is_checked, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, false, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, item.FamilyID, item.Name, item.Quantity, item.Note,
		item.CreatedBy, now, now).Scan(&item.ID)
}

func (r *shoppingRepository) GetByID(ctx context.Context, id int32) (*domain.ShoppingItem, error) {
	item := &domain.ShoppingItem{}
	query := `SELECT id, family_id, name, quantity, note, is_checked, checked_by, created_by, created_on, updated_on
	          FROM shopping_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.FamilyID, &item.Name, &item.Quantity, &item.Note, &item.IsChecked,
			&item.CheckedBy, &item.CreatedBy, &item.CreatedOn, &item.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *shoppingRepository) Update(ctx context.Context, item *domain.ShoppingItem) error {
	query := `UPDATE shopping_items SET name = $1, quantity = $2, note = $3, updated_on = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, item.Name, item.Quantity, item.Note, time.Now(), item.ID)
	return err
}

func (r *shoppingRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = $1`, id)
	return err
}

func (r *shoppingRepository) ListByFamily(ctx context.Context, familyID int32) ([]domain.ShoppingItem, error) {
	query := `SELECT id, family_id, name, quantity, note, is_checked, checked_by, created_by, created_on, updated_on
	          FROM shopping_items WHERE family_id = $1 ORDER BY is_checked, created_on`
	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ShoppingItem
	for rows.Next() {
		var item domain.ShoppingItem
		if err := rows.Scan(&item.ID, &item.FamilyID, &item.Name, &item.Quantity, &item.Note, &item.IsChecked,
			&item.CheckedBy, &item.CreatedBy, &item.CreatedOn, &item.UpdatedOn); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *shoppingRepository) SetChecked(ctx context.Context, id int32, userID int32, checked bool) error {
	var checkedBy *int32
	if checked {
		checkedBy = &userID
	}
	query := `UPDATE shopping_items SET is_checked = $1, checked_by = $2, updated_on = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, checked, checkedBy, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
