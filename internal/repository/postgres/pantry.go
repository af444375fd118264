package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/repository"
)

type pantryRepository struct {
	db *sql.DB
}

func NewPantryRepository(db *sql.DB) repository.PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) Create(ctx context.Context, item *domain.PantryItem) error {
	now := time.Now()
	query := `INSERT INTO pantry_items (family_id, name, quantity, unit, category, expires_on, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, item.FamilyID, item.Name, item.Quantity, item.Unit,
		item.Category, item.ExpiresOn, item.CreatedBy, now, now).Scan(&item.ID)
}

func (r *pantryRepository) GetByID(ctx context.Context, id int32) (*domain.PantryItem, error) {
	item := &domain.PantryItem{}
	query := `SELECT id, family_id, name, quantity, unit, category, expires_on, created_by, created_on, updated_on
	          FROM pantry_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.FamilyID, &item.Name, &item.Quantity, &item.Unit, &item.Category,
			&item.ExpiresOn, &item.CreatedBy, &item.CreatedOn, &item.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *pantryRepository) Update(ctx context.Context, item *domain.PantryItem) error {
	query := `UPDATE pantry_items SET name = $1, quantity = $2, unit = $3, category = $4, expires_on = $5, updated_on = $6
	          WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query, item.Name, item.Quantity, item.Unit, item.Category,
		item.ExpiresOn, time.Now(), item.ID)
	return err
}

func (r *pantryRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pantry_items WHERE id = $1`, id)
	return err
}

func (r *pantryRepository) ListByFamily(ctx context.Context, familyID int32) ([]domain.PantryItem, error) {
	query := `SELECT id, family_id, name, quantity, unit, category, expires_on, created_by, created_on, updated_on
	          FROM pantry_items WHERE family_id = $1 ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PantryItem
	for rows.Next() {
		var item domain.PantryItem
		if err := rows.Scan(&item.ID, &item.FamilyID, &item.Name, &item.Quantity, &item.Unit, &item.Category,
			&item.ExpiresOn, &item.CreatedBy, &item.CreatedOn, &item.UpdatedOn); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
