package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, name, category, serial_numbers, purchase_cost_cents,
	daily_price_cents, weekly_price_cents, biweekly_price_cents, monthly_price_cents,
	notes, created_on, updated_on`

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	err := row.Scan(&eq.ID, &eq.Name, &eq.Category, pq.Array(&eq.SerialNumbers), &eq.PurchaseCostCents,
		&eq.DailyPriceCents, &eq.WeeklyPriceCents, &eq.BiweeklyPriceCents, &eq.MonthlyPriceCents,
		&eq.Notes, &eq.CreatedOn, &eq.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	if eq.ID == "" {
		eq.ID = uuid.New().String()
	}
	now := time.Now()
	eq.CreatedOn = now
	eq.UpdatedOn = now

	query := `INSERT INTO equipment (` + equipmentColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query, eq.ID, eq.Name, eq.Category, pq.Array(eq.SerialNumbers), eq.PurchaseCostCents,
		eq.DailyPriceCents, eq.WeeklyPriceCents, eq.BiweeklyPriceCents, eq.MonthlyPriceCents,
		eq.Notes, eq.CreatedOn, eq.UpdatedOn)
	return domain.WrapPersistence("create equipment", err)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	eq, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.WrapPersistence("get equipment", err)
	}
	return eq, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	eq.UpdatedOn = time.Now()
	query := `UPDATE equipment SET name=$1, category=$2, serial_numbers=$3, purchase_cost_cents=$4,
	          daily_price_cents=$5, weekly_price_cents=$6, biweekly_price_cents=$7, monthly_price_cents=$8,
	          notes=$9, updated_on=$10 WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query, eq.Name, eq.Category, pq.Array(eq.SerialNumbers), eq.PurchaseCostCents,
		eq.DailyPriceCents, eq.WeeklyPriceCents, eq.BiweeklyPriceCents, eq.MonthlyPriceCents,
		eq.Notes, eq.UpdatedOn, eq.ID)
	if err != nil {
		return domain.WrapPersistence("update equipment", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return domain.WrapPersistence("delete equipment", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.WrapPersistence("list equipment", err)
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, domain.WrapPersistence("scan equipment", err)
		}
		items = append(items, *eq)
	}
	return items, rows.Err()
}
