package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/repository"
)

type receivableRepository struct {
	db *sql.DB
}

func NewReceivableRepository(db *sql.DB) repository.ReceivableRepository {
	return &receivableRepository{db: db}
}

func (r *receivableRepository) Create(ctx context.Context, rc *domain.Receivable) error {
	if rc.ID == "" {
		rc.ID = uuid.New().String()
	}
	rc.CreatedOn = time.Now()

	query := `INSERT INTO receivables (id, rental_id, amount_cents, due_date, status, paid_at, renewal_number, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, rc.ID, rc.RentalID, rc.AmountCents, rc.DueDate, rc.Status, rc.PaidAt, rc.RenewalNumber, rc.CreatedOn)
	return domain.WrapPersistence("create receivable", err)
}

func (r *receivableRepository) Update(ctx context.Context, rc *domain.Receivable) error {
	query := `UPDATE receivables SET amount_cents=$1, due_date=$2, status=$3, paid_at=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, rc.AmountCents, rc.DueDate, rc.Status, rc.PaidAt, rc.ID)
	if err != nil {
		return domain.WrapPersistence("update receivable", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *receivableRepository) ListByRental(ctx context.Context, rentalID string) ([]domain.Receivable, error) {
	query := `SELECT id, rental_id, amount_cents, due_date, status, paid_at, renewal_number, created_on
	          FROM receivables WHERE rental_id = $1 ORDER BY renewal_number`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, domain.WrapPersistence("list receivables", err)
	}
	defer rows.Close()

	var items []domain.Receivable
	for rows.Next() {
		var rc domain.Receivable
		if err := rows.Scan(&rc.ID, &rc.RentalID, &rc.AmountCents, &rc.DueDate, &rc.Status, &rc.PaidAt, &rc.RenewalNumber, &rc.CreatedOn); err != nil {
			return nil, domain.WrapPersistence("scan receivable", err)
		}
		items = append(items, rc)
	}
	return items, rows.Err()
}

func (r *receivableRepository) DeleteByRental(ctx context.Context, rentalID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM receivables WHERE rental_id = $1`, rentalID)
	return domain.WrapPersistence("delete receivables", err)
}
