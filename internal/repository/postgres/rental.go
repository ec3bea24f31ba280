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

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, client_id, equipment_ids, amount_cents, period, start_date, expected_end_date,
	payment_status, payment_date, payment_due_date,
	delivery_status, scheduled_delivery_date, delivered_at,
	collection_status, collected_at,
	invoice_required, invoice_issued, contract_status,
	renewal_count, last_renewed_at, version, created_on, updated_on`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.ClientID, pq.Array(&rt.EquipmentIDs), &rt.AmountCents, &rt.Period, &rt.StartDate, &rt.ExpectedEndDate,
		&rt.PaymentStatus, &rt.PaymentDate, &rt.PaymentDueDate,
		&rt.DeliveryStatus, &rt.ScheduledDeliveryDate, &rt.DeliveredAt,
		&rt.CollectionStatus, &rt.CollectedAt,
		&rt.InvoiceRequired, &rt.InvoiceIssued, &rt.ContractStatus,
		&rt.RenewalCount, &rt.LastRenewedAt, &rt.Version, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	rt.Version = 1

	query := `INSERT INTO rentals (` + rentalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.db.ExecContext(ctx, query, rt.ID, rt.ClientID, pq.Array(rt.EquipmentIDs), rt.AmountCents, rt.Period, rt.StartDate, rt.ExpectedEndDate,
		rt.PaymentStatus, rt.PaymentDate, rt.PaymentDueDate,
		rt.DeliveryStatus, rt.ScheduledDeliveryDate, rt.DeliveredAt,
		rt.CollectionStatus, rt.CollectedAt,
		rt.InvoiceRequired, rt.InvoiceIssued, rt.ContractStatus,
		rt.RenewalCount, rt.LastRenewedAt, rt.Version, rt.CreatedOn, rt.UpdatedOn)
	return domain.WrapPersistence("create rental", err)
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.WrapPersistence("get rental", err)
	}
	return rt, nil
}

// Update is a compare-and-swap on the version column: the row is written
// only when the stored version still matches the one the caller read.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	rt.UpdatedOn = time.Now()
	query := `UPDATE rentals SET amount_cents=$1, expected_end_date=$2,
	          payment_status=$3, payment_date=$4, payment_due_date=$5,
	          delivery_status=$6, scheduled_delivery_date=$7, delivered_at=$8,
	          collection_status=$9, collected_at=$10,
	          invoice_required=$11, invoice_issued=$12, contract_status=$13,
	          renewal_count=$14, last_renewed_at=$15,
	          version=version+1, updated_on=$16
	          WHERE id=$17 AND version=$18`
	res, err := r.db.ExecContext(ctx, query, rt.AmountCents, rt.ExpectedEndDate,
		rt.PaymentStatus, rt.PaymentDate, rt.PaymentDueDate,
		rt.DeliveryStatus, rt.ScheduledDeliveryDate, rt.DeliveredAt,
		rt.CollectionStatus, rt.CollectedAt,
		rt.InvoiceRequired, rt.InvoiceIssued, rt.ContractStatus,
		rt.RenewalCount, rt.LastRenewedAt,
		rt.UpdatedOn, rt.ID, rt.Version)
	if err != nil {
		return domain.WrapPersistence("update rental", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WrapPersistence("update rental", err)
	}
	if n == 0 {
		// distinguish a missing row from a stale version
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rentals WHERE id=$1)`, rt.ID).Scan(&exists); err != nil {
			return domain.WrapPersistence("update rental", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrVersionConflict
	}
	rt.Version++
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return domain.WrapPersistence("delete rental", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	return r.queryMany(ctx, `SELECT `+rentalColumns+` FROM rentals ORDER BY created_on DESC`)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.ContractStatus) ([]domain.Rental, error) {
	return r.queryMany(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE contract_status = $1 ORDER BY expected_end_date`, status)
}

func (r *rentalRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Rental, error) {
	return r.queryMany(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE client_id = $1 ORDER BY created_on DESC`, clientID)
}

func (r *rentalRepository) ListPaidByEquipment(ctx context.Context, equipmentID string) ([]domain.Rental, error) {
	return r.queryMany(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE payment_status = $1 AND $2 = ANY(equipment_ids) ORDER BY payment_date DESC NULLS LAST`,
		domain.PaymentStatusPaid, equipmentID)
}

func (r *rentalRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapPersistence("list rentals", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, domain.WrapPersistence("scan rental", err)
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}
