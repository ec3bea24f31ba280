package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/repository"
)

type rentalRepository struct {
	fs *firestore.Client
}

func newRentalRepository(fs *firestore.Client) repository.RentalRepository {
	return &rentalRepository{fs: fs}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	rt.Version = 1
	_, err := r.fs.Collection(collRentals).Doc(rt.ID).Set(ctx, rt)
	return mapErr("create rental", err)
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	snap, err := r.fs.Collection(collRentals).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get rental", err)
	}
	var rt domain.Rental
	if err := snap.DataTo(&rt); err != nil {
		return nil, domain.WrapPersistence("decode rental", err)
	}
	return &rt, nil
}

// Update runs inside a Firestore transaction: the stored version is read
// and compared before the write, so a concurrent edit from another device
// surfaces as a version conflict instead of a silent overwrite.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	ref := r.fs.Collection(collRentals).Doc(rt.ID)
	expected := rt.Version
	updatedOn := time.Now()
	// rt itself is not mutated inside the closure: Firestore may retry it.
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var stored domain.Rental
		if err := snap.DataTo(&stored); err != nil {
			return err
		}
		if stored.Version != expected {
			return domain.ErrVersionConflict
		}
		next := *rt
		next.Version = expected + 1
		next.UpdatedOn = updatedOn
		return tx.Set(ref, &next)
	})
	if err != nil {
		if err == domain.ErrVersionConflict {
			return err
		}
		return mapErr("update rental", err)
	}
	rt.Version = expected + 1
	rt.UpdatedOn = updatedOn
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	ref := r.fs.Collection(collRentals).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return mapErr("delete rental", err)
	}
	_, err := ref.Delete(ctx)
	return mapErr("delete rental", err)
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	q := r.fs.Collection(collRentals).OrderBy("created_on", firestore.Desc)
	return r.queryMany(ctx, q)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.ContractStatus) ([]domain.Rental, error) {
	q := r.fs.Collection(collRentals).Where("contract_status", "==", string(status))
	return r.queryMany(ctx, q)
}

func (r *rentalRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Rental, error) {
	q := r.fs.Collection(collRentals).Where("client_id", "==", clientID)
	return r.queryMany(ctx, q)
}

func (r *rentalRepository) ListPaidByEquipment(ctx context.Context, equipmentID string) ([]domain.Rental, error) {
	q := r.fs.Collection(collRentals).
		Where("payment_status", "==", string(domain.PaymentStatusPaid)).
		Where("equipment_ids", "array-contains", equipmentID)
	return r.queryMany(ctx, q)
}

func (r *rentalRepository) queryMany(ctx context.Context, q firestore.Query) ([]domain.Rental, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var rentals []domain.Rental
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list rentals", err)
		}
		var rt domain.Rental
		if err := snap.DataTo(&rt); err != nil {
			return nil, domain.WrapPersistence("decode rental", err)
		}
		rentals = append(rentals, rt)
	}
	return rentals, nil
}
