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

type receivableRepository struct {
	fs *firestore.Client
}

func newReceivableRepository(fs *firestore.Client) repository.ReceivableRepository {
	return &receivableRepository{fs: fs}
}

func (r *receivableRepository) Create(ctx context.Context, rc *domain.Receivable) error {
	if rc.ID == "" {
		rc.ID = uuid.New().String()
	}
	rc.CreatedOn = time.Now()
	_, err := r.fs.Collection(collReceivables).Doc(rc.ID).Set(ctx, rc)
	return mapErr("create receivable", err)
}

func (r *receivableRepository) Update(ctx context.Context, rc *domain.Receivable) error {
	ref := r.fs.Collection(collReceivables).Doc(rc.ID)
	if _, err := ref.Get(ctx); err != nil {
		return mapErr("update receivable", err)
	}
	_, err := ref.Set(ctx, rc)
	return mapErr("update receivable", err)
}

func (r *receivableRepository) ListByRental(ctx context.Context, rentalID string) ([]domain.Receivable, error) {
	iter := r.fs.Collection(collReceivables).
		Where("rental_id", "==", rentalID).
		OrderBy("renewal_number", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var items []domain.Receivable
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list receivables", err)
		}
		var rc domain.Receivable
		if err := snap.DataTo(&rc); err != nil {
			return nil, domain.WrapPersistence("decode receivable", err)
		}
		items = append(items, rc)
	}
	return items, nil
}

// DeleteByRental removes the rental's receivables in a single batch, the
// cascade that accompanies rental deletion.
func (r *receivableRepository) DeleteByRental(ctx context.Context, rentalID string) error {
	iter := r.fs.Collection(collReceivables).Where("rental_id", "==", rentalID).Documents(ctx)
	defer iter.Stop()

	bw := r.fs.BulkWriter(ctx)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return mapErr("delete receivables", err)
		}
		if _, err := bw.Delete(snap.Ref); err != nil {
			return mapErr("delete receivables", err)
		}
	}
	bw.End()
	return nil
}
