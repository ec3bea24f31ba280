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

type equipmentRepository struct {
	fs *firestore.Client
}

func newEquipmentRepository(fs *firestore.Client) repository.EquipmentRepository {
	return &equipmentRepository{fs: fs}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	if eq.ID == "" {
		eq.ID = uuid.New().String()
	}
	now := time.Now()
	eq.CreatedOn = now
	eq.UpdatedOn = now
	_, err := r.fs.Collection(collEquipment).Doc(eq.ID).Set(ctx, eq)
	return mapErr("create equipment", err)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	snap, err := r.fs.Collection(collEquipment).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get equipment", err)
	}
	var eq domain.Equipment
	if err := snap.DataTo(&eq); err != nil {
		return nil, domain.WrapPersistence("decode equipment", err)
	}
	return &eq, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	eq.UpdatedOn = time.Now()
	ref := r.fs.Collection(collEquipment).Doc(eq.ID)
	if _, err := ref.Get(ctx); err != nil {
		return mapErr("update equipment", err)
	}
	_, err := ref.Set(ctx, eq)
	return mapErr("update equipment", err)
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	ref := r.fs.Collection(collEquipment).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return mapErr("delete equipment", err)
	}
	_, err := ref.Delete(ctx)
	return mapErr("delete equipment", err)
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	iter := r.fs.Collection(collEquipment).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var items []domain.Equipment
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list equipment", err)
		}
		var eq domain.Equipment
		if err := snap.DataTo(&eq); err != nil {
			return nil, domain.WrapPersistence("decode equipment", err)
		}
		items = append(items, eq)
	}
	return items, nil
}
