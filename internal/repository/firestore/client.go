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

type clientRepository struct {
	fs *firestore.Client
}

func newClientRepository(fs *firestore.Client) repository.ClientRepository {
	return &clientRepository{fs: fs}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	_, err := r.fs.Collection(collClients).Doc(c.ID).Set(ctx, c)
	return mapErr("create client", err)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	snap, err := r.fs.Collection(collClients).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get client", err)
	}
	var c domain.Client
	if err := snap.DataTo(&c); err != nil {
		return nil, domain.WrapPersistence("decode client", err)
	}
	return &c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedOn = time.Now()
	ref := r.fs.Collection(collClients).Doc(c.ID)
	if _, err := ref.Get(ctx); err != nil {
		return mapErr("update client", err)
	}
	_, err := ref.Set(ctx, c)
	return mapErr("update client", err)
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	ref := r.fs.Collection(collClients).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return mapErr("delete client", err)
	}
	_, err := ref.Delete(ctx)
	return mapErr("delete client", err)
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	iter := r.fs.Collection(collClients).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var clients []domain.Client
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list clients", err)
		}
		var c domain.Client
		if err := snap.DataTo(&c); err != nil {
			return nil, domain.WrapPersistence("decode client", err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}
