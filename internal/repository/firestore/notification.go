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

type notificationRepository struct {
	fs *firestore.Client
}

func newNotificationRepository(fs *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{fs: fs}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedOn = time.Now()
	_, err := r.fs.Collection(collNotifications).Doc(n.ID).Set(ctx, n)
	return mapErr("create notification", err)
}

func (r *notificationRepository) List(ctx context.Context, limit int32) ([]domain.Notification, error) {
	iter := r.fs.Collection(collNotifications).
		OrderBy("created_on", firestore.Desc).
		Limit(int(limit)).
		Documents(ctx)
	defer iter.Stop()

	var notes []domain.Notification
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list notifications", err)
		}
		var n domain.Notification
		if err := snap.DataTo(&n); err != nil {
			return nil, domain.WrapPersistence("decode notification", err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	ref := r.fs.Collection(collNotifications).Doc(id)
	_, err := ref.Update(ctx, []firestore.Update{{Path: "read", Value: true}})
	return mapErr("mark notification read", err)
}
