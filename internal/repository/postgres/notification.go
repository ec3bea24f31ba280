package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedOn = time.Now()

	query := `INSERT INTO notifications (id, kind, title, message, rental_id, read, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.Kind, n.Title, n.Message, n.RentalID, n.Read, n.CreatedOn)
	return domain.WrapPersistence("create notification", err)
}

func (r *notificationRepository) List(ctx context.Context, limit int32) ([]domain.Notification, error) {
	query := `SELECT id, kind, title, message, rental_id, read, created_on
	          FROM notifications ORDER BY created_on DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, domain.WrapPersistence("list notifications", err)
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Title, &n.Message, &n.RentalID, &n.Read, &n.CreatedOn); err != nil {
			return nil, domain.WrapPersistence("scan notification", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return domain.WrapPersistence("mark notification read", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
