// Package firestore implements the repositories over Google Cloud
// Firestore, the store the mobile product runs against in production. The
// PostgreSQL implementation is the self-hosted alternative; both satisfy the
// same interfaces and are selected by configuration.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/repository"
)

const (
	collClients       = "clients"
	collEquipment     = "equipment"
	collRentals       = "rentals"
	collReceivables   = "receivables"
	collNotifications = "notifications"
)

// Store bundles the Firestore implementations of every repository.
type Store struct {
	ClientRepository       repository.ClientRepository
	EquipmentRepository    repository.EquipmentRepository
	RentalRepository       repository.RentalRepository
	ReceivableRepository   repository.ReceivableRepository
	NotificationRepository repository.NotificationRepository

	client *firestore.Client
}

// NewClient connects to Firestore through the Firebase SDK. credentialsFile
// may be empty, in which case application-default credentials apply.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}
	return client, nil
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		ClientRepository:       newClientRepository(client),
		EquipmentRepository:    newEquipmentRepository(client),
		RentalRepository:       newRentalRepository(client),
		ReceivableRepository:   newReceivableRepository(client),
		NotificationRepository: newNotificationRepository(client),
		client:                 client,
	}
}

func (s *Store) Close() error { return s.client.Close() }

// mapErr converts the gRPC status codes Firestore reports into domain
// errors so callers never see transport details.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return domain.WrapPersistence(op, err)
}
