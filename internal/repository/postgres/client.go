package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now

	query := `INSERT INTO clients (id, name, tax_id, phone, email, address, requires_invoice, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.TaxID, c.Phone, c.Email, c.Address, c.RequiresInvoice, c.CreatedOn, c.UpdatedOn)
	return domain.WrapPersistence("create client", err)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, name, tax_id, phone, email, address, requires_invoice, created_on, updated_on FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.Email, &c.Address, &c.RequiresInvoice, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.WrapPersistence("get client", err)
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedOn = time.Now()
	query := `UPDATE clients SET name=$1, tax_id=$2, phone=$3, email=$4, address=$5, requires_invoice=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.TaxID, c.Phone, c.Email, c.Address, c.RequiresInvoice, c.UpdatedOn, c.ID)
	if err != nil {
		return domain.WrapPersistence("update client", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return domain.WrapPersistence("delete client", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT id, name, tax_id, phone, email, address, requires_invoice, created_on, updated_on FROM clients ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.WrapPersistence("list clients", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.Email, &c.Address, &c.RequiresInvoice, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, domain.WrapPersistence("scan client", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
