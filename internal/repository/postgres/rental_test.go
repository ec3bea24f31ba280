package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locagest-backend/internal/domain"
)

func testRental() *domain.Rental {
	return &domain.Rental{
		ID:               "r-1",
		ClientID:         "c-1",
		EquipmentIDs:     []string{"e-1"},
		AmountCents:      50000,
		Period:           domain.PeriodMonthly,
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpectedEndDate:  time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		PaymentStatus:    domain.PaymentStatusPending,
		DeliveryStatus:   domain.DeliveryStatusNotScheduled,
		CollectionStatus: domain.CollectionStatusNotCollected,
		ContractStatus:   domain.ContractStatusActive,
		Version:          1,
	}
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	rt := testRental()
	rt.ID = ""

	mock.ExpectExec("INSERT INTO rentals").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), rt))
	assert.NotEmpty(t, rt.ID, "create assigns an id")
	assert.Equal(t, int64(1), rt.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Update(t *testing.T) {
	t.Run("bumps the version on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRentalRepository(db)
		rt := testRental()

		mock.ExpectExec("UPDATE rentals SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), rt))
		assert.Equal(t, int64(2), rt.Version)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version yields a conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRentalRepository(db)
		rt := testRental()

		mock.ExpectExec("UPDATE rentals SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = repo.Update(context.Background(), rt)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
		assert.Equal(t, int64(1), rt.Version, "version untouched on conflict")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row yields not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRentalRepository(db)
		rt := testRental()

		mock.ExpectExec("UPDATE rentals SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err = repo.Update(context.Background(), rt)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)

	mock.ExpectExec("DELETE FROM rentals WHERE id").
		WithArgs("r-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "r-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
