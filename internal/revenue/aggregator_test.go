package revenue

import (
	"testing"
	"time"

	"locagest-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidRental(amount int64, paidAt *time.Time, expectedEnd time.Time) domain.Rental {
	return domain.Rental{
		AmountCents:     amount,
		PaymentStatus:   domain.PaymentStatusPaid,
		PaymentDate:     paidAt,
		ExpectedEndDate: expectedEnd,
	}
}

func tptr(t time.Time) *time.Time { return &t }

func TestTotalRevenueCents(t *testing.T) {
	end := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sums amounts", func(t *testing.T) {
		records := []domain.Rental{
			paidRental(50000, nil, end),
			paidRental(60000, nil, end),
		}
		assert.Equal(t, int64(110000), TotalRevenueCents(records))
	})

	t.Run("empty input yields zero", func(t *testing.T) {
		assert.Equal(t, int64(0), TotalRevenueCents(nil))
	})
}

func TestEffectiveDate(t *testing.T) {
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	paid := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, paid, EffectiveDate(paidRental(1, tptr(paid), end)))
	// records without a recorded payment date fall back to the expected end
	assert.Equal(t, end, EffectiveDate(paidRental(1, nil, end)))
}

func TestAvailableMonths(t *testing.T) {
	records := []domain.Rental{
		paidRental(1, tptr(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)), time.Time{}),
		paidRental(1, tptr(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)), time.Time{}),
		paidRental(1, tptr(time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)), time.Time{}),
		paidRental(1, nil, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
	}

	months := AvailableMonths(records)
	require.Len(t, months, 3)
	assert.Equal(t, MonthYear{time.May, 2024}, months[0])
	assert.Equal(t, MonthYear{time.March, 2024}, months[1])
	assert.Equal(t, MonthYear{time.December, 2023}, months[2])
}

func TestFilterByMonth(t *testing.T) {
	march := paidRental(100, tptr(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)), time.Time{})
	may := paidRental(200, tptr(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)), time.Time{})
	marchLastYear := paidRental(300, nil, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC))
	records := []domain.Rental{march, may, marchLastYear}

	t.Run("nil filters keep everything", func(t *testing.T) {
		assert.Len(t, FilterByMonth(records, nil, nil), 3)
	})

	t.Run("month and year", func(t *testing.T) {
		m, y := time.March, 2024
		filtered := FilterByMonth(records, &m, &y)
		require.Len(t, filtered, 1)
		assert.Equal(t, int64(100), filtered[0].AmountCents)
	})

	t.Run("month across years", func(t *testing.T) {
		m := time.March
		assert.Len(t, FilterByMonth(records, &m, nil), 2)
	})

	t.Run("uses the expected-end fallback for undated payments", func(t *testing.T) {
		y := 2023
		filtered := FilterByMonth(records, nil, &y)
		require.Len(t, filtered, 1)
		assert.Equal(t, int64(300), filtered[0].AmountCents)
	})
}

func TestProfitCents(t *testing.T) {
	cost := int64(30000)

	t.Run("revenue minus cost", func(t *testing.T) {
		records := []domain.Rental{
			paidRental(50000, nil, time.Time{}),
			paidRental(60000, nil, time.Time{}),
		}
		total := TotalRevenueCents(records)
		assert.Equal(t, int64(110000), total)
		assert.Equal(t, int64(80000), ProfitCents(total, &cost))
	})

	t.Run("nil cost counts as zero", func(t *testing.T) {
		assert.Equal(t, int64(500), ProfitCents(500, nil))
	})

	t.Run("can be negative", func(t *testing.T) {
		assert.Equal(t, int64(-30000), ProfitCents(0, &cost))
	})
}
