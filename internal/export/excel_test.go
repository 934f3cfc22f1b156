package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/farwill/travel-booking/internal/model"
)

func TestReservationsXLSX(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	list := []model.Reservation{
		{
			ID:         1,
			User:       model.UserSnapshot{ID: 7, Email: "ada@example.com"},
			Plan:       model.PlanSnapshot{Category: "4 star", Nights: 6, People: 2, Price: 75000, Total: 150000},
			PaymentRef: "PSK_123",
			Status:     model.ReservationPaid,
			CreatedAt:  created,
		},
		{
			ID:         2,
			User:       model.UserSnapshot{ID: 8, Email: "bayo@example.com"},
			Plan:       model.PlanSnapshot{Category: "3 star", Nights: 4, People: 1, Price: 40000, Total: 40000},
			PaymentRef: "PSK_456",
			Status:     model.ReservationPaid,
			CreatedAt:  created.Add(time.Hour),
		},
	}

	buf, err := ReservationsXLSX(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reservationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, reservationHeaders, rows[0])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "ada@example.com", rows[1][1])
	assert.Equal(t, "4 star", rows[1][2])
	assert.Equal(t, "PSK_123", rows[1][7])
	assert.Equal(t, "paid", rows[1][8])
	assert.Equal(t, "2026-03-14 09:30", rows[1][9])

	assert.Equal(t, "bayo@example.com", rows[2][1])
}

func TestReservationsXLSXEmpty(t *testing.T) {
	buf, err := ReservationsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reservationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}
