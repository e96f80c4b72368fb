package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mut-reserve/mutreserve/internal/db/models"
)

func TestDeriveDisplayStatus(t *testing.T) {
	day := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.Local)
	start := day.Add(9 * time.Hour)
	end := day.Add(11 * time.Hour)

	reservation := func(status models.BookingStatus) *models.Reservation {
		return &models.Reservation{
			BookingDate: day,
			StartTime:   start,
			EndTime:     end,
			Status:      status,
		}
	}

	testCases := []struct {
		name     string
		status   models.BookingStatus
		now      time.Time
		expected DisplayStatus
	}{
		{"cancelled wins over time", models.StatusCancelled, start.Add(time.Minute), DisplayCancelled},
		{"cancelled before start", models.StatusCancelled, start.Add(-time.Hour), DisplayCancelled},
		{"before start", models.StatusBooked, start.Add(-time.Minute), DisplayUpcoming},
		{"day before", models.StatusBooked, start.AddDate(0, 0, -1), DisplayUpcoming},
		{"at start", models.StatusBooked, start, DisplayInUse},
		{"within grace", models.StatusBooked, start.Add(CheckInGrace - time.Minute), DisplayInUse},
		{"grace elapsed", models.StatusBooked, start.Add(CheckInGrace), DisplayNoShow},
		{"late in window", models.StatusBooked, end.Add(-time.Minute), DisplayNoShow},
		{"at end", models.StatusBooked, end, DisplayNoShow},
		{"after end", models.StatusBooked, end.Add(time.Second), DisplayCompleted},
		{"day after", models.StatusBooked, end.AddDate(0, 0, 1), DisplayCompleted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveDisplayStatus(reservation(tc.status), tc.now)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestEngineDisplayStatusUsesClock(t *testing.T) {
	db := setupTestDB(t)
	e := NewEngine(db)

	day := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.Local)
	r := &models.Reservation{
		BookingDate: day,
		StartTime:   day.Add(9 * time.Hour),
		EndTime:     day.Add(11 * time.Hour),
		Status:      models.StatusBooked,
	}

	e.WithClock(func() time.Time { return day.Add(8 * time.Hour) })
	assert.Equal(t, DisplayUpcoming, e.DisplayStatus(r))

	e.WithClock(func() time.Time { return day.Add(12 * time.Hour) })
	assert.Equal(t, DisplayCompleted, e.DisplayStatus(r))
}
