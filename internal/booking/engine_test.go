package booking

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	// a second pooled connection would see its own empty in-memory db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Department{},
		&models.Position{},
		&models.EmploymentStatus{},
		&models.Building{},
		&models.Floor{},
		&models.RoomType{},
		&models.RoomStatus{},
		&models.Employee{},
		&models.Room{},
		&models.Reservation{},
		&models.CancellationRecord{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

type fixtures struct {
	room     models.Room
	reserver models.Employee
	other    models.Employee
}

func seedBookingFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	building := models.Building{Name: "D Building"}
	require.NoError(t, db.Create(&building).Error)

	floor := models.Floor{Name: "4", BuildingID: building.ID}
	require.NoError(t, db.Create(&floor).Error)

	roomType := models.RoomType{Name: "Meeting Room"}
	require.NoError(t, db.Create(&roomType).Error)

	available := models.RoomStatus{Name: models.RoomAvailable}
	require.NoError(t, db.Create(&available).Error)

	room := models.Room{
		Name:       "D401",
		BuildingID: building.ID,
		FloorID:    floor.ID,
		RoomTypeID: roomType.ID,
		StatusID:   available.ID,
		Capacity:   8,
	}
	require.NoError(t, db.Create(&room).Error)

	department := models.Department{Name: "Engineering"}
	require.NoError(t, db.Create(&department).Error)

	position := models.Position{Name: "Lecturer"}
	require.NoError(t, db.Create(&position).Error)

	active := models.EmploymentStatus{Name: models.EmploymentActive}
	require.NoError(t, db.Create(&active).Error)

	reserver := models.Employee{
		SSN:          "1103700000001",
		FirstName:    "Ada",
		LastName:     "Param",
		Email:        "ada@example.com",
		DepartmentID: department.ID,
		PositionID:   position.ID,
		StatusID:     active.ID,
	}
	require.NoError(t, db.Create(&reserver).Error)

	other := models.Employee{
		SSN:          "1103700000002",
		FirstName:    "Brin",
		LastName:     "Ordin",
		Email:        "brin@example.com",
		DepartmentID: department.ID,
		PositionID:   position.ID,
		StatusID:     active.ID,
	}
	require.NoError(t, db.Create(&other).Error)

	return fixtures{room: room, reserver: reserver, other: other}
}

func window(day time.Time, startHour, endHour int) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.Local)
	end := time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, time.Local)

	return start, end
}

func bookingDay() time.Time {
	return time.Date(2026, time.September, 14, 0, 0, 0, 0, time.Local)
}

func TestCreateReservation(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 9, 11)

	r1, err := e.Create(CreateRequest{
		BookingDate: day,
		StartTime:   start,
		EndTime:     end,
		RoomID:      f.room.ID,
		ReserverSSN: f.reserver.SSN,
	})
	require.NoError(t, err)

	assert.NotZero(t, r1.ID)
	assert.Equal(t, models.StatusBooked, r1.Status)
	assert.Len(t, r1.AccessToken, 24)
	assert.Equal(t, "D401", r1.Room.Name)
	assert.Equal(t, f.reserver.SSN, r1.Reserver.SSN)

	// a later window on the same room gets a distinct id and token
	start2, end2 := window(day, 14, 15)
	r2, err := e.Create(CreateRequest{
		BookingDate: day,
		StartTime:   start2,
		EndTime:     end2,
		RoomID:      f.room.ID,
		ReserverSSN: f.reserver.SSN,
	})
	require.NoError(t, err)

	assert.NotEqual(t, r1.ID, r2.ID)
	assert.NotEqual(t, r1.AccessToken, r2.AccessToken)
}

func TestCreateRejectsInvalidWindow(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 11, 9) // end before start

	_, err := e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)

	// zero-length window
	_, err = e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: start,
		RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)

	// window crossing midnight
	start, _ = window(day, 23, 23)
	end = start.Add(2 * time.Hour)
	_, err = e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestCreateRejectsUnknownRoomAndReserver(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 9, 10)

	_, err := e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: 999, ReserverSSN: f.reserver.SSN,
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: "nobody",
	})
	assert.ErrorIs(t, err, ErrReserverNotFound)
}

func TestCreateRejectsOverlap(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 9, 11)

	_, err := e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
	})
	require.NoError(t, err)

	overlaps := []struct {
		name       string
		start, end time.Time
	}{
		{"identical window", start, end},
		{"starts inside", start.Add(time.Hour), end.Add(time.Hour)},
		{"ends inside", start.Add(-time.Hour), end.Add(-time.Hour)},
		{"contains", start.Add(-time.Hour), end.Add(time.Hour)},
		{"contained", start.Add(30 * time.Minute), end.Add(-30 * time.Minute)},
	}

	for _, tc := range overlaps {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Create(CreateRequest{
				BookingDate: day, StartTime: tc.start, EndTime: tc.end,
				RoomID: f.room.ID, ReserverSSN: f.other.SSN,
			})
			assert.ErrorIs(t, err, ErrRoomTimeConflict)
		})
	}

	// back to back is not an overlap: [9,11) then [11,12)
	start2, end2 := window(day, 11, 12)
	_, err = e.Create(CreateRequest{
		BookingDate: day, StartTime: start2, EndTime: end2,
		RoomID: f.room.ID, ReserverSSN: f.other.SSN,
	})
	assert.NoError(t, err)
}

func TestCreateOverlapAllowedAfterCancel(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 9, 11)

	r, err := e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
	})
	require.NoError(t, err)

	require.NoError(t, e.CancelAsOwner(r.ID, f.reserver.SSN, ""))

	// cancelled reservations do not block the window
	_, err = e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: f.other.SSN,
	})
	assert.NoError(t, err)
}

func TestConcurrentOverlappingCreates(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 9, 11)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := e.Create(CreateRequest{
				BookingDate: day, StartTime: start, EndTime: end,
				RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one of the racing bookings may win")
}

func TestCancelAsOwner(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 9, 11)

	r, err := e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
	})
	require.NoError(t, err)

	// someone else's reservation looks like it does not exist
	err = e.CancelAsOwner(r.ID, f.other.SSN, "")
	assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)

	require.NoError(t, e.CancelAsOwner(r.ID, f.reserver.SSN, ""))

	var reloaded models.Reservation
	require.NoError(t, db.First(&reloaded, r.ID).Error)
	assert.Equal(t, models.StatusCancelled, reloaded.Status)

	var record models.CancellationRecord
	require.NoError(t, db.Where("reservation_id = ?", r.ID).First(&record).Error)
	assert.Equal(t, DefaultCancelReason, record.Reason)
	assert.Equal(t, f.reserver.SSN, record.ActorSSN)

	// cancelling twice fails: the first cancel consumed the reservation
	err = e.CancelAsOwner(r.ID, f.reserver.SSN, "")
	assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)

	var records int64
	require.NoError(t, db.Model(&models.CancellationRecord{}).
		Where("reservation_id = ?", r.ID).Count(&records).Error)
	assert.EqualValues(t, 1, records, "exactly one audit record per cancellation")
}

func TestCancelAsAdmin(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 9, 11)

	r, err := e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
	})
	require.NoError(t, err)

	// wrong room does not match
	err = e.CancelAsAdmin(r.ID, f.room.ID+1, f.other.SSN)
	assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)

	// no ownership check: another employee's admin cancel succeeds
	require.NoError(t, e.CancelAsAdmin(r.ID, f.room.ID, f.other.SSN))

	var record models.CancellationRecord
	require.NoError(t, db.Where("reservation_id = ?", r.ID).First(&record).Error)
	assert.Equal(t, f.other.SSN, record.ActorSSN)
	assert.Contains(t, record.Reason, "administrator")
}

func TestListOrdering(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day1 := bookingDay()
	day2 := day1.AddDate(0, 0, 1)

	for _, w := range []struct {
		day        time.Time
		start, end int
	}{
		{day1, 9, 10},
		{day2, 8, 9},
		{day1, 14, 15},
	} {
		start, end := window(w.day, w.start, w.end)
		_, err := e.Create(CreateRequest{
			BookingDate: w.day, StartTime: start, EndTime: end,
			RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
		})
		require.NoError(t, err)
	}

	mine, err := e.ListForReserver(f.reserver.SSN)
	require.NoError(t, err)
	require.Len(t, mine, 3)

	// most recent booking day first, later start first within a day
	assert.True(t, mine[0].BookingDate.After(mine[1].BookingDate))
	assert.True(t, mine[1].StartTime.After(mine[2].StartTime))

	all, err := e.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, f.reserver.SSN, all[0].Reserver.SSN)

	none, err := e.ListForReserver(f.other.SSN)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQRPayload(t *testing.T) {
	db := setupTestDB(t)
	f := seedBookingFixtures(t, db)
	e := NewEngine(db)

	day := bookingDay()
	start, end := window(day, 9, 11)

	r, err := e.Create(CreateRequest{
		BookingDate: day, StartTime: start, EndTime: end,
		RoomID: f.room.ID, ReserverSSN: f.reserver.SSN,
	})
	require.NoError(t, err)

	payload := QRPayload(r)
	assert.True(t, strings.HasPrefix(payload, "RESERVATION|"))
	assert.Contains(t, payload, "2026-09-14")
	assert.Contains(t, payload, "09:00-11:00")
	assert.Contains(t, payload, r.AccessToken)
}
