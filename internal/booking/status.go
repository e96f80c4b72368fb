package booking

import (
	"time"

	"github.com/mut-reserve/mutreserve/internal/db/models"
)

// DisplayStatus is the status shown to users. It is derived from the
// stored status and the clock at read time and never persisted.
type DisplayStatus string

// Display statuses.
const (
	DisplayCancelled DisplayStatus = "cancelled"
	DisplayCompleted DisplayStatus = "completed"
	DisplayUpcoming  DisplayStatus = "upcoming"
	DisplayInUse     DisplayStatus = "inuse"
	DisplayNoShow    DisplayStatus = "noshow"
)

// CheckInGrace is how long after the start a booking is still considered
// in use before it counts as a no-show.
const CheckInGrace = 30 * time.Minute

// DeriveDisplayStatus derives the user-facing status for a reservation at
// the given instant:
//
//	cancelled                      -> cancelled
//	now > end                      -> completed
//	now < start                    -> upcoming
//	now < start + CheckInGrace     -> inuse
//	otherwise                      -> noshow
func DeriveDisplayStatus(r *models.Reservation, now time.Time) DisplayStatus {
	if r.Status == models.StatusCancelled {
		return DisplayCancelled
	}

	switch {
	case now.After(r.EndTime):
		return DisplayCompleted
	case now.Before(r.StartTime):
		return DisplayUpcoming
	case now.Before(r.StartTime.Add(CheckInGrace)):
		return DisplayInUse
	default:
		return DisplayNoShow
	}
}
