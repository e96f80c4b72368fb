package booking

import (
	"fmt"

	"github.com/mut-reserve/mutreserve/internal/db/models"
	"github.com/mut-reserve/mutreserve/internal/uniuri"
)

// NewAccessToken returns the opaque token stored on a reservation at
// creation time.
func NewAccessToken() string {
	return uniuri.NewLen(uniuri.TokenLen)
}

// QRPayload builds the string rendered as a scannable code for a
// reservation. It is a plain concatenation of the booking fields with no
// integrity protection; treat it as a display convenience, not a
// credential.
func QRPayload(r *models.Reservation) string {
	return fmt.Sprintf("RESERVATION|%d|%s|%s-%s|room=%d|%s",
		r.ID,
		r.BookingDate.Format("2006-01-02"),
		r.StartTime.Format("15:04"),
		r.EndTime.Format("15:04"),
		r.RoomID,
		r.AccessToken,
	)
}
