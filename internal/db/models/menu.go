package models

// Menu identifies a dashboard feature area that can be granted to a
// position. The slug is the stable identifier routes are gated on; the
// name is the display label.
type Menu struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"unique;size:50;not null" json:"slug"`
	Name string `gorm:"size:100;not null" json:"name"`
}

// TableName specifies the database table name for the Menu model.
func (Menu) TableName() string {
	return "menus"
}

// Menu slugs seeded at provisioning time, one per dashboard section.
const (
	MenuHome        = "home"
	MenuBooking     = "booking"
	MenuHistory     = "history"
	MenuCancel      = "cancel"
	MenuRooms       = "rooms"
	MenuMembers     = "members"
	MenuPermissions = "permissions"
	MenuContact     = "contact"
	MenuAbout       = "about"
)
