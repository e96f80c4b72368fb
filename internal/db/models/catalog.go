package models

// Catalog reference tables: read-mostly key/display-name projections that
// rooms, employees and reservations point at. Owned by the admin subsystem.

// Department groups employees organizationally.
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;size:100;not null" json:"name"`
}

// TableName specifies the database table name for the Department model.
func (Department) TableName() string {
	return "departments"
}

// Position is an employee's job position. It doubles as the role in the
// access-menu authorization model: grants are keyed by position.
type Position struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;size:100;not null" json:"name"`
}

// TableName specifies the database table name for the Position model.
func (Position) TableName() string {
	return "positions"
}

// EmploymentStatus names an employee lifecycle state.
type EmploymentStatus struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;size:50;not null" json:"name"`
}

// TableName specifies the database table name for the EmploymentStatus model.
func (EmploymentStatus) TableName() string {
	return "employment_statuses"
}

// Well-known employment status names seeded at provisioning time.
const (
	EmploymentActive   = "active"
	EmploymentInactive = "inactive"
)

// Building is a physical building containing floors and rooms.
type Building struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;size:100;not null" json:"name"`
}

// TableName specifies the database table name for the Building model.
func (Building) TableName() string {
	return "buildings"
}

// Floor is a floor of a building.
type Floor struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"size:100;not null" json:"name"`
	BuildingID uint     `gorm:"not null;index" json:"building_id"`
	Building   Building `gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE" json:"building,omitempty"`
}

// TableName specifies the database table name for the Floor model.
func (Floor) TableName() string {
	return "floors"
}

// RoomType classifies a room (meeting room, lecture hall, ...).
type RoomType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;size:100;not null" json:"name"`
}

// TableName specifies the database table name for the RoomType model.
func (RoomType) TableName() string {
	return "room_types"
}

// RoomStatus names a room availability state.
type RoomStatus struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;size:50;not null" json:"name"`
}

// TableName specifies the database table name for the RoomStatus model.
func (RoomStatus) TableName() string {
	return "room_statuses"
}

// Well-known room status names. Room search only ever returns rooms whose
// status is RoomAvailable.
const (
	RoomAvailable   = "available"
	RoomUnavailable = "unavailable"
)
