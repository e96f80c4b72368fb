package models

import "time"

// Room is a bookable meeting room.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the display name, e.g. "101".
	Name string `gorm:"size:100;not null" json:"name"`
	// BuildingID and FloorID locate the room.
	BuildingID uint     `gorm:"not null;index" json:"building_id"`
	Building   Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	FloorID    uint     `gorm:"not null;index" json:"floor_id"`
	Floor      Floor    `gorm:"foreignKey:FloorID" json:"floor,omitempty"`
	// RoomTypeID classifies the room.
	RoomTypeID uint     `gorm:"not null" json:"room_type_id"`
	RoomType   RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
	// StatusID references the availability status.
	StatusID uint       `gorm:"not null" json:"status_id"`
	Status   RoomStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	// Capacity is the seat count. Must be positive.
	Capacity int `gorm:"not null;check:capacity > 0" json:"capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Room model.
func (Room) TableName() string {
	return "rooms"
}
