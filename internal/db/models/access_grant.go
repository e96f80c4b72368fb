package models

import "time"

// AccessGrant pairs a position (role) with a menu, meaning "this role may
// see and use this feature". The composite identity is (position, menu),
// enforced by a unique index; the surrogate ID is allocated by the
// database sequence so concurrent grants can never collide.
type AccessGrant struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	PositionID uint     `gorm:"not null;uniqueIndex:idx_position_menu" json:"position_id"`
	Position   Position `gorm:"foreignKey:PositionID;constraint:OnDelete:CASCADE" json:"position,omitempty"`
	MenuID     uint     `gorm:"not null;uniqueIndex:idx_position_menu" json:"menu_id"`
	Menu       Menu     `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"menu,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the database table name for the AccessGrant model.
func (AccessGrant) TableName() string {
	return "access_grants"
}
