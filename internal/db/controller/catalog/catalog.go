// Package catalog provides read operations for the reference data
// consumed by the booking engine and the admin screens: buildings,
// floors, room types, statuses, departments, positions and rooms.
package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrInvalidParticipants is returned when a room search asks for a
	// non-positive participant count.
	ErrInvalidParticipants = errors.New("participants must be positive")
)

// Buildings retrieves all buildings ordered by name.
func Buildings(db *gorm.DB) ([]models.Building, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var buildings []models.Building
	if err := db.Order("name ASC").Find(&buildings).Error; err != nil {
		return nil, err
	}

	return buildings, nil
}

// Floors retrieves floors, optionally filtered by building (0 = all).
func Floors(db *gorm.DB, buildingID uint) ([]models.Floor, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Order("name ASC")
	if buildingID != 0 {
		tx = tx.Where("building_id = ?", buildingID)
	}

	var floors []models.Floor
	if err := tx.Find(&floors).Error; err != nil {
		return nil, err
	}

	return floors, nil
}

// RoomTypes retrieves all room types ordered by name.
func RoomTypes(db *gorm.DB) ([]models.RoomType, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var types []models.RoomType
	if err := db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}

	return types, nil
}

// RoomStatuses retrieves all room statuses.
func RoomStatuses(db *gorm.DB) ([]models.RoomStatus, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var statuses []models.RoomStatus
	if err := db.Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}

	return statuses, nil
}

// Departments retrieves all departments ordered by name.
func Departments(db *gorm.DB) ([]models.Department, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var departments []models.Department
	if err := db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}

	return departments, nil
}

// Positions retrieves all positions ordered by name.
func Positions(db *gorm.DB) ([]models.Position, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var positions []models.Position
	if err := db.Order("name ASC").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

// Menus retrieves all menus ordered by id.
func Menus(db *gorm.DB) ([]models.Menu, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var menus []models.Menu
	if err := db.Order("id ASC").Find(&menus).Error; err != nil {
		return nil, err
	}

	return menus, nil
}

// Rooms retrieves all rooms joined with their reference data, ordered by name.
func Rooms(db *gorm.DB) ([]models.Room, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rooms []models.Room

	err := db.
		Preload("Building").
		Preload("Floor").
		Preload("RoomType").
		Preload("Status").
		Order("name ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

// SearchRooms returns rooms matching the booking filters, ordered by name.
// Capacity is compared inclusively (capacity >= participants) and only
// rooms whose status is "available" are returned, regardless of the other
// filters. Building and floor are optional (0 = any).
func SearchRooms(db *gorm.DB, buildingID, floorID uint, participants int) ([]models.Room, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if participants <= 0 {
		return nil, ErrInvalidParticipants
	}

	tx := db.
		Joins("JOIN room_statuses ON room_statuses.id = rooms.status_id").
		Where("room_statuses.name = ?", models.RoomAvailable).
		Where("rooms.capacity >= ?", participants)

	if buildingID != 0 {
		tx = tx.Where("rooms.building_id = ?", buildingID)
	}

	if floorID != 0 {
		tx = tx.Where("rooms.floor_id = ?", floorID)
	}

	var rooms []models.Room

	err := tx.
		Preload("Building").
		Preload("Floor").
		Preload("Status").
		Order("rooms.name ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	return rooms, nil
}
