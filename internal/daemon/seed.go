package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/config"
	"github.com/mut-reserve/mutreserve/internal/db/models"
)

// adminSSN is the person key of the seeded administrator account.
const adminSSN = "0000000000000"

// seed provisions the reference data and the administrator account on an
// empty database. Every step is idempotent; restarting never duplicates
// rows. The seeded administrator is the only bootstrap account; there is
// no hardcoded login bypass.
func seed(cfg *config.Config, db *gorm.DB) error {
	for _, name := range []string{models.EmploymentActive, models.EmploymentInactive} {
		status := models.EmploymentStatus{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&status).Error; err != nil {
			return errors.Wrap(err, "seed employment statuses")
		}
	}

	for _, name := range []string{models.RoomAvailable, models.RoomUnavailable} {
		status := models.RoomStatus{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&status).Error; err != nil {
			return errors.Wrap(err, "seed room statuses")
		}
	}

	menus := []models.Menu{
		{Slug: models.MenuHome, Name: "Home"},
		{Slug: models.MenuBooking, Name: "Book a Room"},
		{Slug: models.MenuHistory, Name: "Booking History"},
		{Slug: models.MenuCancel, Name: "Cancel Booking"},
		{Slug: models.MenuRooms, Name: "Manage Rooms"},
		{Slug: models.MenuMembers, Name: "Manage Members"},
		{Slug: models.MenuPermissions, Name: "Manage Permissions"},
		{Slug: models.MenuContact, Name: "Contact"},
		{Slug: models.MenuAbout, Name: "About"},
	}
	for i := range menus {
		if err := db.Where("slug = ?", menus[i].Slug).FirstOrCreate(&menus[i]).Error; err != nil {
			return errors.Wrap(err, "seed menus")
		}
	}

	return seedAdmin(cfg, db)
}

// seedAdmin creates the administrator department, position, account and
// its full menu grant set when the employee table is empty.
func seedAdmin(cfg *config.Config, db *gorm.DB) error {
	department := models.Department{Name: "Administration"}
	if err := db.Where("name = ?", department.Name).FirstOrCreate(&department).Error; err != nil {
		return errors.Wrap(err, "seed admin department")
	}

	position := models.Position{Name: "Administrator"}
	if err := db.Where("name = ?", position.Name).FirstOrCreate(&position).Error; err != nil {
		return errors.Wrap(err, "seed admin position")
	}

	// The administrator position holds every menu.
	var menus []models.Menu
	if err := db.Find(&menus).Error; err != nil {
		return errors.Wrap(err, "load menus")
	}

	for _, menu := range menus {
		grant := models.AccessGrant{PositionID: position.ID, MenuID: menu.ID}
		err := db.Where("position_id = ? AND menu_id = ?", position.ID, menu.ID).
			FirstOrCreate(&grant).Error
		if err != nil {
			return errors.Wrap(err, "seed admin grants")
		}
	}

	var count int64
	if err := db.Model(&models.Employee{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count employees")
	}

	if count > 0 {
		return nil
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("employee table is empty and no seed admin is configured; nobody can log in")

		return nil
	}

	var active models.EmploymentStatus
	if err := db.Where("name = ?", models.EmploymentActive).First(&active).Error; err != nil {
		return errors.Wrap(err, "load active employment status")
	}

	admin := models.Employee{
		SSN:          adminSSN,
		FirstName:    "System",
		LastName:     "Administrator",
		Email:        cfg.Seed.AdminEmail,
		Password:     models.HashPassword(cfg.Seed.AdminPassword),
		DepartmentID: department.ID,
		PositionID:   position.ID,
		StatusID:     active.ID,
	}

	if err := db.Create(&admin).Error; err != nil {
		return errors.Wrap(err, "seed admin employee")
	}

	log.Info().Str("email", admin.Email).Msg("seeded administrator account")

	return nil
}
