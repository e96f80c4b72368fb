package auth

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/mut-reserve/mutreserve/internal/db/models"
)

// Resolver maps positions (roles) to the set of menus they may use.
// Results are cached per position; every grant mutation invalidates the
// affected position so a stale grant set can never outlive a change.
type Resolver struct {
	db *gorm.DB

	mu    sync.RWMutex
	cache map[uint][]string // position id -> sorted menu slugs
	gen   map[uint]uint64   // bumped by invalidate; guards in-flight loads
}

// NewResolver creates a new access resolver.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{
		db:    db,
		cache: make(map[uint][]string),
		gen:   make(map[uint]uint64),
	}
}

// GrantsFor returns the sorted menu slugs granted to the position.
func (r *Resolver) GrantsFor(positionID uint) ([]string, error) {
	r.mu.RLock()
	cached, ok := r.cache[positionID]
	gen := r.gen[positionID]
	r.mu.RUnlock()

	if ok {
		out := make([]string, len(cached))
		copy(out, cached)

		return out, nil
	}

	var slugs []string

	err := r.db.Table("menus").
		Select("menus.slug").
		Joins("JOIN access_grants ON access_grants.menu_id = menus.id").
		Where("access_grants.position_id = ?", positionID).
		Pluck("menus.slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load grants: %w", err)
	}

	sort.Strings(slugs)

	r.store(positionID, gen, slugs)

	out := make([]string, len(slugs))
	copy(out, slugs)

	return out, nil
}

// IsPermitted checks whether the position is granted the menu slug.
func (r *Resolver) IsPermitted(positionID uint, menuSlug string) (bool, error) {
	slugs, err := r.GrantsFor(positionID)
	if err != nil {
		return false, err
	}

	for _, s := range slugs {
		if s == menuSlug {
			return true, nil
		}
	}

	return false, nil
}

// Grant adds an access grant for the (position, menu) pair. The surrogate
// id comes from the database sequence; the unique index on the pair makes
// concurrent duplicate grants impossible.
func (r *Resolver) Grant(positionID, menuID uint) (*models.AccessGrant, error) {
	if positionID == 0 {
		return nil, ErrPositionRequired
	}

	if menuID == 0 {
		return nil, ErrMenuRequired
	}

	grant := models.AccessGrant{
		PositionID: positionID,
		MenuID:     menuID,
	}

	if err := r.db.Create(&grant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGrantExists
		}

		return nil, fmt.Errorf("failed to create grant: %w", err)
	}

	r.invalidate(positionID)

	return &grant, nil
}

// RevokeByID removes a grant by its surrogate sequence number. Callers
// holding only the (position, menu) pair must resolve the surrogate first
// via ListGrants.
func (r *Resolver) RevokeByID(grantID uint) error {
	var grant models.AccessGrant
	if err := r.db.First(&grant, grantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGrantNotFound
		}

		return fmt.Errorf("failed to load grant: %w", err)
	}

	if err := r.db.Delete(&models.AccessGrant{}, grantID).Error; err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}

	r.invalidate(grant.PositionID)

	return nil
}

// SetGrants updates a position's grants to exactly the target menu set.
// It computes the symmetric difference against the current set and, inside
// one transaction, inserts only the additions and deletes only the
// removals. Re-applying the same target set is a no-op.
func (r *Resolver) SetGrants(positionID uint, menuIDs []uint) error {
	if positionID == 0 {
		return ErrPositionRequired
	}

	target := make(map[uint]bool, len(menuIDs))
	for _, id := range menuIDs {
		target[id] = true
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current []models.AccessGrant
		if err := tx.Where("position_id = ?", positionID).Find(&current).Error; err != nil {
			return fmt.Errorf("failed to load current grants: %w", err)
		}

		existing := make(map[uint]uint, len(current)) // menu id -> grant id
		for _, g := range current {
			existing[g.MenuID] = g.ID
		}

		// removals: granted but not in the target set
		for menuID, grantID := range existing {
			if !target[menuID] {
				if err := tx.Delete(&models.AccessGrant{}, grantID).Error; err != nil {
					return fmt.Errorf("failed to remove grant: %w", err)
				}
			}
		}

		// additions: targeted but not yet granted
		for menuID := range target {
			if _, ok := existing[menuID]; !ok {
				grant := models.AccessGrant{PositionID: positionID, MenuID: menuID}
				if err := tx.Create(&grant).Error; err != nil {
					return fmt.Errorf("failed to add grant: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(positionID)

	return nil
}

// ListGrants returns all grants joined with position and menu for the
// admin permission screen.
func (r *Resolver) ListGrants() ([]models.AccessGrant, error) {
	var grants []models.AccessGrant

	err := r.db.
		Preload("Position").
		Preload("Menu").
		Order("id ASC").
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	return grants, nil
}

// store caches a loaded grant set unless a mutation invalidated the
// position while the load was in flight. Caching such a load would serve
// the pre-mutation set until the next mutation of the same position.
func (r *Resolver) store(positionID uint, gen uint64, slugs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen[positionID] != gen {
		return
	}

	r.cache[positionID] = slugs
}

func (r *Resolver) invalidate(positionID uint) {
	r.mu.Lock()
	delete(r.cache, positionID)
	r.gen[positionID]++
	r.mu.Unlock()
}
