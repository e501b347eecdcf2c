package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"beerstock/internal/models"
)

// GORMBeerRepository is a GORM implementation of BeerRepository.
type GORMBeerRepository struct {
	db *gorm.DB
}

// NewGORMBeerRepository creates a new instance of GORMBeerRepository.
func NewGORMBeerRepository(db *gorm.DB) *GORMBeerRepository {
	return &GORMBeerRepository{
		db: db,
	}
}

// GetAll retrieves all beers from the database.
func (r *GORMBeerRepository) GetAll() ([]models.Beer, error) {
	var beers []models.Beer
	if err := r.db.Find(&beers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all beers: %w", err)
	}
	return beers, nil
}

// GetByID retrieves a single beer by its ID from the database.
func (r *GORMBeerRepository) GetByID(id string) (*models.Beer, error) {
	var beer models.Beer
	if err := r.db.First(&beer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("beer with ID %s: %w", id, ErrBeerNotFound)
		}
		return nil, fmt.Errorf("failed to get beer by ID %s: %w", id, err)
	}
	return &beer, nil
}

// GetByName retrieves a single beer by its exact name from the database.
func (r *GORMBeerRepository) GetByName(name string) (*models.Beer, error) {
	var beer models.Beer
	if err := r.db.First(&beer, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("beer with name %s: %w", name, ErrBeerNotFound)
		}
		return nil, fmt.Errorf("failed to get beer by name %s: %w", name, err)
	}
	return &beer, nil
}

// Create creates a new beer in the database.
func (r *GORMBeerRepository) Create(beer *models.Beer) error {
	if beer.ID == "" {
		beer.ID = uuid.New().String()
	}
	if err := r.db.Create(beer).Error; err != nil {
		return fmt.Errorf("failed to create beer: %w", err)
	}
	return nil
}

// Update updates an existing beer in the database.
func (r *GORMBeerRepository) Update(beer *models.Beer) error {
	res := r.db.Save(beer) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update beer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound if no rows affected
		// for an update, so we check RowsAffected.
		return fmt.Errorf("beer with ID %s for update: %w", beer.ID, ErrBeerNotFound)
	}
	return nil
}

// Delete removes a beer by its ID from the database. The row is deleted
// for real, not soft-deleted: the unique index on name must free the name
// for re-registration.
func (r *GORMBeerRepository) Delete(id string) error {
	res := r.db.Unscoped().Delete(&models.Beer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete beer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("beer with ID %s for deletion: %w", id, ErrBeerNotFound)
	}
	return nil
}
