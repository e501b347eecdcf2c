package repositories

import (
	"errors"

	"beerstock/internal/models"
)

// ErrBeerNotFound is returned by lookups when no beer matches the given
// id or name. Callers distinguish it from storage failures with errors.Is.
var ErrBeerNotFound = errors.New("beer not found")

// BeerRepository defines the interface for beer data access.
type BeerRepository interface {
	GetAll() ([]models.Beer, error)
	GetByID(id string) (*models.Beer, error)
	GetByName(name string) (*models.Beer, error)
	Create(beer *models.Beer) error
	Update(beer *models.Beer) error
	Delete(id string) error
}
