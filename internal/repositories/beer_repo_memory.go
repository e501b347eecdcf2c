package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"beerstock/internal/models"
)

// MemoryBeerRepository is an in-memory implementation of BeerRepository.
type MemoryBeerRepository struct {
	beers map[string]models.Beer
	mu    sync.RWMutex
}

// NewMemoryBeerRepository creates a new instance of MemoryBeerRepository.
func NewMemoryBeerRepository() *MemoryBeerRepository {
	return &MemoryBeerRepository{
		beers: make(map[string]models.Beer),
	}
}

// GetAll returns all beers.
func (r *MemoryBeerRepository) GetAll() ([]models.Beer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	beerList := make([]models.Beer, 0, len(r.beers))
	for _, b := range r.beers {
		beerList = append(beerList, b)
	}
	return beerList, nil
}

// GetByID returns a beer by its ID.
func (r *MemoryBeerRepository) GetByID(id string) (*models.Beer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	beer, ok := r.beers[id]
	if !ok {
		return nil, fmt.Errorf("beer with ID %s: %w", id, ErrBeerNotFound)
	}
	return &beer, nil
}

// GetByName returns a beer by its exact name.
func (r *MemoryBeerRepository) GetByName(name string) (*models.Beer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.beers {
		if b.Name == name {
			beer := b
			return &beer, nil
		}
	}
	return nil, fmt.Errorf("beer with name %s: %w", name, ErrBeerNotFound)
}

// Create adds a new beer.
func (r *MemoryBeerRepository) Create(beer *models.Beer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if beer.ID == "" {
		beer.ID = uuid.New().String()
	}
	r.beers[beer.ID] = *beer
	return nil
}

// Update modifies an existing beer.
func (r *MemoryBeerRepository) Update(beer *models.Beer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.beers[beer.ID]
	if !ok {
		return fmt.Errorf("beer with ID %s for update: %w", beer.ID, ErrBeerNotFound)
	}
	r.beers[beer.ID] = *beer
	return nil
}

// Delete removes a beer by its ID.
func (r *MemoryBeerRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.beers[id]
	if !ok {
		return fmt.Errorf("beer with ID %s for deletion: %w", id, ErrBeerNotFound)
	}
	delete(r.beers, id)
	return nil
}
