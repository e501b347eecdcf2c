package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"beerstock/internal/models"
	"beerstock/internal/repositories"
	"beerstock/pkg/rabbitmq"
)

// BeerService handles business logic related to the beer inventory. It is
// the sole gatekeeper between callers and the repository: name uniqueness,
// existence checks, and stock bounds are all enforced here.
type BeerService struct {
	repo     repositories.BeerRepository
	mqClient *rabbitmq.Client // optional; events are skipped when nil
}

// NewBeerService creates a new BeerService.
func NewBeerService(repo repositories.BeerRepository, mqClient *rabbitmq.Client) *BeerService {
	return &BeerService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// CreateBeer registers a new beer. The name must not already be registered,
// and the initial quantity must fit within the declared stock capacity.
func (s *BeerService) CreateBeer(beer *models.Beer) (*models.Beer, error) {
	existing, err := s.repo.GetByName(beer.Name)
	if err != nil && !errors.Is(err, repositories.ErrBeerNotFound) {
		return nil, fmt.Errorf("failed to check beer name %s: %w", beer.Name, err)
	}
	if existing != nil {
		return nil, &BeerAlreadyRegisteredError{Name: beer.Name}
	}

	// No id exists yet, so the error identifies the beer by name.
	if beer.Quantity > beer.MaxCapacity {
		return nil, &BeerStockExceededError{ID: beer.Name, Increment: beer.Quantity, MaxCapacity: beer.MaxCapacity}
	}

	if err := s.repo.Create(beer); err != nil {
		return nil, fmt.Errorf("failed to create beer in repository: %w", err)
	}

	s.publishStockEvent("beer.created", beer)
	return beer, nil
}

// FindBeerByName retrieves a beer by its exact name.
func (s *BeerService) FindBeerByName(name string) (*models.Beer, error) {
	beer, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrBeerNotFound) {
			return nil, &BeerNotFoundError{Name: name}
		}
		return nil, err
	}
	return beer, nil
}

// ListAllBeers retrieves every registered beer. An empty inventory yields
// an empty slice, never an error.
func (s *BeerService) ListAllBeers() ([]models.Beer, error) {
	return s.repo.GetAll()
}

// DeleteBeerByID removes a beer by its ID. Deletion is not idempotent: a
// second call for the same ID fails with BeerNotFoundError.
func (s *BeerService) DeleteBeerByID(id string) error {
	if _, err := s.findByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete beer %s: %w", id, err)
	}
	return nil
}

// IncrementStock raises the quantity of the beer with the given ID by qty.
// The new quantity may not exceed the beer's stock capacity; on violation
// the stored quantity is left exactly as it was.
func (s *BeerService) IncrementStock(id string, qty int) (*models.Beer, error) {
	beer, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	quantityAfterIncrement := beer.Quantity + qty
	if quantityAfterIncrement > beer.MaxCapacity {
		return nil, &BeerStockExceededError{ID: id, Increment: qty, MaxCapacity: beer.MaxCapacity}
	}

	beer.Quantity = quantityAfterIncrement
	if err := s.repo.Update(beer); err != nil {
		return nil, fmt.Errorf("failed to update beer %s: %w", id, err)
	}

	s.publishStockEvent("stock.incremented", beer)
	return beer, nil
}

// DecrementStock lowers the quantity of the beer with the given ID by qty.
// The new quantity may not drop below zero; on violation the stored
// quantity is left exactly as it was.
func (s *BeerService) DecrementStock(id string, qty int) (*models.Beer, error) {
	beer, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	quantityAfterDecrement := beer.Quantity - qty
	if quantityAfterDecrement < 0 {
		return nil, &BeerInsufficientStockError{ID: id, Decrement: qty, Quantity: beer.Quantity}
	}

	beer.Quantity = quantityAfterDecrement
	if err := s.repo.Update(beer); err != nil {
		return nil, fmt.Errorf("failed to update beer %s: %w", id, err)
	}

	s.publishStockEvent("stock.decremented", beer)
	return beer, nil
}

// findByID fetches a beer, translating the repository sentinel into the
// domain error.
func (s *BeerService) findByID(id string) (*models.Beer, error) {
	beer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrBeerNotFound) {
			return nil, &BeerNotFoundError{ID: id}
		}
		return nil, err
	}
	return beer, nil
}

// publishStockEvent emits an inventory event to RabbitMQ. Publication
// failures are logged and never fail the operation; the repository write
// is the source of truth.
func (s *BeerService) publishStockEvent(routingKey string, beer *models.Beer) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"beerID":   beer.ID,
		"name":     beer.Name,
		"quantity": beer.Quantity,
		"max":      beer.MaxCapacity,
	}
	messageBody, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal stock event to JSON: %v", err)
		return
	}

	if err := s.mqClient.Publish("beerstock", routingKey, messageBody); err != nil {
		log.Printf("Warning: Failed to publish %s event for beer %s: %v", routingKey, beer.ID, err)
	} else {
		log.Printf("Successfully published %s event for beer %s", routingKey, beer.ID)
	}
}
