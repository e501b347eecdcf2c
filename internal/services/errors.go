package services

import "fmt"

// BeerAlreadyRegisteredError is returned when a beer with the same name
// already exists in the inventory.
type BeerAlreadyRegisteredError struct {
	Name string
}

func (e *BeerAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("beer of name %s is already registered", e.Name)
}

// BeerNotFoundError is returned when no beer matches the given name or ID.
// Exactly one of Name and ID is set, depending on which lookup failed.
type BeerNotFoundError struct {
	Name string
	ID   string
}

func (e *BeerNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("beer of name %s does not exist", e.Name)
	}
	return fmt.Sprintf("beer of id %s does not exist", e.ID)
}

// BeerStockExceededError is returned when an increment would push the
// quantity above the beer's stock capacity. The stored quantity is left
// unchanged.
type BeerStockExceededError struct {
	ID          string
	Increment   int
	MaxCapacity int
}

func (e *BeerStockExceededError) Error() string {
	return fmt.Sprintf("beer %s can't be incremented by %d due to its stock capacity (%d)", e.ID, e.Increment, e.MaxCapacity)
}

// BeerInsufficientStockError is returned when a decrement would push the
// quantity below zero. The stored quantity is left unchanged.
type BeerInsufficientStockError struct {
	ID        string
	Decrement int
	Quantity  int
}

func (e *BeerInsufficientStockError) Error() string {
	return fmt.Sprintf("beer %s can't be decremented by %d due to its current stock (%d)", e.ID, e.Decrement, e.Quantity)
}
